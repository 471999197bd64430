package distance

import (
	"fmt"
	"parcel-delivery-sim/internal/domain"
)

type MockPair struct {
	From, To int
	Distance float64
}

// MockDistanceOracle is a sparse oracle for tests. Pairs are symmetric;
// a pair that was never registered is an error.
type MockDistanceOracle struct {
	m    map[[2]int]float64
	size int
}

func NewMockDistanceOracle(pairs []MockPair) *MockDistanceOracle {
	m := make(map[[2]int]float64, len(pairs)*2)
	size := 0
	for _, p := range pairs {
		m[[2]int{p.From, p.To}] = p.Distance
		m[[2]int{p.To, p.From}] = p.Distance
		size = max(size, p.From+1, p.To+1)
	}
	return &MockDistanceOracle{m: m, size: size}
}

func (o *MockDistanceOracle) Distance(from, to int) (float64, error) {
	if from == to {
		return 0, nil
	}
	d, ok := o.m[[2]int{from, to}]
	if !ok {
		return 0, fmt.Errorf("missing pair %d -> %d", from, to)
	}
	return d, nil
}

func (o *MockDistanceOracle) Size() int { return o.size }

// MockLocationIndex maps streets straight to indices.
type MockLocationIndex map[string]int

func (m MockLocationIndex) Resolve(addr domain.Address) (int, error) {
	i, ok := m[addr.Street]
	if !ok {
		return 0, fmt.Errorf("mock resolve %q: %w", addr.Street, domain.ErrUnresolvableAddress)
	}
	return i, nil
}
