// Package store holds the parcel records of one simulation run.
package store

import (
	"parcel-delivery-sim/internal/domain"
	"slices"
	"sync"
)

const (
	defaultCapacity = 20
	maxLoadFactor   = 0.75
)

type entry struct {
	id     int
	parcel *domain.Parcel
}

// ParcelStore is a chained hash table from parcel ID to parcel record.
//
// Buckets are chosen by id mod len(buckets); the table doubles once the
// load factor passes 0.75. Records are stored by pointer so a vehicle
// holding a reference and the store observe the same state. Readers get
// copies taken under the read lock, and Update runs under the write lock,
// so a reader never sees a half-written record.
type ParcelStore struct {
	mu      sync.RWMutex
	buckets [][]entry
	size    int
}

// New returns an empty store sized for roughly capacity records.
func New(capacity int) *ParcelStore {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &ParcelStore{buckets: make([][]entry, capacity)}
}

func bucketFor(id, n int) int {
	i := id % n
	if i < 0 {
		i += n
	}
	return i
}

// Put inserts or overwrites the record under p.ID.
func (s *ParcelStore) Put(p *domain.Parcel) {
	s.PutID(p.ID, p)
}

// PutID inserts or overwrites the record under id.
func (s *ParcelStore) PutID(id int, p *domain.Parcel) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := bucketFor(id, len(s.buckets))
	for i := range s.buckets[b] {
		if s.buckets[b][i].id == id {
			s.buckets[b][i].parcel = p
			return
		}
	}
	s.buckets[b] = append(s.buckets[b], entry{id: id, parcel: p})
	s.size++

	if float64(s.size)/float64(len(s.buckets)) > maxLoadFactor {
		s.grow()
	}
}

// grow doubles the bucket count. Caller holds the write lock.
func (s *ParcelStore) grow() {
	next := make([][]entry, len(s.buckets)*2)
	for _, bucket := range s.buckets {
		for _, e := range bucket {
			b := bucketFor(e.id, len(next))
			next[b] = append(next[b], e)
		}
	}
	s.buckets = next
}

// find returns the stored pointer. Caller holds a lock.
func (s *ParcelStore) find(id int) (*domain.Parcel, bool) {
	for _, e := range s.buckets[bucketFor(id, len(s.buckets))] {
		if e.id == id {
			return e.parcel, true
		}
	}
	return nil, false
}

// Get returns a snapshot copy of the record. A miss is reported through ok.
func (s *ParcelStore) Get(id int) (domain.Parcel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.find(id)
	if !ok {
		return domain.Parcel{}, false
	}
	return p.Clone(), true
}

// Ref returns the shared record, for loading onto a vehicle.
// Mutations through the pointer must go through Update to stay atomic.
func (s *ParcelStore) Ref(id int) (*domain.Parcel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.find(id)
}

// Update applies fn to the record under the write lock.
// It reports false when id is absent.
func (s *ParcelStore) Update(id int, fn func(p *domain.Parcel)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.find(id)
	if !ok {
		return false
	}
	fn(p)
	return true
}

// Delete removes id and reports whether it was present.
func (s *ParcelStore) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := bucketFor(id, len(s.buckets))
	for i, e := range s.buckets[b] {
		if e.id == id {
			s.buckets[b] = slices.Delete(s.buckets[b], i, i+1)
			s.size--
			return true
		}
	}
	return false
}

func (s *ParcelStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.size
}

// IDs returns every stored ID in ascending order.
func (s *ParcelStore) IDs() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int, 0, s.size)
	for _, bucket := range s.buckets {
		for _, e := range bucket {
			ids = append(ids, e.id)
		}
	}
	slices.Sort(ids)
	return ids
}

// All returns snapshot copies of every record ordered by ID.
func (s *ParcelStore) All() []domain.Parcel {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Parcel, 0, s.size)
	for _, bucket := range s.buckets {
		for _, e := range bucket {
			out = append(out, e.parcel.Clone())
		}
	}
	slices.SortFunc(out, func(a, b domain.Parcel) int { return a.ID - b.ID })
	return out
}
