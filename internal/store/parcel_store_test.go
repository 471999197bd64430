package store

import (
	"parcel-delivery-sim/internal/domain"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParcelStoreRoundTrip(t *testing.T) {
	s := New(4)
	p := &domain.Parcel{ID: 1, Destination: domain.Address{Street: "195 W Oakland Ave"}, Weight: 21}

	s.Put(p)
	got, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, *p, got)

	require.True(t, s.Delete(1))
	_, ok = s.Get(1)
	assert.False(t, ok)
	assert.False(t, s.Delete(1), "second delete should report absence")
}

func TestParcelStorePutOverwrites(t *testing.T) {
	s := New(4)
	s.Put(&domain.Parcel{ID: 5, Weight: 1})
	s.Put(&domain.Parcel{ID: 5, Weight: 2})

	got, ok := s.Get(5)
	require.True(t, ok)
	assert.Equal(t, 2, got.Weight)
	assert.Equal(t, 1, s.Len())
}

func TestParcelStoreGrowsAndKeepsEverything(t *testing.T) {
	s := New(2)
	for id := -5; id <= 60; id++ {
		s.Put(&domain.Parcel{ID: id, Weight: id * 2})
	}

	assert.Equal(t, 66, s.Len())
	assert.Greater(t, len(s.buckets), 2)
	for id := -5; id <= 60; id++ {
		got, ok := s.Get(id)
		require.True(t, ok, "id %d missing after growth", id)
		assert.Equal(t, id*2, got.Weight)
	}

	ids := s.IDs()
	assert.Equal(t, -5, ids[0])
	assert.Equal(t, 60, ids[len(ids)-1])
}

func TestParcelStoreSharesRecordsWithReferences(t *testing.T) {
	s := New(8)
	s.Put(&domain.Parcel{ID: 3})

	ref, ok := s.Ref(3)
	require.True(t, ok)

	ok = s.Update(3, func(p *domain.Parcel) {
		p.DepartureTime = domain.At(8, 0, 0).Ptr()
		p.DeliveryTime = domain.At(8, 10, 0).Ptr()
	})
	require.True(t, ok)

	require.NotNil(t, ref.DeliveryTime, "update must be visible through the reference")
	assert.Equal(t, domain.At(8, 10, 0), *ref.DeliveryTime)

	assert.False(t, s.Update(99, func(*domain.Parcel) {}))
}

func TestParcelStoreGetReturnsCopy(t *testing.T) {
	s := New(8)
	s.Put(&domain.Parcel{ID: 2, DepartureTime: domain.At(9, 0, 0).Ptr()})

	snap, _ := s.Get(2)
	*snap.DepartureTime = domain.At(1, 0, 0)

	again, _ := s.Get(2)
	assert.Equal(t, domain.At(9, 0, 0), *again.DepartureTime)
}

func TestParcelStoreConcurrentReadersNeverSeeTornRecords(t *testing.T) {
	s := New(8)
	s.Put(&domain.Parcel{ID: 1})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			dep := domain.TimeOfDay(i)
			del := domain.TimeOfDay(i + 10)
			s.Update(1, func(p *domain.Parcel) {
				p.DepartureTime = &dep
				p.DeliveryTime = &del
			})
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				p, _ := s.Get(1)
				if p.DeliveryTime != nil {
					assert.Equal(t, *p.DepartureTime+10, *p.DeliveryTime)
				}
			}
		}()
	}
	wg.Wait()
}
