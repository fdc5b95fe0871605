package registry_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-user-go/eywa/internal/providers"
	"github.com/alex-user-go/eywa/internal/registry"
)

func TestRegistry_RegisterLookup(t *testing.T) {
	r := registry.New()

	_, ok := r.Lookup("prop_1")
	assert.False(t, ok)

	r.Register(registry.Property{ID: "prop_1", Provider: providers.HotelRunner, AccountID: "111", Name: "Pera Palace"})
	r.Register(registry.Property{ID: "prop_2", Provider: providers.Reference, Name: "Sample"})

	p, ok := r.Lookup("prop_1")
	require.True(t, ok)
	assert.Equal(t, "Pera Palace", p.Name)
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_LastWriteWins(t *testing.T) {
	r := registry.New()
	r.Register(registry.Property{ID: "a", Name: "first"})
	r.Register(registry.Property{ID: "b", Name: "other"})
	r.Register(registry.Property{ID: "a", Name: "second"})

	p, ok := r.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "second", p.Name)

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID, "re-registration keeps the original position")
	assert.Equal(t, "b", list[1].ID)
}

func TestRegistry_ListByProvider(t *testing.T) {
	r := registry.New()
	r.Register(registry.Property{ID: "hr1", Provider: providers.HotelRunner})
	r.Register(registry.Property{ID: "m1", Provider: providers.Reference})
	r.Register(registry.Property{ID: "hr2", Provider: providers.HotelRunner})

	got := r.ListByProvider(providers.HotelRunner)
	require.Len(t, got, 2)
	assert.Equal(t, "hr1", got[0].ID)
	assert.Equal(t, "hr2", got[1].ID)
}

func TestRegistry_ConcurrentReadsDuringWrites(t *testing.T) {
	r := registry.New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Register(registry.Property{ID: fmt.Sprintf("p%d", i), Name: "name", AccountID: "acc"})
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, p := range r.List() {
				// A reader never sees a half-applied registration.
				assert.Equal(t, "name", p.Name)
				assert.Equal(t, "acc", p.AccountID)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, r.Len())
}
