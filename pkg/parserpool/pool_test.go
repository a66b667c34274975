package parserpool_test

import (
	"sync"
	"testing"

	"github.com/seqlims/seqdb/pkg/parserpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonical(t *testing.T) {
	pool := parserpool.NewPool(2)
	defer pool.Close()

	tests := []struct {
		name      string
		species   string
		canonical string
		ok        bool
	}{
		{
			name:      "binomial",
			species:   "Homo sapiens",
			canonical: "Homo sapiens",
			ok:        true,
		},
		{
			name:      "binomial with author and year",
			species:   "Mus musculus Linnaeus, 1758",
			canonical: "Mus musculus",
			ok:        true,
		},
		{
			name:    "empty species stays null",
			species: "",
			ok:      false,
		},
		{
			name:    "whitespace only",
			species: "   ",
			ok:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			canonical, ok := pool.Canonical(tt.species)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.canonical, canonical)
			}
		})
	}
}

// TestCanonical_Concurrent verifies the pool is safe under concurrent
// use, the way the importer and tests share it.
func TestCanonical_Concurrent(t *testing.T) {
	pool := parserpool.NewPool(2)
	defer pool.Close()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			canonical, ok := pool.Canonical("Danio rerio")
			assert.True(t, ok)
			assert.Equal(t, "Danio rerio", canonical)
		}()
	}
	wg.Wait()
}
