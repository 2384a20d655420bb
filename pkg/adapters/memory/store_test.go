package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/mosaic/pkg/adapters/memory"
	"github.com/aretw0/mosaic/pkg/domain"
	"github.com/aretw0/mosaic/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
)

func TestRecordStoreContract(t *testing.T) {
	tests.RunRecordStoreContract(t, memory.NewStore())
}

func TestConcurrentAccess(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Set(ctx, "k", []domain.Record{{"n": 1.0}})
			_, _, _ = store.Get(ctx, "k")
			_, _ = store.Keys(ctx)
		}()
	}
	wg.Wait()

	_, ok, err := store.Get(ctx, "k")
	assert.NoError(t, err)
	assert.True(t, ok)
}
