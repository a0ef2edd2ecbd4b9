package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s KeyValueStore) {
	ctx := context.Background()

	_, found, err := s.Get(ctx, "cart")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "cart", []byte(`[1]`)))
	require.NoError(t, s.Set(ctx, "cart", []byte(`[2]`)))

	data, found, err := s.Get(ctx, "cart")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[2]`, string(data))

	require.NoError(t, s.Delete(ctx, "cart"))
	require.NoError(t, s.Delete(ctx, "cart"))

	_, found, err = s.Get(ctx, "cart")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	exerciseStore(t, NewFileStore(dir))
}

func TestFileStore_WritesJSONFilePerSlot(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)

	require.NoError(t, s.Set(context.Background(), "cart", []byte(`[]`)))

	data, err := os.ReadFile(filepath.Join(dir, "cart.json"))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
	leftovers, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestFileStore_ConcurrentWritersLastOneWins(t *testing.T) {
	dir := t.TempDir()
	stores := []*FileStore{NewFileStore(dir), NewFileStore(dir)}

	const writes = 200
	errs := make(chan error, writes*len(stores))
	var wg sync.WaitGroup
	for _, s := range stores {
		for i := 0; i < writes; i++ {
			wg.Add(1)
			go func(s *FileStore, i int) {
				defer wg.Done()
				errs <- s.Set(context.Background(), "cart", []byte(fmt.Sprintf(`[{"id":%d,"quantity":1}]`, i)))
			}(s, i)
		}
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	data, found, err := stores[0].Get(context.Background(), "cart")
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, json.Valid(data), "slot holds %q", data)

	leftovers, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestFileStore_RejectsPathLikeSlots(t *testing.T) {
	s := NewFileStore(t.TempDir())

	assert.Error(t, s.Set(context.Background(), "../escape", []byte(`x`)))
	_, _, err := s.Get(context.Background(), "a/b")
	assert.Error(t, err)
}

func TestMemoryStore_CopiesData(t *testing.T) {
	s := NewMemoryStore()
	buf := []byte("abc")
	require.NoError(t, s.Set(context.Background(), "k", buf))
	buf[0] = 'x'

	data, _, _ := s.Get(context.Background(), "k")
	assert.Equal(t, "abc", string(data))
}
