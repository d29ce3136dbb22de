package selection

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i-am-zach/uiuc-grade-stats/internal/types"
)

type memoryKV struct {
	mu     sync.Mutex
	data   map[string][]byte
	puts   int
	putErr error
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: make(map[string][]byte)}
}

func (m *memoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memoryKV) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	m.puts++
	m.data[key] = append([]byte(nil), value...)
	return nil
}

var (
	cs173   = types.CourseRef{Subject: "CS", Number: 173}
	math286 = types.CourseRef{Subject: "MATH", Number: 286}
)

func TestOpenMissingKeyStartsEmpty(t *testing.T) {
	kv := newMemoryKV()

	store, err := Open(context.Background(), kv, "")
	require.NoError(t, err)

	assert.Empty(t, store.List())
	assert.NotNil(t, store.List())
	assert.JSONEq(t, `[]`, string(kv.data[DefaultKey]))
}

func TestOpenReadsPersistedList(t *testing.T) {
	kv := newMemoryKV()
	kv.data["courses"] = []byte(`[{"subject":"CS","number":173},{"subject":"MATH","number":"286"}]`)

	store, err := Open(context.Background(), kv, "courses")
	require.NoError(t, err)

	assert.Equal(t, []types.CourseRef{cs173, math286}, store.List())
}

func TestOpenRejectsCorruptList(t *testing.T) {
	kv := newMemoryKV()
	kv.data["courses"] = []byte(`{not json`)

	_, err := Open(context.Background(), kv, "courses")
	assert.Error(t, err)
}

func TestAddRemoveClearPersistEveryChange(t *testing.T) {
	ctx := context.Background()
	kv := newMemoryKV()
	store, err := Open(ctx, kv, "courses")
	require.NoError(t, err)

	added, err := store.Add(ctx, cs173)
	require.NoError(t, err)
	assert.True(t, added)
	assert.JSONEq(t, `[{"subject":"CS","number":173}]`, string(kv.data["courses"]))

	added, err = store.Add(ctx, math286)
	require.NoError(t, err)
	assert.True(t, added)
	assert.True(t, store.Contains(math286))

	removed, err := store.Remove(ctx, cs173)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.JSONEq(t, `[{"subject":"MATH","number":286}]`, string(kv.data["courses"]))

	require.NoError(t, store.Clear(ctx))
	assert.Empty(t, store.List())
	assert.JSONEq(t, `[]`, string(kv.data["courses"]))
}

func TestAddDuplicateIsNoop(t *testing.T) {
	ctx := context.Background()
	kv := newMemoryKV()
	store, err := Open(ctx, kv, "courses")
	require.NoError(t, err)

	_, err = store.Add(ctx, cs173)
	require.NoError(t, err)
	puts := kv.puts

	added, err := store.Add(ctx, cs173)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, puts, kv.puts)
	assert.Len(t, store.List(), 1)
}

func TestRemoveMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, newMemoryKV(), "courses")
	require.NoError(t, err)

	removed, err := store.Remove(ctx, cs173)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestFailedPersistLeavesListUnchanged(t *testing.T) {
	ctx := context.Background()
	kv := newMemoryKV()
	store, err := Open(ctx, kv, "courses")
	require.NoError(t, err)
	_, err = store.Add(ctx, cs173)
	require.NoError(t, err)

	kv.putErr = errors.New("disk full")

	_, err = store.Add(ctx, math286)
	assert.ErrorIs(t, err, kv.putErr)
	_, err = store.Remove(ctx, cs173)
	assert.ErrorIs(t, err, kv.putErr)
	assert.ErrorIs(t, store.Clear(ctx), kv.putErr)

	assert.Equal(t, []types.CourseRef{cs173}, store.List())
}

func TestConcurrentAddsAreNotLost(t *testing.T) {
	ctx := context.Background()
	kv := newMemoryKV()
	store, err := Open(ctx, kv, "courses")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := store.Add(ctx, types.CourseRef{Subject: "CS", Number: types.CourseNumber(100 + n)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.List(), 50)

	reopened, err := Open(ctx, kv, "courses")
	require.NoError(t, err)
	assert.Len(t, reopened.List(), 50)
}

func TestFileKVRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := Open(ctx, NewFileKV(dir), "courses")
	require.NoError(t, err)
	for _, ref := range []types.CourseRef{cs173, math286} {
		_, err := store.Add(ctx, ref)
		require.NoError(t, err)
	}

	reopened, err := Open(ctx, NewFileKV(dir), "courses")
	require.NoError(t, err)
	assert.Equal(t, []types.CourseRef{cs173, math286}, reopened.List())
}

func TestFileKVMissingKey(t *testing.T) {
	kv := NewFileKV(t.TempDir())

	value, ok, err := kv.Get(context.Background(), fmt.Sprintf("missing-%d", 1))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, value)
}
