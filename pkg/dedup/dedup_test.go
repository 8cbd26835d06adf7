package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAndContains(t *testing.T) {
	set := New[string](3)

	evicted, ok := set.Insert("a")
	assert.False(t, ok)
	assert.Empty(t, evicted)

	assert.True(t, set.Contains("a"))
	assert.False(t, set.Contains("b"))
	assert.Equal(t, 1, set.Len())
}

func TestEvictionKeepsMostRecent(t *testing.T) {
	const capacity = 3
	set := New[int](capacity)

	// Insert capacity+1 distinct items; only the most recent capacity survive
	for i := 1; i <= capacity+1; i++ {
		set.Insert(i)
		assert.LessOrEqual(t, set.Len(), capacity)
	}

	assert.False(t, set.Contains(1), "oldest item should have been evicted")
	for i := 2; i <= capacity+1; i++ {
		assert.True(t, set.Contains(i), "item %d should be retained", i)
	}
	assert.Equal(t, capacity, set.Len())
}

func TestInsertReturnsEvicted(t *testing.T) {
	set := New[string](2)
	set.Insert("first")
	set.Insert("second")

	evicted, ok := set.Insert("third")
	require.True(t, ok)
	assert.Equal(t, "first", evicted)

	evicted, ok = set.Insert("fourth")
	require.True(t, ok)
	assert.Equal(t, "second", evicted)
}

func TestPopOldest(t *testing.T) {
	set := New[string](4)

	_, ok := set.PopOldest()
	assert.False(t, ok, "pop on empty set")

	set.Insert("a")
	set.Insert("b")
	set.Insert("c")

	oldest, ok := set.PopOldest()
	require.True(t, ok)
	assert.Equal(t, "a", oldest)
	assert.False(t, set.Contains("a"))
	assert.Equal(t, 2, set.Len())

	oldest, ok = set.PopOldest()
	require.True(t, ok)
	assert.Equal(t, "b", oldest)
}

func TestIndicesStayInSync(t *testing.T) {
	set := New[int](5)

	memberCount := func() int {
		count := 0
		for i := 0; i < 100; i++ {
			if set.Contains(i) {
				count++
			}
		}
		return count
	}

	for i := 0; i < 20; i++ {
		set.Insert(i)
		assert.Equal(t, set.Len(), memberCount(), "after insert %d", i)
	}
	for set.Len() > 0 {
		set.PopOldest()
		assert.Equal(t, set.Len(), memberCount())
	}
}

func TestZeroCapacityPanics(t *testing.T) {
	assert.Panics(t, func() { New[int](0) })
}
