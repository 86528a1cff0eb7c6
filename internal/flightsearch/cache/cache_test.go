package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCacheSetGet(t *testing.T) {
	c := New[[]int](nil)
	c.Set("k", []int{1, 2}, time.Minute)

	got, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, []int{1, 2}, got)
}

func TestCacheExpiry(t *testing.T) {
	c := New[string](nil)
	c.Set("k", "v", time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	_, ok := c.Get("k")
	require.False(t, ok)
	require.Equal(t, 0, c.Len())
}

func TestCacheZeroTTLNotStored(t *testing.T) {
	c := New[string](nil)
	c.Set("k", "v", 0)

	_, ok := c.Get("k")
	require.False(t, ok)
}

func TestCacheClonesValues(t *testing.T) {
	clone := func(v []int) []int {
		out := make([]int, len(v))
		copy(out, v)
		return out
	}
	c := New[[]int](clone)

	original := []int{1, 2}
	c.Set("k", original, time.Minute)
	original[0] = 99

	got, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, []int{1, 2}, got)

	got[1] = 99
	again, _ := c.Get("k")
	require.Equal(t, []int{1, 2}, again)
}

func TestCacheDelete(t *testing.T) {
	c := New[string](nil)
	c.Set("k", "v", time.Minute)
	c.Delete("k")

	_, ok := c.Get("k")
	require.False(t, ok)
}
