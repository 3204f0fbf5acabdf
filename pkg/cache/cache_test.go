package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetGetDelete(t *testing.T) {
	c := New[int64, float64]()
	assert.Equal(t, 0, c.Size())

	_, ok := c.Get(1)
	assert.False(t, ok)

	c.Set(1, 25)
	c.Set(2, 50)
	c.Set(1, 75)

	got, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, float64(75), got)
	assert.Equal(t, 2, c.Size())

	c.Delete(1)
	c.Delete(42)
	_, ok = c.Get(1)
	assert.False(t, ok)
	assert.ElementsMatch(t, []int64{2}, c.Keys())
}

func TestCache_Concurrent(t *testing.T) {
	c := New[int, int]()
	var wg sync.WaitGroup

	for i := range 50 {
		wg.Add(3)
		go func() {
			defer wg.Done()
			for j := range 100 {
				c.Set(i*100+j, j)
			}
		}()
		go func() {
			defer wg.Done()
			for range 100 {
				c.Get(i * 100)
				c.Keys()
			}
		}()
		go func() {
			defer wg.Done()
			for j := range 50 {
				c.Delete(i*100 + j)
			}
		}()
	}
	wg.Wait()

	c.Set(-1, 1)
	got, ok := c.Get(-1)
	assert.True(t, ok)
	assert.Equal(t, 1, got)
}
