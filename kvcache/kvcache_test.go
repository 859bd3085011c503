package kvcache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadCapacity(t *testing.T) {
	_, err := New(0)
	require.ErrorIs(t, err, ErrIllegalCapacity)
	_, err = New(-1)
	require.ErrorIs(t, err, ErrIllegalCapacity)
}

func TestPutGetDel(t *testing.T) {
	c, err := New(128)
	require.NoError(t, err)
	defer c.Close()

	_, ok := c.Get(1)
	require.False(t, ok)

	c.Put(1, 100)
	c.Wait()
	v, ok := c.Get(1)
	require.True(t, ok)
	require.Equal(t, int64(100), v)

	c.Del(1)
	c.Wait()
	_, ok = c.Get(1)
	require.False(t, ok)
}

func TestPutOverwrites(t *testing.T) {
	c, err := New(128)
	require.NoError(t, err)
	defer c.Close()

	c.Put(7, 70)
	c.Wait()
	c.Put(7, 71)
	c.Wait()

	v, ok := c.Get(7)
	require.True(t, ok)
	require.Equal(t, int64(71), v)
}
