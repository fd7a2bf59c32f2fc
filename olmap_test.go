package main

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapPutGetRoundTrip(t *testing.T) {
	a := NewArena(1 << 16)
	m := NewMap(a)
	m.Put("foo", 1)
	m.Put("bar", 2)

	v, ok := m.Get("foo")
	require.True(t, ok)
	require.Equal(t, 1, v)

	v, ok = m.Get("bar")
	require.True(t, ok)
	require.Equal(t, 2, v)
}

func TestMapGetMissingKey(t *testing.T) {
	a := NewArena(1 << 16)
	m := NewMap(a)
	_, ok := m.Get("missing")
	require.False(t, ok)
}

func TestMapPutOverwritesExistingKey(t *testing.T) {
	a := NewArena(1 << 16)
	m := NewMap(a)
	m.Put("k", 1)
	m.Put("k", 2)
	v, ok := m.Get("k")
	require.True(t, ok)
	require.Equal(t, 2, v)
	require.Equal(t, 1, m.Count())
}

// TestMapSurvivesHashCollisions inserts enough keys that, with the
// default small capacity, at least two keys land in the same bucket,
// exercising the chained-entry walk in both Put and Get.
func TestMapSurvivesHashCollisions(t *testing.T) {
	a := NewArena(1 << 20)
	m := NewMap(a)

	const n = 200
	for i := 0; i < n; i++ {
		m.Put(fmt.Sprintf("key-%d", i), i)
	}
	require.Equal(t, n, m.Count())
	for i := 0; i < n; i++ {
		v, ok := m.Get(fmt.Sprintf("key-%d", i))
		require.True(t, ok)
		require.Equal(t, i, v)
	}
}

func TestMapEachVisitsEveryEntry(t *testing.T) {
	a := NewArena(1 << 16)
	m := NewMap(a)
	want := map[string]int{"a": 1, "b": 2, "c": 3}
	for k, v := range want {
		m.Put(k, v)
	}

	got := map[string]int{}
	m.Each(func(key string, value any) {
		got[key] = value.(int)
	})
	require.Equal(t, want, got)
}

func TestU32FNV1aHashIsDeterministic(t *testing.T) {
	require.Equal(t, u32FNV1aHash("abc"), u32FNV1aHash("abc"))
	require.NotEqual(t, u32FNV1aHash("abc"), u32FNV1aHash("abd"))
}
