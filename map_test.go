package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type TestKey struct {
	part1 int
	part2 string
}

func (k TestKey) Hash() uint64 {
	return uint64(k.part1 + len(k.part2))
}

func (k TestKey) Equals(other Hashable) bool {
	o, ok := other.(TestKey)
	return ok && k.part1 == o.part1 && k.part2 == o.part2
}

func TestHashMapBasic(t *testing.T) {
	t.Run("InsertAndGet", func(t *testing.T) {
		hm := NewHashMap[string](WithCapacity(8))
		key := TestKey{1, "a"}
		hm.Set(key, "value1")

		val, exists := hm.Get(key)
		assert.True(t, exists)
		assert.Equal(t, "value1", val)

		_, exists = hm.Get(TestKey{2, "b"})
		assert.False(t, exists)
	})

	t.Run("UpdateValue", func(t *testing.T) {
		hm := NewHashMap[string](WithCapacity(8))
		key := TestKey{1, "a"}
		hm.Set(key, "value1")
		hm.Set(key, "value2")

		val, exists := hm.Get(key)
		assert.True(t, exists)
		assert.Equal(t, "value2", val)
		assert.Equal(t, 1, hm.Size())
	})

	t.Run("DeleteKey", func(t *testing.T) {
		hm := NewHashMap[string](WithCapacity(8))
		key := TestKey{1, "a"}
		hm.Set(key, "value1")

		hm.Delete(key)
		assert.Equal(t, 0, hm.Size())

		hm.Delete(TestKey{2, "b"})
	})

	t.Run("GetOrSet", func(t *testing.T) {
		hm := NewHashMap[int]()
		v, existed := hm.GetOrSet(TestKey{1, "a"}, 10)
		assert.False(t, existed)
		assert.Equal(t, 10, v)
		v, existed = hm.GetOrSet(TestKey{1, "a"}, 20)
		assert.True(t, existed)
		assert.Equal(t, 10, v)
	})
}

func TestHashCollision(t *testing.T) {
	hm := NewHashMap[string](WithCapacity(16))

	key1 := TestKey{1, "a"}  // Hash: 1+1=2
	key2 := TestKey{0, "bb"} // Hash: 0+2=2
	key3 := TestKey{2, "a"}  // Hash: 2+1=3

	hm.Set(key1, "value1")
	hm.Set(key2, "value2")
	hm.Set(key3, "value3")

	assert.Equal(t, 3, hm.Size())

	val, exists := hm.Get(key2)
	assert.True(t, exists)
	assert.Equal(t, "value2", val)

	hm.Delete(key1)
	assert.Equal(t, 2, hm.Size())
	_, exists = hm.Get(key1)
	assert.False(t, exists)
}

func TestAutoResize(t *testing.T) {
	initialCap := 16
	hm := NewHashMap[int](WithCapacity(initialCap))

	// 16 * 0.75 = 12
	for i := 0; i < 13; i++ {
		hm.Set(TestKey{i, ""}, i)
	}
	assert.Greater(t, len(hm.buckets), initialCap)

	for i := 0; i < 13; i++ {
		val, exists := hm.Get(TestKey{i, ""})
		assert.True(t, exists)
		assert.Equal(t, i, val)
	}

	count := 0
	for range hm.Iterator() {
		count++
	}
	assert.Equal(t, 13, count)
}

func TestSignatureKeys(t *testing.T) {
	hm := NewHashMap[int]()
	hm.Set(signature{0, 1, -1}, 0)
	hm.Set(signature{0, -1, 1}, 1)

	v, ok := hm.Get(signature{0, 1, -1})
	assert.True(t, ok)
	assert.Equal(t, 0, v)
	v, ok = hm.Get(signature{0, -1, 1})
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	_, ok = hm.Get(signature{0, 1})
	assert.False(t, ok)

	assert.False(t, signature{1}.Equals(TestKey{1, ""}))
	assert.NotEqual(t, signature{0, 1}.Hash(), signature{1, 0}.Hash())
}

func TestZeroCapacity(t *testing.T) {
	hm := NewHashMap[string](WithCapacity(0))
	assert.Equal(t, 1, len(hm.buckets))
}

func TestMixInts(t *testing.T) {
	h := uint64(1^uint32(mix32(7))) * phiC64
	assert.Equal(t, h^(h>>32), mixInts([]int{7}))
	assert.NotEqual(t, mixInts([]int{0, 1}), mixInts([]int{1, 0}))
	assert.NotEqual(t, mixInts([]int{0}), mixInts([]int{0, 0}))
}
