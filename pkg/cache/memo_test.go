package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewMemoStore(t *testing.T) {
	asserts := assert.New(t)

	store := NewMemoStore()
	asserts.NotNil(store)
	asserts.NotNil(store.Store)
}

func TestMemoStore_Set(t *testing.T) {
	asserts := assert.New(t)

	store := NewMemoStore()
	err := store.Set("KEY", "vAL", -1)
	asserts.NoError(err)

	val, ok := store.Store.Load("KEY")
	asserts.True(ok)
	asserts.Equal("vAL", val.(itemWithTTL).Value)
}

func TestMemoStore_Get(t *testing.T) {
	asserts := assert.New(t)
	store := NewMemoStore()

	{
		_ = store.Set("string", "string_val", -1)
		val, ok := store.Get("string")
		asserts.Equal("string_val", val)
		asserts.True(ok)
	}

	// missing key
	{
		val, ok := store.Get("something")
		asserts.Equal(nil, val)
		asserts.False(ok)
	}

	// struct value
	{
		type testStruct struct {
			key int
		}
		test := testStruct{key: 233}
		_ = store.Set("struct", test, -1)
		val, ok := store.Get("struct")
		asserts.True(ok)
		res, ok := val.(testStruct)
		asserts.True(ok)
		asserts.Equal(test, res)
	}

	// expired
	{
		store.Store.Store("expired", itemWithTTL{Value: "v", Expires: time.Now().Unix() - 10})
		val, ok := store.Get("expired")
		asserts.Nil(val)
		asserts.False(ok)
	}
}

func TestMemoStore_Gets(t *testing.T) {
	asserts := assert.New(t)
	store := NewMemoStore()

	asserts.NoError(store.Sets(map[string]interface{}{"1": "1", "2": "2"}, "test_"))
	res, missed := store.Gets([]string{"1", "2", "3"}, "test_")
	asserts.Equal(map[string]interface{}{"1": "1", "2": "2"}, res)
	asserts.Equal([]string{"3"}, missed)

	asserts.NoError(store.Delete([]string{"1"}, "test_"))
	_, ok := store.Get("test_1")
	asserts.False(ok)
}

func TestMemoStore_GarbageCollect(t *testing.T) {
	asserts := assert.New(t)
	store := NewMemoStore()
	store.Store.Store("stale", itemWithTTL{Value: "v", Expires: time.Now().Unix() - 10})
	asserts.NoError(store.Set("fresh", "v", 3600))
	asserts.NoError(store.Set("forever", "v", 0))

	store.GarbageCollect()

	_, ok := store.Store.Load("stale")
	asserts.False(ok)
	_, ok = store.Get("fresh")
	asserts.True(ok)
	_, ok = store.Get("forever")
	asserts.True(ok)
}
