package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	s := NewMemoryStore()
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestMemoryStoreSetGet(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Set("k", []byte("v"), 0))
	v, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)

	exists, err := s.Exists("k")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, s.Delete("k"))
	_, err = s.Get("k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreGetMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreTTL(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Set("k", []byte("v"), 20*time.Millisecond))
	_, err := s.Get("k")
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	_, err = s.Get("k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreSetNX(t *testing.T) {
	s := newTestStore(t)

	ok, err := s.SetNX("lock", []byte("1"), time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.SetNX("lock", []byte("2"), time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "second claim must fail while the lock is held")
}

func TestMemoryStoreSetNXAfterExpiry(t *testing.T) {
	s := newTestStore(t)

	ok, err := s.SetNX("lock", []byte("1"), 20*time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)

	time.Sleep(50 * time.Millisecond)
	ok, err = s.SetNX("lock", []byte("2"), time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "expired lock must be claimable")
}

func TestMemoryStorePubSub(t *testing.T) {
	s := newTestStore(t)

	sub, err := s.Subscribe("events")
	require.NoError(t, err)
	defer sub.Close()

	require.NoError(t, s.Publish("events", []byte("hello")))

	select {
	case msg := <-sub.Messages():
		assert.Equal(t, "events", msg.Channel)
		assert.Equal(t, []byte("hello"), msg.Payload)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for published message")
	}
}

func TestMemoryStoreClear(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Set("a", []byte("1"), 0))
	require.NoError(t, s.Set("b", []byte("2"), 0))
	require.NoError(t, s.Clear())

	_, err := s.Get("a")
	assert.ErrorIs(t, err, ErrNotFound)
}
