// Package store provides the key-value and pub/sub backend used for login
// sessions, job locks, password-reset tokens and realtime result fan-out.
package store

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a key does not exist in the store.
var ErrNotFound = errors.New("store: key not found")

// Message is a single pub/sub payload.
type Message struct {
	Channel string
	Payload []byte
}

// Subscription is a handle on a pub/sub channel. Close releases the
// subscriber; the Messages channel is closed afterwards.
type Subscription interface {
	Messages() <-chan *Message
	Close() error
}

// Store abstracts the cache backend. The memory implementation serves
// single-node deployments; Redis makes sessions and events cross-node.
type Store interface {
	Set(key string, value []byte, ttl time.Duration) error
	Get(key string) ([]byte, error)
	Delete(key string) error
	Exists(key string) (bool, error)
	// SetNX sets the key only when absent; used for distributed job locks.
	SetNX(key string, value []byte, ttl time.Duration) (bool, error)

	Publish(channel string, message []byte) error
	Subscribe(channel string) (Subscription, error)

	Clear() error
	Close() error
}
