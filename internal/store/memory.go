package store

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// memoryItem holds a value and its expiration timestamp (0 = no expiry).
type memoryItem struct {
	value     []byte
	expiresAt int64
}

// MemoryStore is an in-memory Store implementation safe for concurrent use.
type MemoryStore struct {
	mu            sync.RWMutex
	data          map[string]memoryItem
	muSubscribers sync.RWMutex
	subscribers   map[string]map[chan *Message]struct{}
	stopCleanup   chan struct{}
}

// NewMemoryStore creates a MemoryStore and starts its expiry sweeper.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		data:        make(map[string]memoryItem),
		subscribers: make(map[string]map[chan *Message]struct{}),
		stopCleanup: make(chan struct{}),
	}
	go s.cleanupExpiredItems()
	return s
}

// Close stops the sweeper and drops all subscribers.
func (s *MemoryStore) Close() error {
	close(s.stopCleanup)

	s.muSubscribers.Lock()
	for channel := range s.subscribers {
		delete(s.subscribers, channel)
	}
	s.muSubscribers.Unlock()
	return nil
}

// Set stores a key-value pair.
func (s *MemoryStore) Set(key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expiresAt int64
	if ttl > 0 {
		expiresAt = time.Now().UnixNano() + ttl.Nanoseconds()
	}
	s.data[key] = memoryItem{value: value, expiresAt: expiresAt}
	return nil
}

// Get retrieves a value by its key.
func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	item, exists := s.data[key]
	s.mu.RUnlock()

	if !exists {
		return nil, ErrNotFound
	}
	if item.expiresAt > 0 && time.Now().UnixNano() > item.expiresAt {
		s.mu.Lock()
		delete(s.data, key)
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	return item.value, nil
}

// Delete removes a value by its key.
func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Exists checks if a key exists and has not expired.
func (s *MemoryStore) Exists(key string) (bool, error) {
	s.mu.RLock()
	item, exists := s.data[key]
	s.mu.RUnlock()

	if !exists {
		return false, nil
	}
	if item.expiresAt > 0 && time.Now().UnixNano() > item.expiresAt {
		s.mu.Lock()
		delete(s.data, key)
		s.mu.Unlock()
		return false, nil
	}
	return true, nil
}

// SetNX sets a key-value pair if the key does not already exist.
func (s *MemoryStore) SetNX(key string, value []byte, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item, exists := s.data[key]; exists {
		if item.expiresAt == 0 || time.Now().UnixNano() < item.expiresAt {
			return false, nil
		}
	}

	var expiresAt int64
	if ttl > 0 {
		expiresAt = time.Now().UnixNano() + ttl.Nanoseconds()
	}
	s.data[key] = memoryItem{value: value, expiresAt: expiresAt}
	return true, nil
}

// Publish delivers a message to every subscriber of the channel. Slow
// subscribers are skipped rather than blocking the publisher.
func (s *MemoryStore) Publish(channel string, message []byte) error {
	s.muSubscribers.RLock()
	defer s.muSubscribers.RUnlock()

	for ch := range s.subscribers[channel] {
		select {
		case ch <- &Message{Channel: channel, Payload: message}:
		default:
			logrus.WithField("channel", channel).Debug("Dropping message for slow subscriber")
		}
	}
	return nil
}

// memorySubscription implements Subscription for MemoryStore.
type memorySubscription struct {
	store     *MemoryStore
	channel   string
	messages  chan *Message
	closeOnce sync.Once
}

func (sub *memorySubscription) Messages() <-chan *Message {
	return sub.messages
}

func (sub *memorySubscription) Close() error {
	sub.closeOnce.Do(func() {
		sub.store.muSubscribers.Lock()
		if subs, ok := sub.store.subscribers[sub.channel]; ok {
			delete(subs, sub.messages)
			if len(subs) == 0 {
				delete(sub.store.subscribers, sub.channel)
			}
		}
		sub.store.muSubscribers.Unlock()
		close(sub.messages)
	})
	return nil
}

// Subscribe registers a subscriber for a channel.
func (s *MemoryStore) Subscribe(channel string) (Subscription, error) {
	messages := make(chan *Message, 64)

	s.muSubscribers.Lock()
	if s.subscribers[channel] == nil {
		s.subscribers[channel] = make(map[chan *Message]struct{})
	}
	s.subscribers[channel][messages] = struct{}{}
	s.muSubscribers.Unlock()

	return &memorySubscription{store: s, channel: channel, messages: messages}, nil
}

// Clear removes all keys.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]memoryItem)
	return nil
}

// cleanupExpiredItems periodically removes expired entries so keys that are
// never read again don't leak.
func (s *MemoryStore) cleanupExpiredItems() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now().UnixNano()
			s.mu.Lock()
			for key, item := range s.data {
				if item.expiresAt > 0 && now > item.expiresAt {
					delete(s.data, key)
				}
			}
			s.mu.Unlock()
		case <-s.stopCleanup:
			return
		}
	}
}
