package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisStore is a Redis-backed Store implementation.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(dsn string) (*RedisStore, error) {
	opts, err := redis.ParseURL(dsn)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) Set(key string, value []byte, ttl time.Duration) error {
	return s.client.Set(context.Background(), key, value, ttl).Err()
}

func (s *RedisStore) Get(key string) ([]byte, error) {
	val, err := s.client.Get(context.Background(), key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return val, err
}

func (s *RedisStore) Delete(key string) error {
	return s.client.Del(context.Background(), key).Err()
}

func (s *RedisStore) Exists(key string) (bool, error) {
	n, err := s.client.Exists(context.Background(), key).Result()
	return n > 0, err
}

func (s *RedisStore) SetNX(key string, value []byte, ttl time.Duration) (bool, error) {
	return s.client.SetNX(context.Background(), key, value, ttl).Result()
}

func (s *RedisStore) Publish(channel string, message []byte) error {
	return s.client.Publish(context.Background(), channel, message).Err()
}

// redisSubscription adapts redis.PubSub to the Subscription interface.
type redisSubscription struct {
	pubsub   *redis.PubSub
	messages chan *Message
	done     chan struct{}
}

func (sub *redisSubscription) Messages() <-chan *Message {
	return sub.messages
}

func (sub *redisSubscription) Close() error {
	close(sub.done)
	return sub.pubsub.Close()
}

func (s *RedisStore) Subscribe(channel string) (Subscription, error) {
	pubsub := s.client.Subscribe(context.Background(), channel)

	// Confirm the subscription before relaying
	if _, err := pubsub.Receive(context.Background()); err != nil {
		pubsub.Close()
		return nil, err
	}

	sub := &redisSubscription{
		pubsub:   pubsub,
		messages: make(chan *Message, 64),
		done:     make(chan struct{}),
	}

	go func() {
		defer close(sub.messages)
		for {
			select {
			case msg, ok := <-pubsub.Channel():
				if !ok {
					return
				}
				select {
				case sub.messages <- &Message{Channel: msg.Channel, Payload: []byte(msg.Payload)}:
				default:
					logrus.WithField("channel", msg.Channel).Debug("Dropping message for slow subscriber")
				}
			case <-sub.done:
				return
			}
		}
	}()

	return sub, nil
}

// Clear flushes the current database. Used on startup to drop stale
// sessions and locks.
func (s *RedisStore) Clear() error {
	return s.client.FlushDB(context.Background()).Err()
}
