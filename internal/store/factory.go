package store

import (
	"satta-board/internal/types"

	"github.com/sirupsen/logrus"
)

// NewStore builds the Store selected by configuration: Redis when REDIS_DSN
// is set, the in-memory store otherwise.
func NewStore(configManager types.ConfigManager) (Store, error) {
	dsn := configManager.GetRedisDSN()
	if dsn == "" {
		logrus.Info("REDIS_DSN not configured, using in-memory store")
		return NewMemoryStore(), nil
	}

	redisStore, err := NewRedisStore(dsn)
	if err != nil {
		return nil, err
	}
	logrus.Info("Connected to Redis store")
	return redisStore, nil
}
