package store

import (
	"fmt"

	"github.com/lottolab/powerpick/internal/config"
)

// NewFromConfig constructs a KVStore based on storage configuration.
func NewFromConfig(cfg config.StorageConfig) (KVStore, error) {
	switch cfg.Type {
	case config.StorageBadger:
		return NewBadgerStore(cfg.Directory)
	case config.StorageRedis:
		return NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password)
	case config.StorageMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
