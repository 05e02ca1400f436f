package database

import (
	"renthub/pkg/cache"
	"renthub/pkg/config"
	"sync"
)

var (
	redisCacheInstance *cache.RedisCache
	redisCacheOnce     sync.Once
)

// GetRedisCache 获取Redis缓存的单例实例，未启用时返回nil
func GetRedisCache() *cache.RedisCache {
	redisCacheOnce.Do(func() {
		cfg := config.GetConfig()
		if !cfg.Redis.Enabled {
			return
		}
		redisCacheInstance = cache.NewRedisCache(&cache.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
	})
	return redisCacheInstance
}

// CloseRedisCache 关闭Redis连接
func CloseRedisCache() error {
	if redisCacheInstance != nil {
		return redisCacheInstance.Close()
	}
	return nil
}
