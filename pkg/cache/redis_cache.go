package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisCache Redis缓存实现
type RedisCache struct {
	client *redis.Client
	prefix string
}

// Config Redis配置
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	Prefix   string
}

// NewRedisCache 创建Redis缓存实例
func NewRedisCache(config *Config) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	prefix := config.Prefix
	if prefix == "" {
		prefix = "renthub:cache"
	}

	return &RedisCache{
		client: client,
		prefix: prefix,
	}
}

// Close 关闭Redis连接
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ping 测试Redis连接
func (c *RedisCache) Ping() error {
	ctx := context.Background()
	return c.client.Ping(ctx).Err()
}

// GetClient 获取底层客户端
func (c *RedisCache) GetClient() *redis.Client {
	return c.client
}

func (c *RedisCache) key(name string) string {
	return fmt.Sprintf("%s:%s", c.prefix, name)
}

// SetJSON 序列化对象写入缓存
func (c *RedisCache) SetJSON(name string, value interface{}, ttl time.Duration) error {
	ctx := context.Background()

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("序列化缓存值失败: %v", err)
	}

	return c.client.Set(ctx, c.key(name), data, ttl).Err()
}

// GetJSON 读取缓存并反序列化到dest，未命中返回false
func (c *RedisCache) GetJSON(name string, dest interface{}) (bool, error) {
	ctx := context.Background()

	data, err := c.client.Get(ctx, c.key(name)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("反序列化缓存值失败: %v", err)
	}
	return true, nil
}

// Delete 删除缓存键
func (c *RedisCache) Delete(names ...string) error {
	ctx := context.Background()

	keys := make([]string, 0, len(names))
	for _, name := range names {
		keys = append(keys, c.key(name))
	}
	return c.client.Del(ctx, keys...).Err()
}
