package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/mediocregopher/radix/v4"
)

const redisOpTimeout = 3 * time.Second

// RedisBackend keeps the whole durable document under a single Redis key
type RedisBackend struct {
	client radix.Client
	key    string
}

// NewRedisBackend connects a pool to addr
func NewRedisBackend(ctx context.Context, addr, key string) (*RedisBackend, error) {
	poolConfig := radix.PoolConfig{}
	client, err := poolConfig.New(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis pool: %w", err)
	}

	return newRedisBackend(client, key), nil
}

func newRedisBackend(client radix.Client, key string) *RedisBackend {
	return &RedisBackend{
		client: client,
		key:    key,
	}
}

// Load fetches the document. A missing key is an empty document.
func (b *RedisBackend) Load() (map[string]Record, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	var data []byte
	mb := radix.Maybe{Rcv: &data}
	if err := b.client.Do(ctx, radix.Cmd(&mb, "GET", b.key)); err != nil {
		return nil, fmt.Errorf("redis GET %s: %w", b.key, err)
	}
	if mb.Null {
		return make(map[string]Record), nil
	}

	return decodeDocument(data)
}

// Save overwrites the document
func (b *RedisBackend) Save(doc map[string]Record) error {
	data, err := encodeDocument(doc)
	if err != nil {
		return fmt.Errorf("encode durable document: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := b.client.Do(ctx, radix.Cmd(nil, "SET", b.key, string(data))); err != nil {
		return fmt.Errorf("redis SET %s: %w", b.key, err)
	}
	return nil
}

// Close releases the pool
func (b *RedisBackend) Close() error {
	return b.client.Close()
}
