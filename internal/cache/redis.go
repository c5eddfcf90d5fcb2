package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache key namespaces
const (
	renderKeyPrefix    = "render:"
	companyTemplateKey = "templates:company"
	clientTemplateKey  = "templates:client"

	renderTTL   = 1 * time.Hour
	templateTTL = 10 * time.Minute
)

var client *redis.Client

// Options configures the Redis connection
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Init initializes the Redis connection. On failure the client stays nil and
// every cache call degrades to a miss.
func Init(opts Options) error {
	client = redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client, nil when caching is disabled
func GetClient() *redis.Client {
	return client
}

// RenderKey derives a cache key from the canonical JSON of the invoice input.
// Identical inputs render identical documents, so the PDF bytes are safe to
// replay from cache.
func RenderKey(data interface{}) (string, bool) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", false
	}
	sum := sha256.Sum256(payload)
	return renderKeyPrefix + hex.EncodeToString(sum[:]), true
}

// GetCachedRender returns a previously rendered document
func GetCachedRender(ctx context.Context, key string) ([]byte, bool) {
	return GetCached(ctx, key)
}

// CacheRender stores a rendered document
func CacheRender(ctx context.Context, key string, pdf []byte) {
	SetCached(ctx, key, pdf, renderTTL)
}

// GetCachedTemplates returns the cached template list for a kind
func GetCachedTemplates(ctx context.Context, kind string) ([]byte, bool) {
	return GetCached(ctx, templateKey(kind))
}

// CacheTemplates stores the template list for a kind
func CacheTemplates(ctx context.Context, kind string, data []byte) {
	SetCached(ctx, templateKey(kind), data, templateTTL)
}

// InvalidateTemplates drops the cached template list for a kind.
// Called when: SaveTemplate, DeleteTemplate, ImportTemplates
func InvalidateTemplates(ctx context.Context, kind string) {
	InvalidateKeys(ctx, templateKey(kind))
}

func templateKey(kind string) string {
	if kind == "client" {
		return clientTemplateKey
	}
	return companyTemplateKey
}

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidatePattern removes all keys matching a glob pattern
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateKeys removes specific cache keys
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// InvalidateRenderCache clears every cached document.
// Called when the font source or layout configuration changes at runtime.
func InvalidateRenderCache(ctx context.Context) {
	InvalidatePattern(ctx, renderKeyPrefix+"*")
}

// IsHealthy returns true if Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
