package meta

import (
	"io"

	"github.com/spf13/viper"
)

const (
	RedisType    = "Redis"
	InMemoryType = "InMemory"
)

//RateLimitRecord is a per-client-IP counter with a sliding expiration window
type RateLimitRecord struct {
	Count     int   `json:"count"`
	Timestamp int64 `json:"timestamp"`
}

//Storage covers the two key-value concerns of the ingestion core:
//rate-limit counters and persisted visit records. Both must honor per-key
//TTL semantics and read-your-writes consistency per key.
type Storage interface {
	io.Closer

	//rate limiting
	GetRateLimit(ip string) (*RateLimitRecord, error)
	SaveRateLimit(ip string, record *RateLimitRecord, ttlSeconds int) error

	//visit persistence (write-once, no read path)
	SaveVisit(key string, payload []byte, ttlSeconds int) error

	Type() string
}

func NewStorage(meta *viper.Viper) (Storage, error) {
	if meta == nil || meta.GetString("redis.host") == "" {
		return NewInMemory(), nil
	}

	host := meta.GetString("redis.host")
	port := meta.GetInt("redis.port")
	password := meta.GetString("redis.password")

	if port == 0 {
		port = 6379
	}

	return NewRedis(host, port, password)
}

func rateLimitKey(ip string) string {
	return "rateLimit:" + ip
}
