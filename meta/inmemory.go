package meta

import (
	"encoding/json"
	"strings"
	"sync"
	"time"
)

//InMemory keeps both KV concerns in process memory with lazy TTL expiration.
//Used when no Redis is configured and in tests. Records don't survive restarts.
type InMemory struct {
	mu     sync.Mutex
	values map[string]expiringValue
}

type expiringValue struct {
	payload  []byte
	expireAt time.Time
}

func NewInMemory() *InMemory {
	return &InMemory{values: map[string]expiringValue{}}
}

func (im *InMemory) GetRateLimit(ip string) (*RateLimitRecord, error) {
	payload, ok := im.get(rateLimitKey(ip))
	if !ok {
		return nil, nil
	}

	record := &RateLimitRecord{}
	if err := json.Unmarshal(payload, record); err != nil {
		return nil, err
	}

	return record, nil
}

func (im *InMemory) SaveRateLimit(ip string, record *RateLimitRecord, ttlSeconds int) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}

	im.put(rateLimitKey(ip), payload, ttlSeconds)
	return nil
}

func (im *InMemory) SaveVisit(key string, payload []byte, ttlSeconds int) error {
	im.put(key, payload, ttlSeconds)
	return nil
}

func (im *InMemory) Type() string {
	return InMemoryType
}

func (im *InMemory) Close() error {
	return nil
}

//VisitKeys returns the keys of all non-expired visit records (test introspection)
func (im *InMemory) VisitKeys() []string {
	im.mu.Lock()
	defer im.mu.Unlock()

	var keys []string
	now := time.Now()
	for key, value := range im.values {
		if strings.HasPrefix(key, "visit:") && now.Before(value.expireAt) {
			keys = append(keys, key)
		}
	}
	return keys
}

//GetVisit returns a persisted visit payload or nil (test introspection)
func (im *InMemory) GetVisit(key string) []byte {
	payload, ok := im.get(key)
	if !ok {
		return nil
	}
	return payload
}

func (im *InMemory) get(key string) ([]byte, bool) {
	im.mu.Lock()
	defer im.mu.Unlock()

	value, ok := im.values[key]
	if !ok {
		return nil, false
	}

	if !time.Now().Before(value.expireAt) {
		delete(im.values, key)
		return nil, false
	}

	return value.payload, true
}

func (im *InMemory) put(key string, payload []byte, ttlSeconds int) {
	im.mu.Lock()
	defer im.mu.Unlock()

	im.values[key] = expiringValue{
		payload:  payload,
		expireAt: time.Now().Add(time.Duration(ttlSeconds) * time.Second),
	}
}
