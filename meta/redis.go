package meta

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/gomodule/redigo/redis"
)

type Redis struct {
	pool *redis.Pool
}

//redis key [value] - description
//rateLimit:<clientIP> [json {count, timestamp}] - counter, expires after the rate-limit window
//visit:<unixMillis>:<uuid> [json StoredEvent] - persisted event, expires after the retention period
func NewRedis(host string, port int, password string) (*Redis, error) {
	r := &Redis{pool: &redis.Pool{
		MaxIdle:     100,
		MaxActive:   600,
		IdleTimeout: 240 * time.Second,

		Wait: false,
		Dial: func() (redis.Conn, error) {
			c, err := redis.Dial(
				"tcp",
				host+":"+strconv.Itoa(port),
				redis.DialConnectTimeout(10*time.Second),
				redis.DialReadTimeout(10*time.Second),
				redis.DialPassword(password),
			)
			if err != nil {
				return nil, err
			}
			return c, err
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			_, err := c.Do("PING")
			return err
		},
	}}

	//test connection
	connection := r.pool.Get()
	defer connection.Close()
	_, err := redis.String(connection.Do("PING"))
	if err != nil {
		return nil, fmt.Errorf("Error testing connection to Redis: %v", err)
	}

	return r, nil
}

func (r *Redis) GetRateLimit(ip string) (*RateLimitRecord, error) {
	connection := r.pool.Get()
	defer connection.Close()

	payload, err := redis.Bytes(connection.Do("GET", rateLimitKey(ip)))
	if err != nil {
		if err == redis.ErrNil {
			return nil, nil
		}

		return nil, err
	}

	record := &RateLimitRecord{}
	if err := json.Unmarshal(payload, record); err != nil {
		return nil, fmt.Errorf("Error parsing rate limit record for [%s]: %v", ip, err)
	}

	return record, nil
}

//SaveRateLimit overwrites the counter with a fresh expiration: the effective
//behavior is a rolling approximate window, not a fixed bucket reset
func (r *Redis) SaveRateLimit(ip string, record *RateLimitRecord, ttlSeconds int) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}

	connection := r.pool.Get()
	defer connection.Close()

	_, err = connection.Do("SET", rateLimitKey(ip), payload, "EX", ttlSeconds)
	return err
}

func (r *Redis) SaveVisit(key string, payload []byte, ttlSeconds int) error {
	connection := r.pool.Get()
	defer connection.Close()

	_, err := connection.Do("SET", key, payload, "EX", ttlSeconds)
	return err
}

func (r *Redis) Type() string {
	return RedisType
}

func (r *Redis) Close() error {
	return r.pool.Close()
}
