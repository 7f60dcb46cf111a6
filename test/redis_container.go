package test

import (
	"context"
	"os"
	"strconv"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	tcWait "github.com/testcontainers/testcontainers-go/wait"
)

const (
	redisDefaultPort = "6379/tcp"

	envRedisPortVariable = "REDIS_TEST_PORT"
)

type RedisContainer struct {
	Container testcontainers.Container
	Context   context.Context
	Host      string
	Port      int
}

//NewRedisContainer creates a new Redis test container if REDIS_TEST_PORT is
//not defined. Otherwise uses redis at the defined port. This logic is
//required for running tests at CI environment
func NewRedisContainer(ctx context.Context) (*RedisContainer, error) {
	if os.Getenv(envRedisPortVariable) != "" {
		port, err := strconv.Atoi(os.Getenv(envRedisPortVariable))
		if err != nil {
			return nil, err
		}
		return &RedisContainer{Context: ctx, Host: "localhost", Port: port}, nil
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:6-alpine",
			ExposedPorts: []string{redisDefaultPort},
			WaitingFor:   tcWait.ForListeningPort(redisDefaultPort),
		},
		Started: true,
	})
	if err != nil {
		return nil, err
	}

	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx)
		return nil, err
	}

	port, err := container.MappedPort(ctx, nat.Port(redisDefaultPort))
	if err != nil {
		container.Terminate(ctx)
		return nil, err
	}

	return &RedisContainer{Container: container, Context: ctx, Host: host, Port: port.Int()}, nil
}

func (rc *RedisContainer) Close() {
	if rc.Container != nil {
		rc.Container.Terminate(rc.Context)
	}
}
