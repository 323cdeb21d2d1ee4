//go:build integration

package testutils

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// SetupRedisForIntegration returns a redis:// URL. TEST_REDIS_URL points at
// an existing server; otherwise a container is started.
func SetupRedisForIntegration() (string, func()) {
	if url := os.Getenv("TEST_REDIS_URL"); url != "" {
		return url, func() {}
	}

	ctx := context.Background()
	rc, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		log.Fatal(err)
	}
	host, err := rc.Host(ctx)
	if err != nil {
		log.Fatal(err)
	}
	port, err := rc.MappedPort(ctx, "6379")
	if err != nil {
		log.Fatal(err)
	}
	return fmt.Sprintf("redis://%s:%s/0", host, port.Port()), func() { _ = rc.Terminate(ctx) }
}
