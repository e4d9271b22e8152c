//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	usernamer "github.com/regkit/usernamer"
	"github.com/regkit/usernamer/config"
	"github.com/regkit/usernamer/internal/testutil"
	"github.com/regkit/usernamer/model"
	"github.com/regkit/usernamer/oracle/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "usernamer_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/usernamer_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestRegistry_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db, err := postgres.Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	r := postgres.NewRegistry(db)

	require.NoError(t, r.CheckUsername(ctx, "alice"))
	require.NoError(t, r.Reserve(ctx, "alice"))
	assert.ErrorIs(t, r.CheckUsername(ctx, "alice"), model.ErrUsernameInUse)
	assert.ErrorIs(t, r.Reserve(ctx, "alice"), model.ErrUsernameInUse)
}

func TestDeriver_AgainstRegistry(t *testing.T) {
	ctx := context.Background()
	db, err := postgres.Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	r := postgres.NewRegistry(db)
	d := usernamer.NewDeriver(&config.Config{ThreepidToUse: model.KindEmail}, r, testutil.MakeNoopLogger())

	ids := model.VerifiedIdentifiers{
		model.KindEmail: {Address: "taken@example.com", Medium: "email"},
	}

	username, err := d.DeriveUsername(ctx, ids, nil)
	require.NoError(t, err)
	assert.Equal(t, "taken-example.com", username)
	require.NoError(t, r.Reserve(ctx, username))

	username, err = d.DeriveUsername(ctx, ids, nil)
	require.NoError(t, err)
	assert.Equal(t, "taken-example.com1", username)
}
