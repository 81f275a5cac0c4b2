//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
	"github.com/mohammadpnp/contact-import/internal/infrastructure/db"
	"github.com/mohammadpnp/contact-import/internal/infrastructure/repository"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()

	if dsn = os.Getenv("TEST_DATABASE_URL"); dsn != "" {
		if err := db.Migrate(ctx, dsn); err != nil {
			panic(err)
		}
		os.Exit(m.Run())
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "contacts_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2 * time.Minute),
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
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/contacts_test?sslmode=disable", host, port.Port())

	if err := db.Migrate(ctx, dsn); err != nil {
		panic(err)
	}

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func openPostgres(t *testing.T) (*pgxpool.Pool, *gorm.DB) {
	t.Helper()

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.Exec("DELETE FROM contacts").Error)
	require.NoError(t, gdb.Exec("DELETE FROM import_summaries").Error)

	return pool, gdb
}

func TestContactUpsertRepositoryIntegration(t *testing.T) {
	pool, gdb := openPostgres(t)
	ctx := context.Background()

	upserts := repository.NewContactUpsertRepository(pool)
	queries := repository.NewContactQueryRepository(gdb)

	created, err := upserts.UpsertByEmail(ctx, "ann@x.com", "Ann", "1")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = upserts.UpsertByEmail(ctx, "ann@x.com", "Ann2", "3")
	require.NoError(t, err)
	assert.False(t, created)

	got, err := queries.FindByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Ann2", got.Name)
	assert.Equal(t, "3", got.Phone)
}

func TestContactUpsertRepositoryConcurrentRunsIntegration(t *testing.T) {
	pool, gdb := openPostgres(t)
	ctx := context.Background()
	upserts := repository.NewContactUpsertRepository(pool)

	const writers = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inserts int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			created, err := upserts.UpsertByEmail(ctx, "shared@x.com", fmt.Sprintf("writer-%d", i), "")
			assert.NoError(t, err)
			if created {
				mu.Lock()
				inserts++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, inserts)

	var count int64
	require.NoError(t, gdb.Raw("SELECT COUNT(*) FROM contacts WHERE email = ?", "shared@x.com").Scan(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestImportSummaryRepositoryIntegration(t *testing.T) {
	_, gdb := openPostgres(t)
	ctx := context.Background()
	repo := repository.NewImportSummaryRepository(gdb)

	require.NoError(t, repo.Append(ctx, domain.ImportSummary{
		ID:            "4955eb4d-c7f2-42f6-80ca-33838ce37c31",
		FileName:      "contacts.csv",
		InsertedCount: 1,
		UpdatedCount:  1,
		SkippedCount:  1,
		CreatedAt:     time.Now().UTC(),
	}))

	got, err := repo.List(ctx, domain.SummaryFilter{FileName: "contacts.csv"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].SkippedCount)
}
