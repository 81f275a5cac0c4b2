package bootstrap

import (
	"context"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	app "github.com/mohammadpnp/contact-import/internal/application/contact"
	"github.com/mohammadpnp/contact-import/internal/config"
	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
	infrafile "github.com/mohammadpnp/contact-import/internal/infrastructure/file"
	"github.com/mohammadpnp/contact-import/internal/infrastructure/objectstore"
	"github.com/mohammadpnp/contact-import/internal/infrastructure/pubsub"
	"github.com/mohammadpnp/contact-import/internal/infrastructure/repository"
	"github.com/mohammadpnp/contact-import/internal/logger"
)

const (
	UploadBackendLocal = "local"
	UploadBackendMinio = "minio"
)

// UploadStore stores uploaded files and reopens them for import.
type UploadStore interface {
	app.ImportSource
	Save(ctx context.Context, name string, r io.Reader, size int64) (string, error)
	Remove(ctx context.Context, path string) error
}

// Infrastructure holds the connections shared by the HTTP server and the
// import worker pool.
type Infrastructure struct {
	DB        *gorm.DB
	Pool      *pgxpool.Pool
	Uploads   UploadStore
	Redis     *goredis.Client
	Publisher domain.Publisher
}

func NewInfrastructure(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Infrastructure, error) {
	db, err := gorm.Open(postgres.Open(cfg.Database.URL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	infra := &Infrastructure{DB: db, Pool: pool, Publisher: pubsub.NopPublisher{}}

	uploads, err := newUploadStore(ctx, cfg)
	if err != nil {
		infra.Close()
		return nil, err
	}
	infra.Uploads = uploads

	if cfg.Redis.Addr == "" {
		log.Warn("REDIS_ADDR is empty, import notifications are disabled")
		return infra, nil
	}

	rdb, err := pubsub.NewRedisClient(ctx, cfg.Redis.Addr)
	if err != nil {
		infra.Close()
		return nil, fmt.Errorf("failed to connect redis: %w", err)
	}
	infra.Redis = rdb
	infra.Publisher = pubsub.NewRedisPublisher(rdb, cfg.Redis.ChannelPrefix)

	return infra, nil
}

func newUploadStore(ctx context.Context, cfg *config.Config) (UploadStore, error) {
	switch cfg.Upload.Backend {
	case UploadBackendMinio:
		client, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
			Secure: cfg.Storage.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create minio client: %w", err)
		}
		store, err := objectstore.NewMinioStore(ctx, client, cfg.Storage.Bucket)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize upload storage: %w", err)
		}
		return store, nil
	default:
		return infrafile.NewLocalSource(cfg.Upload.Dir), nil
	}
}

// NewReconciler builds the reconciler that reads files from source.
func (i *Infrastructure) NewReconciler(source app.ImportSource, log *logger.Logger) *app.Reconciler {
	return app.NewReconciler(
		app.NewIngestor(source),
		repository.NewContactUpsertRepository(i.Pool),
		repository.NewImportSummaryRepository(i.DB),
		i.Publisher,
		log,
	)
}

func (i *Infrastructure) Close() {
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	if i.Pool != nil {
		i.Pool.Close()
	}
	if i.DB != nil {
		if sqlDB, err := i.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
