package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/tourtrek/config"
	"github.com/Domenick1991/tourtrek/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

var errPostgresURI = errors.New("database.uri is required for the postgres driver")

// Store owns the database handle shared by the repositories.
type Store struct {
	Users    repository.UserRepository
	Packages repository.PackageRepository
	Bookings repository.BookingRepository
	close    func(context.Context) error
}

// OpenStore connects to the configured database and prepares its indexes or
// tables. The caller must Close the store on shutdown.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg)
	default:
		return openMongo(ctx, cfg)
	}
}

func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close(ctx)
}

func openMongo(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	client, err := repository.ConnectMongo(ctx, cfg.MongoURI())
	if err != nil {
		return nil, err
	}

	db := client.Database(cfg.Name)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return &Store{
		Users:    repository.NewMongoUserRepository(db),
		Packages: repository.NewMongoPackageRepository(db),
		Bookings: repository.NewMongoBookingRepository(db),
		close:    client.Disconnect,
	}, nil
}

func openPostgres(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	if cfg.URI == "" {
		return nil, errPostgresURI
	}

	pool, err := pgxpool.New(ctx, cfg.URI)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := repository.EnsureTables(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &Store{
		Users:    repository.NewPGUserRepository(pool),
		Packages: repository.NewPGPackageRepository(pool),
		Bookings: repository.NewPGBookingRepository(pool),
		close: func(context.Context) error {
			pool.Close()
			return nil
		},
	}, nil
}
