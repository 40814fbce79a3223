package postgres

//nolint:revive
import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"sync"
	"time"

	"hotel/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	postgresPingTimeout       = 2 * time.Second
)

var errNoConnection = errors.New("no database connection")

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

var (
	mu      sync.Mutex
	current *Connection

	// connect is swapped in tests.
	connect = func(descriptor string) (*sqlx.DB, error) {
		return sqlx.Connect("postgres", descriptor) //nolint:wrapcheck
	}
)

// New returns the process-wide connection, reusing it while it still answers pings.
// A failed attempt is never cached, so the next call tries again.
func New(config *config.Config) (*Connection, error) {
	mu.Lock()
	defer mu.Unlock()

	if current != nil {
		if err := current.Live(context.Background()); err == nil {
			return current, nil
		}

		log.Warn().Msg("Cached database connection is stale, reconnecting")
		current.Close()
		current = nil
	}

	write, err := CreatePostgresWriteConn(*config)
	if err != nil {
		return nil, err
	}

	read, err := CreatePostgresReadConn(*config)
	if err != nil {
		_ = write.Close()

		return nil, err
	}

	current = &Connection{
		Read:  read,
		Write: write,
	}

	return current, nil
}

// Live pings both pools.
func (c *Connection) Live(ctx context.Context) error {
	if c == nil || c.Read == nil || c.Write == nil {
		return errNoConnection
	}

	ctx, cancel := context.WithTimeout(ctx, postgresPingTimeout)
	defer cancel()

	if err := c.Write.PingContext(ctx); err != nil {
		return fmt.Errorf("write connection: %w", err)
	}

	if err := c.Read.PingContext(ctx); err != nil {
		return fmt.Errorf("read connection: %w", err)
	}

	return nil
}

func (c *Connection) Close() {
	if c == nil {
		return
	}

	if c.Write != nil {
		if err := c.Write.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close write connection")
		}
	}

	if c.Read != nil && c.Read != c.Write {
		if err := c.Read.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close read connection")
		}
	}
}

// getDBName returns the database name with prefix if configured
func getDBName(config config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

// CreatePostgresWriteConn creates a database connection for write access.
func CreatePostgresWriteConn(config config.Config) (*sqlx.DB, error) {
	return CreatePostgresConnection(
		"write",
		config.DB.Postgres.Write.Username,
		config.DB.Postgres.Write.Password,
		config.DB.Postgres.Write.Host,
		config.DB.Postgres.Write.Port,
		getDBName(config, config.DB.Postgres.Write.Name),
		config.DB.Postgres.Write.SSLMode,
		config.DB.Postgres.MaxRetry,
		config.DB.Postgres.RetryWaitTime,
	)
}

// CreatePostgresReadConn creates a database connection for read access.
func CreatePostgresReadConn(config config.Config) (*sqlx.DB, error) {
	return CreatePostgresConnection(
		"read",
		config.DB.Postgres.Read.Username,
		config.DB.Postgres.Read.Password,
		config.DB.Postgres.Read.Host,
		config.DB.Postgres.Read.Port,
		getDBName(config, config.DB.Postgres.Read.Name),
		config.DB.Postgres.Read.SSLMode,
		config.DB.Postgres.MaxRetry,
		config.DB.Postgres.RetryWaitTime,
	)
}

// Descriptor builds the postgres URL used by both the pools and the migrator.
// Credentials are escaped so reserved characters stay inside the userinfo.
func Descriptor(username, password, host, port, dbName, sslMode string) string {
	query := url.Values{}
	query.Set("sslmode", sslMode)

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(username, password),
		Host:     net.JoinHostPort(host, port),
		Path:     dbName,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// CreatePostgresConnection creates a database connection.
func CreatePostgresConnection(name, username, password, host, port, dbName, sslMode string, maxRetry, waitTime int) (*sqlx.DB, error) {
	descriptor := Descriptor(username, password, host, port, dbName, sslMode)

	if maxRetry < 1 {
		maxRetry = 1
	}

	var lastErr error

	for retry := range maxRetry {
		sqlDB, err := connect(descriptor)
		if err == nil {
			log.
				Info().
				Str("name", name).
				Str("host", host).
				Str("port", port).
				Str("dbName", dbName).
				Msg("Connected to database")
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)

			return sqlDB, nil
		}

		lastErr = err

		log.
			Error().
			Err(err).
			Str("name", name).
			Str("host", host).
			Str("port", port).
			Str("dbName", dbName).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		if retry < maxRetry-1 {
			time.Sleep(time.Duration(waitTime) * time.Second)
		}
	}

	return nil, fmt.Errorf("failed to connect to %s database: %w", name, lastErr)
}
