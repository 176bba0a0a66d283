package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// sqlDialect holds the statements that differ between drivers.
type sqlDialect struct {
	driver string
	schema string
	put    string
	get    string
	keys   string
}

var sqliteDialect = sqlDialect{
	driver: "sqlite",
	schema: `CREATE TABLE IF NOT EXISTS weather_objects (
        bucket TEXT NOT NULL,
        object_key TEXT NOT NULL,
        body BLOB NOT NULL,
        written_at TEXT NOT NULL,
        PRIMARY KEY (bucket, object_key)
    );`,
	put: `INSERT INTO weather_objects(bucket, object_key, body, written_at) VALUES(?,?,?,?)
        ON CONFLICT(bucket, object_key) DO UPDATE SET body = excluded.body, written_at = excluded.written_at`,
	get:  `SELECT body FROM weather_objects WHERE bucket = ? AND object_key = ?`,
	keys: `SELECT object_key FROM weather_objects WHERE bucket = ? ORDER BY object_key`,
}

var postgresDialect = sqlDialect{
	driver: "postgres",
	schema: `CREATE TABLE IF NOT EXISTS weather_objects (
        bucket TEXT NOT NULL,
        object_key TEXT NOT NULL,
        body BYTEA NOT NULL,
        written_at TEXT NOT NULL,
        PRIMARY KEY (bucket, object_key)
    );`,
	put: `INSERT INTO weather_objects(bucket, object_key, body, written_at) VALUES($1,$2,$3,$4)
        ON CONFLICT(bucket, object_key) DO UPDATE SET body = excluded.body, written_at = excluded.written_at`,
	get:  `SELECT body FROM weather_objects WHERE bucket = $1 AND object_key = $2`,
	keys: `SELECT object_key FROM weather_objects WHERE bucket = $1 ORDER BY object_key`,
}

// SQLBackend keeps objects in a weather_objects table, one row per bucket and key.
type SQLBackend struct {
	db      *sql.DB
	dialect sqlDialect
}

// NewSQLiteBackend opens (or creates) the SQLite database at path.
func NewSQLiteBackend(path string) (*SQLBackend, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}
	db, err := sql.Open(sqliteDialect.driver, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		log.Println("store: could not set WAL mode:", err)
	}

	return newSQLBackend(db, sqliteDialect)
}

// NewPostgresBackend connects to the PostgreSQL database at dsn.
func NewPostgresBackend(dsn string) (*SQLBackend, error) {
	if dsn == "" {
		return nil, errors.New("database url is required")
	}
	db, err := sql.Open(postgresDialect.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return newSQLBackend(db, postgresDialect)
}

func newSQLBackend(db *sql.DB, dialect sqlDialect) (*SQLBackend, error) {
	if _, err := db.Exec(dialect.schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create weather_objects table: %w", err)
	}
	return &SQLBackend{db: db, dialect: dialect}, nil
}

// Put inserts the object or replaces the body of an existing one.
func (b *SQLBackend) Put(ctx context.Context, bucket, key string, body []byte) error {
	_, err := b.db.ExecContext(ctx, b.dialect.put, bucket, key, body, time.Now().UTC().Format(time.RFC3339))
	return err
}

// Get returns the object stored under key.
func (b *SQLBackend) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	var body []byte
	err := b.db.QueryRowContext(ctx, b.dialect.get, bucket, key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return body, nil
}

// Keys returns the keys in bucket in ascending order.
func (b *SQLBackend) Keys(ctx context.Context, bucket string) ([]string, error) {
	rows, err := b.db.QueryContext(ctx, b.dialect.keys, bucket)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (b *SQLBackend) Close() error {
	return b.db.Close()
}
