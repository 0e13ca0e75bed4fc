package ch

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// ClickHouseAllowList persists the allow-list in a ClickHouse table.
//
// The table is a ReplacingMergeTree keyed by user_id with a tombstone
// column: Add and Remove both insert a row, and reads with FINAL see
// only the latest row per user. Concurrent duplicate adds therefore
// collapse to a single member without a check-then-insert race being
// load-bearing for uniqueness.
type ClickHouseAllowList struct {
	conn clickhouse.Conn
}

// NewClickHouseAllowList opens a native-protocol ClickHouse connection.
func NewClickHouseAllowList(host string, port int, database, user, password string, useTLS bool) (*ClickHouseAllowList, error) {
	addr := fmt.Sprintf("%s:%d", host, port)

	options := &clickhouse.Options{
		Addr:     []string{addr},
		Protocol: clickhouse.Native,
		Auth: clickhouse.Auth{
			Database: database,
			Username: user,
			Password: password,
		},
	}

	if useTLS {
		options.TLS = &tls.Config{
			InsecureSkipVerify: false,
		}
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	if err := conn.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	return &ClickHouseAllowList{conn: conn}, nil
}

// Initialize creates the allowed_users table if it does not exist.
// Safe to run repeatedly; an existing populated table is left intact.
// The same DDL lives in migrations/ for goose-managed deployments.
func (db *ClickHouseAllowList) Initialize(ctx context.Context) error {
	err := db.conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS allowed_users (
			user_id Int64,
			deleted UInt8 DEFAULT 0,
			updated_at DateTime64(3) DEFAULT now64(3)
		) ENGINE = ReplacingMergeTree(updated_at)
		ORDER BY user_id
	`)
	if err != nil {
		return fmt.Errorf("failed to create allowed_users table: %w", err)
	}
	return nil
}

// Contains reports whether userID is currently a member.
func (db *ClickHouseAllowList) Contains(ctx context.Context, userID int64) (bool, error) {
	var count uint64
	row := db.conn.QueryRow(ctx,
		`SELECT count() FROM allowed_users FINAL WHERE user_id = ? AND deleted = 0`, userID)
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check allow-list membership: %w", err)
	}
	return count > 0, nil
}

// Add inserts userID into the allow-list, returning false if it was
// already a member.
func (db *ClickHouseAllowList) Add(ctx context.Context, userID int64) (bool, error) {
	present, err := db.Contains(ctx, userID)
	if err != nil {
		return false, err
	}
	if present {
		return false, nil
	}

	err = db.conn.Exec(ctx,
		`INSERT INTO allowed_users (user_id, deleted, updated_at) VALUES (?, 0, now64(3))`, userID)
	if err != nil {
		return false, fmt.Errorf("failed to add user %d: %w", userID, err)
	}
	return true, nil
}

// Remove deletes userID from the allow-list by writing a tombstone row,
// returning false if the user was not a member.
func (db *ClickHouseAllowList) Remove(ctx context.Context, userID int64) (bool, error) {
	present, err := db.Contains(ctx, userID)
	if err != nil {
		return false, err
	}
	if !present {
		return false, nil
	}

	err = db.conn.Exec(ctx,
		`INSERT INTO allowed_users (user_id, deleted, updated_at) VALUES (?, 1, now64(3))`, userID)
	if err != nil {
		return false, fmt.Errorf("failed to remove user %d: %w", userID, err)
	}
	return true, nil
}

// List returns all current members in ascending user ID order.
func (db *ClickHouseAllowList) List(ctx context.Context) ([]int64, error) {
	rows, err := db.conn.Query(ctx,
		`SELECT user_id FROM allowed_users FINAL WHERE deleted = 0 ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list allow-list: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Close closes the database connection.
func (db *ClickHouseAllowList) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}
