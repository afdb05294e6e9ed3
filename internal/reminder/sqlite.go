package reminder

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"regexp"
	"time"

	_ "modernc.org/sqlite"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

const sqliteOptions = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate"

// SQLiteStore keeps reminders in a single SQLite table whose rowid is the
// position handle.
type SQLiteStore struct {
	db    *sql.DB
	table string
	loc   *time.Location
}

// NewSQLiteStore opens (or creates) the database at dbPath and ensures the
// reminder table exists. Stored datetimes are interpreted in loc.
func NewSQLiteStore(dbPath, table string, loc *time.Location) (*SQLiteStore, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	db, err := sql.Open("sqlite", dbPath+sqliteOptions)
	if err != nil {
		return nil, unavailable("open database", err)
	}
	// A single connection serializes writers in this process and keeps
	// ":memory:" alive. busy_timeout waits out other processes on the file.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, unavailable("open database", err)
	}

	s := &SQLiteStore{db: db, table: table, loc: loc}
	if err := s.createTable(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *SQLiteStore) createTable() error {
	_, err := s.db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			position       INTEGER PRIMARY KEY AUTOINCREMENT,
			start_datetime TEXT NOT NULL,
			end_datetime   TEXT NOT NULL,
			description    TEXT NOT NULL,
			status         TEXT NOT NULL DEFAULT 'Pending'
		)
	`, s.table))
	if err != nil {
		return unavailable("create table", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Append(ctx context.Context, r Reminder) (Reminder, error) {
	cells := encodeRow(r)

	result, err := s.db.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (start_datetime, end_datetime, description, status)
		VALUES (?, ?, ?, ?)
	`, s.table), cells[0], cells[1], cells[2], cells[3])
	if err != nil {
		return Reminder{}, unavailable("insert reminder", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return Reminder{}, unavailable("get inserted position", err)
	}
	r.Position = id

	return r, nil
}

func (s *SQLiteStore) ListAll(ctx context.Context) ([]Reminder, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT position, start_datetime, end_datetime, description, status
		FROM %s ORDER BY position ASC
	`, s.table))
	if err != nil {
		return nil, unavailable("list reminders", err)
	}
	defer rows.Close()

	var reminders []Reminder
	for rows.Next() {
		var position int64
		var cells [4]string
		if err := rows.Scan(&position, &cells[0], &cells[1], &cells[2], &cells[3]); err != nil {
			return nil, unavailable("scan reminder", err)
		}

		r, err := decodeRow(position, cells, s.loc)
		if err != nil {
			log.Printf("[store] Skipping malformed row: %v", err)
			continue
		}
		reminders = append(reminders, r)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list reminders", err)
	}

	return reminders, nil
}

func (s *SQLiteStore) SetStatus(ctx context.Context, position int64, status Status) error {
	result, err := s.db.ExecContext(ctx, fmt.Sprintf(`
		UPDATE %s SET status = ? WHERE position = ?
	`, s.table), string(status), position)
	if err != nil {
		return unavailable("update status", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return unavailable("update status", err)
	}
	if n == 0 {
		return fmt.Errorf("position %d: %w", position, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) TruncateAll(ctx context.Context) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, unavailable("begin truncate", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, s.table)).Scan(&count); err != nil {
		return 0, unavailable("count reminders", err)
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, s.table)); err != nil {
		return 0, unavailable("truncate reminders", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, unavailable("commit truncate", err)
	}

	return count, nil
}
