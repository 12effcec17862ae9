package mysql

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	mysqldrv "github.com/go-sql-driver/mysql"

	"hotel_ops/internal/domain"
)

const (
	DefaultRecentLimit = 50
	MaxRecentLimit     = 500

	errDupEntry = 1062
)

//go:embed migrations/*.sql
var migrations embed.FS

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}
func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
func valJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}

// Journal appends hotel events to MySQL. It implements domain.Journal.
type Journal struct{ db *sql.DB }

func New(db *sql.DB) *Journal { return &Journal{db: db} }

// Open connects with the driver options the journal relies on (parseTime, UTC).
func Open(dsn string) (*sql.DB, error) {
	cfg, err := mysqldrv.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	cfg.MultiStatements = true
	return sql.Open("mysql", cfg.FormatDSN())
}

// Migrate applies the embedded schema files in name order. Every file is idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	files, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(files)
	for _, f := range files {
		b, err := migrations.ReadFile(f)
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, string(b)); err != nil {
			return fmt.Errorf("apply %s: %w", f, err)
		}
	}
	return nil
}

func (j *Journal) Record(ctx context.Context, e domain.Event) error {
	_, err := j.db.ExecContext(ctx, insertEventSQL,
		e.ID,
		string(e.Kind),
		valStr(e.GuestID),
		valStr(e.RoomID),
		valStr(e.StaffID),
		valF64(e.Amount),
		valJSON(e.Payload),
		e.OccurredAt.UTC(),
	)
	var me *mysqldrv.MySQLError
	if errors.As(err, &me) && me.Number == errDupEntry {
		return fmt.Errorf("event %s: %w", e.ID, domain.ErrDuplicateKey)
	}
	return err
}

// Recent returns up to limit events, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]domain.Event, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}

	rows, err := j.db.QueryContext(ctx, recentEventsSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Event, 0, limit)
	for rows.Next() {
		var (
			e                  domain.Event
			kind               string
			guest, room, staff sql.NullString
			amount             sql.NullFloat64
			payload            []byte
		)
		if err := rows.Scan(&e.ID, &kind, &guest, &room, &staff, &amount, &payload, &e.OccurredAt); err != nil {
			return nil, err
		}
		e.Kind = domain.EventKind(kind)
		e.GuestID, e.RoomID, e.StaffID = guest.String, room.String, staff.String
		if amount.Valid {
			a := amount.Float64
			e.Amount = &a
		}
		if len(payload) > 0 {
			e.Payload = payload
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
