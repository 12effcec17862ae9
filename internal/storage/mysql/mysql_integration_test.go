//go:build integration

package mysql_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"hotel_ops/internal/domain"
	mysqlrepo "hotel_ops/internal/storage/mysql"
)

// ---------- small helpers ----------
func pfloat(f float64) *float64 { return &f }

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	// Start isolated MySQL; let Docker pick a free host port.
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=hotel",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/hotel?charset=utf8mb4&loc=UTC", resource.GetPort("3306/tcp"))

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = mysqlrepo.Open(dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := mysqlrepo.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// Migrations are idempotent.
	if err := mysqlrepo.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate twice: %v", err)
	}
	return db
}

// ---------- the test ----------
func TestJournal_MySQL_RecordAndRecent(t *testing.T) {
	db := startMySQL(t)
	j := mysqlrepo.New(db)
	ctx := context.Background()

	at := time.Date(2024, time.March, 1, 14, 0, 0, 0, time.UTC)
	events := []domain.Event{
		{ID: "00000000-0000-0000-0000-000000000001", Kind: domain.EventRoomAdded, RoomID: "101", OccurredAt: at},
		{ID: "00000000-0000-0000-0000-000000000002", Kind: domain.EventGuestAdded, GuestID: "G001", OccurredAt: at},
		{
			ID: "00000000-0000-0000-0000-000000000003", Kind: domain.EventGuestCheckedIn,
			GuestID: "G001", RoomID: "101", StaffID: "FD1", Amount: pfloat(6000),
			Payload: []byte(`{"nights":3}`), OccurredAt: at.Add(time.Minute),
		},
	}
	for _, e := range events {
		if err := j.Record(ctx, e); err != nil {
			t.Fatalf("Record %s: %v", e.Kind, err)
		}
	}

	if err := j.Record(ctx, events[0]); !errors.Is(err, domain.ErrDuplicateKey) {
		t.Fatalf("expected duplicate key, got %v", err)
	}

	got, err := j.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	last := got[0]
	if last.Kind != domain.EventGuestCheckedIn || last.GuestID != "G001" || last.StaffID != "FD1" {
		t.Fatalf("unexpected newest event: %+v", last)
	}
	if last.Amount == nil || *last.Amount != 6000 {
		t.Fatalf("amount: %v", last.Amount)
	}
	if !last.OccurredAt.Equal(at.Add(time.Minute)) {
		t.Fatalf("occurred_at: %v", last.OccurredAt)
	}
	if got[1].Kind != domain.EventGuestAdded || got[1].RoomID != "" || got[1].Amount != nil {
		t.Fatalf("unexpected second event: %+v", got[1])
	}
}
