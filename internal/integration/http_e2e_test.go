//go:build integration

package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"

	httpserver "hotel_ops/internal/adapters/http_server"
	redisad "hotel_ops/internal/adapters/redis"
	"hotel_ops/internal/app"
	"hotel_ops/internal/domain"
	mysqlrepo "hotel_ops/internal/storage/mysql"
)

// ---------- helpers ----------
func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
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
	return db
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	res, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { _ = res.Body.Close() })
	return res
}

// ---------- the test ----------
func TestHTTP_EndToEnd_StayIsJournaled(t *testing.T) {
	db := startMySQL(t)
	mr := miniredis.RunT(t)
	cache := redisad.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	hotel := app.NewHotel(app.Options{Name: "E2E Hotel", Journal: mysqlrepo.New(db)})
	srv := httpserver.New(httpserver.Options{})
	srv.MountHandlers(&httpserver.Handlers{Hotel: hotel, Reports: app.NewReportService(hotel, cache, time.Minute)})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	for _, step := range []struct{ path, body string }{
		{"/v1/rooms", `{"id":"101","category":"Standard Double Room","nightly_rate":2000}`},
		{"/v1/guests", `{"id":"G001","name":"Mr. Chen","age":35}`},
		{"/v1/staff", `{"id":"FD1","name":"Alice","role":"front-desk","shift":"Morning"}`},
	} {
		if res := post(t, ts.URL+step.path, step.body); res.StatusCode != http.StatusCreated {
			t.Fatalf("POST %s: status %d", step.path, res.StatusCode)
		}
	}

	res := post(t, ts.URL+"/v1/guests/G001/services", `{"kind":"check-in","room_id":"101","nights":3}`)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("check-in status %d", res.StatusCode)
	}
	var result domain.ServiceResult
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Cost == nil || *result.Cost != 6000 {
		t.Fatalf("unexpected result: %+v", result)
	}

	// Summary goes through Redis.
	sres, err := http.Get(ts.URL + "/v1/summary")
	if err != nil {
		t.Fatalf("GET summary: %v", err)
	}
	defer sres.Body.Close()
	var summary domain.Summary
	if err := json.NewDecoder(sres.Body).Decode(&summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.Occupied != 1 || summary.InHouse != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if !mr.Exists(fmt.Sprintf("hotel:summary:v%d", summary.Version)) {
		t.Fatalf("summary not cached; keys: %v", mr.Keys())
	}

	// Journal reads back through the API.
	eres, err := http.Get(ts.URL + "/v1/events?limit=1")
	if err != nil {
		t.Fatalf("GET events: %v", err)
	}
	defer eres.Body.Close()
	var events struct {
		Items []struct {
			Kind    domain.EventKind `json:"kind"`
			GuestID string           `json:"guest_id"`
			RoomID  string           `json:"room_id"`
			Amount  *float64         `json:"amount"`
		} `json:"items"`
	}
	if err := json.NewDecoder(eres.Body).Decode(&events); err != nil {
		t.Fatalf("decode events: %v", err)
	}
	if len(events.Items) != 1 {
		t.Fatalf("expected one event, got %d", len(events.Items))
	}
	last := events.Items[0]
	if last.Kind != domain.EventGuestCheckedIn || last.GuestID != "G001" || last.RoomID != "101" || last.Amount == nil || *last.Amount != 6000 {
		t.Fatalf("unexpected event: %+v", last)
	}
}
