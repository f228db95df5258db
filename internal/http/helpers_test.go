package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"bookstore/internal/config"
	"bookstore/internal/http/handlers"
	"bookstore/internal/repos"
)

const b1 = `{"_id":"b1","bookName":"X","author":"Y","originalPrice":10.0,"discountedPrice":8.0,
  "discountPercent":20,"imgSrc":"","imgAlt":"","badgeText":"","outOfStock":false,
  "fastDeliveryAvailable":true,"genre":"Fiction","rating":4,"description":"d"}`

// newTestApp wires the full app over an empty in-memory database.
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	cfg := config.Config{DBDSN: ":memory:", CORSOrigins: "*", BcryptCost: 4}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return handlers.NewApp(cfg, handlers.NewDeps(db, cfg, nil), nil), db
}

type reply struct {
	Code int
	Body map[string]json.RawMessage
	Raw  string
}

func (r reply) str(key string) string {
	var s string
	_ = json.Unmarshal(r.Body[key], &s)
	return s
}

func call(t *testing.T, app *fiber.App, method, path, body string) reply {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	out := reply{Code: resp.StatusCode, Raw: string(raw)}
	if err := json.Unmarshal(raw, &out.Body); err != nil {
		t.Fatalf("%s %s: body is not a JSON object: %s", method, path, raw)
	}
	return out
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	Status int            `json:"status"`
	ReqID  string         `json:"req_id"`
	Err    string         `json:"err"`
	Fields map[string]any `json:"fields"`
}

type lockedWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *lockedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

func (w *lockedWriter) entries() []logEntry {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []logEntry
	for _, line := range strings.Split(strings.TrimSpace(w.buf.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil && e.Action != "" {
			out = append(out, e)
		}
	}
	return out
}

func findAction(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}
