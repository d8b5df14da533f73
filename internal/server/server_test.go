package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/splitfriends/internal/config"
	"github.com/mmynk/splitfriends/pkg/api"
	"github.com/mmynk/splitfriends/pkg/api/ledgerconnect"
)

func testConfig() *config.Config {
	return &config.Config{
		ListenAddr: "127.0.0.1:0",
		SessionTTL: time.Hour,
		Currency:   "USD",
		Seed:       true,
		LogFormat:  "text",
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()
	srv, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		srv.Close()
	})
	return ts
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestServer_ServesLedgerAndMetrics(t *testing.T) {
	ts := newTestServer(t, testConfig())
	client := ledgerconnect.NewLedgerServiceClient(http.DefaultClient, ts.URL)

	resp, err := client.CreateSession(context.Background(), connect.NewRequest(&api.CreateSessionRequest{}))
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if len(resp.Msg.State.Friends) != 3 {
		t.Errorf("friends: expected 3, got %d", len(resp.Msg.State.Friends))
	}

	status, body := get(t, ts.URL+"/metrics")
	if status != http.StatusOK {
		t.Fatalf("metrics status: expected 200, got %d", status)
	}
	if !strings.Contains(body, "splitfriends_sessions 1") {
		t.Errorf("expected live session gauge in metrics output:\n%s", body)
	}
	if !strings.Contains(body, "splitfriends_rpc_duration_seconds") {
		t.Errorf("expected rpc histogram in metrics output")
	}
}

func TestServer_SeedDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Seed = false
	ts := newTestServer(t, cfg)
	client := ledgerconnect.NewLedgerServiceClient(http.DefaultClient, ts.URL)

	resp, err := client.CreateSession(context.Background(), connect.NewRequest(&api.CreateSessionRequest{}))
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if len(resp.Msg.State.Friends) != 0 {
		t.Errorf("friends: expected 0, got %d", len(resp.Msg.State.Friends))
	}
}

func TestServer_StaticFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>friends</h1>"), 0o644); err != nil {
		t.Fatalf("failed to write index: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644); err != nil {
		t.Fatalf("failed to write app.js: %v", err)
	}

	cfg := testConfig()
	cfg.StaticPath = dir
	ts := newTestServer(t, cfg)

	tests := []struct {
		path   string
		status int
		want   string
	}{
		{"/", http.StatusOK, "<h1>friends</h1>"},
		{"/app.js", http.StatusOK, "console.log(1)"},
		{"/some/client/route", http.StatusOK, "<h1>friends</h1>"},
		{"/splitfriends.v1.Unknown/Call", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			status, body := get(t, ts.URL+tt.path)
			if status != tt.status {
				t.Errorf("status: expected %d, got %d", tt.status, status)
			}
			if tt.want != "" && !strings.Contains(body, tt.want) {
				t.Errorf("body: expected %q, got %q", tt.want, body)
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t, testConfig())

	req, err := http.NewRequest(http.MethodOptions, ts.URL+ledgerconnect.LedgerServiceGetStateProcedure, nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("OPTIONS failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: expected 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Headers"); !strings.Contains(got, "Authorization") {
		t.Errorf("expected Authorization in allowed headers, got %q", got)
	}
}
