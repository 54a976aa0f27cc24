package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/movewell/internal/api"
	"github.com/terraincognita07/movewell/internal/config"
	"github.com/terraincognita07/movewell/internal/db"
)

func newTestServer(t *testing.T) *fiber.App {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "movewell.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(database)
	})

	cfg := config.Config{CORSOrigins: "https://app.example.com"}
	handler, err := api.NewHandler(database, api.Options{SecretKey: "0123456789abcdef0123456789abcdef"})
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	return newApp(cfg, handler)
}

func TestNewAppServesHealthAndMetrics(t *testing.T) {
	app := newTestServer(t)

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	if err != nil {
		t.Fatalf("health request: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != fiber.StatusOK {
		t.Fatalf("expected health status 200, got %d", response.StatusCode)
	}

	response, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	if err != nil {
		t.Fatalf("metrics request: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != fiber.StatusOK {
		t.Fatalf("expected open metrics route without credentials configured, got %d", response.StatusCode)
	}
}

func TestNewAppAnswersCORSPreflight(t *testing.T) {
	app := newTestServer(t)

	request := httptest.NewRequest(http.MethodOptions, "/api/progress/steps", nil)
	request.Header.Set("Origin", "https://app.example.com")
	request.Header.Set("Access-Control-Request-Method", http.MethodPost)
	request.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("preflight request: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != fiber.StatusNoContent {
		t.Fatalf("expected preflight status 204, got %d", response.StatusCode)
	}
	if got := response.Header.Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Fatalf("expected allowed origin header, got %q", got)
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCommand()

	for _, name := range []string{"serve", "migrate", "reset-password"} {
		command, _, err := root.Find([]string{name})
		if err != nil || command.Name() != name {
			t.Fatalf("expected %s subcommand, got %v (err %v)", name, command, err)
		}
	}

	resetCommand, _, _ := root.Find([]string{"reset-password"})
	if resetCommand.Flags().Lookup("email") == nil {
		t.Fatal("expected reset-password to accept --email")
	}
}

func TestMigrateCommandPrintsAppliedVersions(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "migrate.db"))

	var out bytes.Buffer
	if err := runMigrations(&out); err != nil {
		t.Fatalf("runMigrations returned error: %v", err)
	}
	if !strings.Contains(out.String(), "applied 001") || !strings.Contains(out.String(), "applied 002") {
		t.Fatalf("expected applied versions in output, got %q", out.String())
	}
}
