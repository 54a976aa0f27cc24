package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/movewell/internal/db"
	"gorm.io/gorm"
)

const testSecretKey = "movewell-test-secret-key-0123456789abcdef"

var testNow = time.Date(2026, time.March, 4, 10, 30, 0, 0, time.UTC)

type testApp struct {
	app      *fiber.App
	handler  *Handler
	database *gorm.DB
}

func newTestApp(t *testing.T) testApp {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "movewell-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(database); err != nil {
			t.Errorf("close sqlite: %v", err)
		}
	})

	handler, err := NewHandler(database, Options{
		SecretKey:      testSecretKey,
		TokenTTL:       time.Hour,
		RateLimitRPS:   100,
		RateLimitBurst: 100,
	})
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	handler.now = func() time.Time { return testNow }

	app := fiber.New()
	RegisterRoutes(app, handler)
	return testApp{app: app, handler: handler, database: database}
}

func (env testApp) do(t *testing.T, method string, path string, token string, body any) (int, map[string]any) {
	t.Helper()

	status, raw := env.doRaw(t, method, path, token, body)
	decoded := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decode %s %s response %q: %v", method, path, raw, err)
		}
	}
	return status, decoded
}

func (env testApp) doRaw(t *testing.T, method string, path string, token string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		request.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return response.StatusCode, raw
}

func (env testApp) register(t *testing.T, email string) string {
	t.Helper()

	status, body := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Test User",
		"email":    email,
		"password": "StrongPass1",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("expected register status 201, got %d: %v", status, body)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("expected token in register response: %v", body)
	}
	return token
}

func listField(t *testing.T, body map[string]any, key string) []any {
	t.Helper()

	values, ok := body[key].([]any)
	if !ok {
		t.Fatalf("expected %q to be a list in %v", key, body)
	}
	return values
}

func objectField(t *testing.T, body map[string]any, key string) map[string]any {
	t.Helper()

	value, ok := body[key].(map[string]any)
	if !ok {
		t.Fatalf("expected %q to be an object in %v", key, body)
	}
	return value
}

func decodeList(t *testing.T, raw []byte) []map[string]any {
	t.Helper()

	var values []map[string]any
	if err := json.Unmarshal(raw, &values); err != nil {
		t.Fatalf("decode list %q: %v", raw, err)
	}
	return values
}
