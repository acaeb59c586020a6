package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"foodgram-go/pkg/logger"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HTTP_PORT", "")
	t.Setenv("HTTP_REQUEST_TIMEOUT", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load(logger.Nop())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default port, got %q", cfg.HTTPPort)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Fatalf("expected default timeout, got %v", cfg.RequestTimeout)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "http://localhost:3000" {
		t.Fatalf("expected default origins, got %+v", cfg.CORS.AllowedOrigins)
	}
	if cfg.ShoppingList.Filename != "shopping_list.txt" {
		t.Fatalf("expected default filename, got %q", cfg.ShoppingList.Filename)
	}
}

func TestLoadDotEnvDoesNotOverrideEnv(t *testing.T) {
	dir := t.TempDir()
	content := "FOODGRAM_TEST_FROM_FILE=file\nFOODGRAM_TEST_OVERRIDE=file\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	nested := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	chdir(t, nested)
	t.Setenv("FOODGRAM_TEST_OVERRIDE", "env")
	t.Cleanup(func() { _ = os.Unsetenv("FOODGRAM_TEST_FROM_FILE") })

	if err := loadDotEnv(logger.Nop()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := os.Getenv("FOODGRAM_TEST_FROM_FILE"); got != "file" {
		t.Fatalf("expected value from file, got %q", got)
	}
	if got := os.Getenv("FOODGRAM_TEST_OVERRIDE"); got != "env" {
		t.Fatalf("expected env to win, got %q", got)
	}
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("FOODGRAM_TEST_LIST", " http://a , ,http://b")
	items := getEnvList("FOODGRAM_TEST_LIST", nil)
	if len(items) != 2 || items[0] != "http://a" || items[1] != "http://b" {
		t.Fatalf("unexpected items %+v", items)
	}
}

func TestGetDSNPrefersExplicitValue(t *testing.T) {
	cfg := DBConfig{DSN: "postgres://x", Host: "db"}
	if cfg.GetDSN() != "postgres://x" {
		t.Fatalf("expected explicit DSN, got %q", cfg.GetDSN())
	}

	cfg = DBConfig{Host: "db", User: "u", Password: "p", Name: "n", Port: "5432", SSLMode: "disable", TimeZone: "UTC"}
	want := "host=db user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC"
	if cfg.GetDSN() != want {
		t.Fatalf("expected %q, got %q", want, cfg.GetDSN())
	}
}

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restore working directory: %v", err)
		}
	})
}
