package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
addr: ":9090"
database_url: "postgres://file/db"
jwt_secret: "file-secret"
media:
  share_base_url: "https://open.lbry.com/"
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ANIDEX_DATABASE_URL", "postgres://env/db")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Fatalf("expected file addr, got %q", cfg.Addr)
	}
	if cfg.DatabaseURL != "postgres://env/db" {
		t.Fatalf("expected env override, got %q", cfg.DatabaseURL)
	}
	if cfg.Media.ShareBaseURL != "https://open.lbry.com/" {
		t.Fatalf("unexpected media config: %+v", cfg.Media)
	}
}

func TestLoadEnvOnly(t *testing.T) {
	t.Setenv("ANIDEX_DATABASE_URL", "postgres://env/db")
	t.Setenv("ANIDEX_JWT_SECRET", "env-secret")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr, got %q", cfg.Addr)
	}
}

func TestLoadMissingSecret(t *testing.T) {
	t.Setenv("ANIDEX_DATABASE_URL", "postgres://env/db")
	t.Setenv("ANIDEX_JWT_SECRET", "")

	if _, err := Load(""); err == nil {
		t.Fatal("expected error for missing jwt secret")
	}
}
