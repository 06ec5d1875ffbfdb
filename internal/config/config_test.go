package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	configPath := writeConfig(t, `
app:
  environment: testing
  name: TestApp
  version: 1.0.0
server:
  host: 127.0.0.1
  port: 8080
  read_timeout: 5s
  write_timeout: 10s
database:
  driver: postgres
  host: localhost
  port: 5432
  name: annotator
  user: testuser
  password: testpass
storage:
  upload_dir: data/uploads
nlp:
  recognizer: none
  normalize_labels: false
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.App.Environment != "testing" {
		t.Errorf("Expected Environment = %s, got %s", "testing", cfg.App.Environment)
	}
	if cfg.App.Name != "TestApp" {
		t.Errorf("Expected Name = %s, got %s", "TestApp", cfg.App.Name)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Expected Port = %d, got %d", 8080, cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("Expected ReadTimeout = 5s, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Storage.UploadDir != "data/uploads" {
		t.Errorf("Expected UploadDir = data/uploads, got %s", cfg.Storage.UploadDir)
	}
	if cfg.NLP.Recognizer != "none" {
		t.Errorf("Expected Recognizer = none, got %s", cfg.NLP.Recognizer)
	}
	if cfg.NLP.LabelNormalization() {
		t.Error("Expected label normalization to be disabled")
	}
}

func TestLoadSQLiteDefaults(t *testing.T) {
	configPath := writeConfig(t, `
database:
  driver: SQLite
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !cfg.Database.IsSQLite() {
		t.Errorf("Expected sqlite driver, got %s", cfg.Database.Driver)
	}
	if cfg.Database.Path != "chatbot.db" {
		t.Errorf("Expected default sqlite path, got %s", cfg.Database.Path)
	}
	if cfg.Storage.UploadDir != "uploads" {
		t.Errorf("Expected default upload dir, got %s", cfg.Storage.UploadDir)
	}
	if cfg.Storage.MaxUploadBytes != 32<<20 {
		t.Errorf("Expected default upload limit, got %d", cfg.Storage.MaxUploadBytes)
	}
	if cfg.NLP.Recognizer != "hugot" {
		t.Errorf("Expected default recognizer hugot, got %s", cfg.NLP.Recognizer)
	}
	if !cfg.NLP.LabelNormalization() {
		t.Error("Expected label normalization to default to true")
	}
	if cfg.JWT.Expiry != 24*time.Hour {
		t.Errorf("Expected default JWT expiry 24h, got %v", cfg.JWT.Expiry)
	}
	if cfg.Seed.Enabled || cfg.Seed.Username != "demo" {
		t.Errorf("Expected seeding off with default user demo, got %+v", cfg.Seed)
	}
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown driver", "database:\n  driver: oracle\n"},
		{"postgres without user", "database:\n  driver: postgres\n  name: annotator\n"},
		{"unknown recognizer", "database:\n  driver: sqlite\nnlp:\n  recognizer: spacy\n"},
		{"bad log level", "database:\n  driver: sqlite\nlogging:\n  level: loud\n"},
		{"production without secret", "app:\n  environment: production\ndatabase:\n  driver: sqlite\n"},
		{"seeding without password", "database:\n  driver: sqlite\nseed:\n  enabled: true\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Errorf("Load() expected error for %s", tt.name)
			}
		})
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "app: [unterminated")); err == nil {
		t.Error("Load() expected a parse error")
	}
}

func TestGet(t *testing.T) {
	origCfg := cfg
	defer func() { cfg = origCfg }()

	testCfg := &AppConfig{App: AppSettings{Name: "annotator"}}
	cfg = testCfg

	if got := Get(); got != testCfg {
		t.Errorf("Get() = %v, want %v", got, testCfg)
	}
}

func TestConnectionString(t *testing.T) {
	dbs := DatabaseSettings{Host: "db", Port: 5433, Name: "annotator", User: "bot", Password: "secret"}

	want := "host=db port=5433 user=bot dbname=annotator password=secret sslmode=disable connect_timeout=15"
	if got := dbs.ConnectionString(); got != want {
		t.Errorf("ConnectionString() = %q, want %q", got, want)
	}

	admin := dbs.AdminConnectionString()
	if want := "host=db port=5433 user=bot dbname=postgres password=secret sslmode=disable connect_timeout=15"; admin != want {
		t.Errorf("AdminConnectionString() = %q, want %q", admin, want)
	}

	dbs.Password = ""
	if got := dbs.ConnectionString(); got != "host=db port=5433 user=bot dbname=annotator sslmode=disable connect_timeout=15" {
		t.Errorf("ConnectionString() without password = %q", got)
	}
}

func TestEnvironmentHelpers(t *testing.T) {
	as := AppSettings{Environment: "Production"}
	if !as.IsProduction() || (&AppSettings{Environment: "testing"}).IsProduction() {
		t.Error("Expected production environment helpers to match")
	}

	ss := ServerSettings{Host: "0.0.0.0", Port: 8000}
	if ss.ServerAddress() != "0.0.0.0:8000" {
		t.Errorf("ServerAddress() = %s", ss.ServerAddress())
	}
}
