package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid config",
			config: Config{
				Port:         "8080",
				SQLiteDBPath: filepath.Join(tmpDir, "valid", "arkas.db"),
				PhotoDir:     filepath.Join(tmpDir, "photos"),
			},
			wantErr: false,
		},
		{
			name: "invalid port - non-numeric",
			config: Config{
				Port:         "abc",
				SQLiteDBPath: filepath.Join(tmpDir, "arkas.db"),
				PhotoDir:     filepath.Join(tmpDir, "photos"),
			},
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name: "invalid port - out of range low",
			config: Config{
				Port:         "0",
				SQLiteDBPath: filepath.Join(tmpDir, "arkas.db"),
				PhotoDir:     filepath.Join(tmpDir, "photos"),
			},
			wantErr:     true,
			errorString: "invalid port 0: must be between 1 and 65535",
		},
		{
			name: "invalid port - out of range high",
			config: Config{
				Port:         "70000",
				SQLiteDBPath: filepath.Join(tmpDir, "arkas.db"),
				PhotoDir:     filepath.Join(tmpDir, "photos"),
			},
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name: "missing database path",
			config: Config{
				Port:         "8080",
				SQLiteDBPath: "",
				PhotoDir:     filepath.Join(tmpDir, "photos"),
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name: "missing photo directory",
			config: Config{
				Port:         "8080",
				SQLiteDBPath: filepath.Join(tmpDir, "arkas.db"),
				PhotoDir:     "",
			},
			wantErr:     true,
			errorString: "photo directory cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Config.Validate() error = nil, wantErr %v", tt.wantErr)
					return
				}
				if tt.errorString != "" && !contains(err.Error(), tt.errorString) {
					t.Errorf("Config.Validate() error = %v, want error containing %v", err.Error(), tt.errorString)
				}
			} else {
				if err != nil {
					t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
				}
			}
		})
	}
}

func TestConfig_ValidateCreatesDirectories(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := Config{
		Port:         "8080",
		SQLiteDBPath: filepath.Join(tmpDir, "nested", "data", "arkas.db"),
		PhotoDir:     filepath.Join(tmpDir, "nested", "photos"),
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Config.Validate() error = %v", err)
	}

	if _, err := os.Stat(filepath.Dir(cfg.SQLiteDBPath)); err != nil {
		t.Errorf("database directory not created: %v", err)
	}
	if _, err := os.Stat(cfg.PhotoDir); err != nil {
		t.Errorf("photo directory not created: %v", err)
	}
}

func TestLoad(t *testing.T) {
	// Save original env vars
	originalVars := map[string]string{
		"PORT":           os.Getenv("PORT"),
		"SQLITE_DB_PATH": os.Getenv("SQLITE_DB_PATH"),
		"PHOTO_DIR":      os.Getenv("PHOTO_DIR"),
	}

	// Clean environment
	for key := range originalVars {
		os.Unsetenv(key)
	}

	// Restore env vars at end of test
	defer func() {
		for key, value := range originalVars {
			if value != "" {
				os.Setenv(key, value)
			} else {
				os.Unsetenv(key)
			}
		}
	}()

	t.Run("default values", func(t *testing.T) {
		cfg := Load()

		if cfg.Port != "8080" {
			t.Errorf("Load() Port = %v, want 8080", cfg.Port)
		}
		if cfg.SQLiteDBPath != "./data/arkas.db" {
			t.Errorf("Load() SQLiteDBPath = %v, want ./data/arkas.db", cfg.SQLiteDBPath)
		}
		if cfg.PhotoDir != "./data/bpu_photos" {
			t.Errorf("Load() PhotoDir = %v, want ./data/bpu_photos", cfg.PhotoDir)
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		os.Setenv("PORT", "9090")
		os.Setenv("SQLITE_DB_PATH", "/tmp/test.db")
		os.Setenv("PHOTO_DIR", "/tmp/photos")

		cfg := Load()

		if cfg.Port != "9090" {
			t.Errorf("Load() Port = %v, want 9090", cfg.Port)
		}
		if cfg.SQLiteDBPath != "/tmp/test.db" {
			t.Errorf("Load() SQLiteDBPath = %v, want /tmp/test.db", cfg.SQLiteDBPath)
		}
		if cfg.PhotoDir != "/tmp/photos" {
			t.Errorf("Load() PhotoDir = %v, want /tmp/photos", cfg.PhotoDir)
		}
	})
}

// Helper function to check if string contains substring
func contains(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || func() bool {
		for i := 0; i <= len(s)-len(substr); i++ {
			if s[i:i+len(substr)] == substr {
				return true
			}
		}
		return false
	}())
}
