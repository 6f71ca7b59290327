package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAdsMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_ads.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no ads migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS ads",
		"CHECK (price >= 0)",
		"CHECK (duration_value >= 1)",
		"duration_unit IN ('hour', 'day', 'week', 'month', 'year')",
		"FOREIGN KEY (platform_id) REFERENCES categories(id)",
		"DROP TABLE IF EXISTS ads",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationFilenamesAreValid(t *testing.T) {
	entries, err := os.ReadDir("migrations")
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	if len(entries) < 4 {
		t.Fatalf("expected at least 4 migrations, got %d", len(entries))
	}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".sql") {
			t.Errorf("unexpected non-sql file %q", name)
		}
		if len(name) < 15 || name[14] != '_' {
			t.Errorf("filename %q does not start with a 14-digit version", name)
		}
	}
}
