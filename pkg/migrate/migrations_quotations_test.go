package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/luispallares/forgequote-backend/pkg/migrate"
)

func TestQuotationsMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_quotations.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no quotations migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE quotations",
		"root_id uuid NOT NULL",
		"CHECK (version_number >= 1)",
		"CREATE UNIQUE INDEX idx_quotations_root_version ON quotations (root_id, version_number)",
		"DROP TABLE quotations",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir invalid: %v", err)
	}
}
