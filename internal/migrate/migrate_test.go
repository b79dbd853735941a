package migrate

import (
	"strings"
	"testing"

	"bookstore/internal/domain"
)

// The schema's status default has to be a status the application accepts, or
// any insert relying on it would produce an order SetStatus cannot touch.
func TestSchemaOrderStatusDefaultIsValid(t *testing.T) {
	data, err := migrationsFS.ReadFile("sql/0001_init.up.sql")
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}

	var def string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "status") || !strings.Contains(line, "DEFAULT") {
			continue
		}
		_, rest, ok := strings.Cut(line, "DEFAULT '")
		if !ok {
			t.Fatalf("unparseable status default: %q", line)
		}
		def, _, _ = strings.Cut(rest, "'")
	}
	if def == "" {
		t.Fatal("no status default found in schema")
	}
	if !domain.ValidOrderStatus(def) {
		t.Fatalf("schema status default %q is not a valid order status", def)
	}
}
