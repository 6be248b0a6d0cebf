package config

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Migration rewrites an outdated settings file into its current form.
type Migration struct {
	// Name identifies the migration in results.
	Name string

	// Description describes what the migration does.
	Description string

	// Migrate returns the rewritten file and whether anything changed.
	// Parts of the file the migration does not touch are kept byte for
	// byte.
	Migrate func(data []byte) ([]byte, bool, error)
}

// MigrationResult contains the result of a single migration.
type MigrationResult struct {
	Name        string
	Description string
	Applied     bool
	Error       error
}

// Migrator runs migrations in registration order.
type Migrator struct {
	migrations []Migration
}

// NewMigrator creates a Migrator without migrations.
func NewMigrator() *Migrator {
	return &Migrator{}
}

// DefaultMigrator returns a migrator with every settings file migration
// registered.
func DefaultMigrator() *Migrator {
	m := NewMigrator()
	m.Register(Migration{
		Name:        "hoist-globals",
		Description: `move settings out of the "globals" object to the root`,
		Migrate:     hoistGlobals,
	})
	return m
}

// Register adds a migration.
func (m *Migrator) Register(migration Migration) {
	m.migrations = append(m.migrations, migration)
}

// NeedsMigration reports whether any migration would change data.
func (m *Migrator) NeedsMigration(data []byte) bool {
	for _, migration := range m.migrations {
		if _, changed, err := migration.Migrate(data); err == nil && changed {
			return true
		}
	}
	return false
}

// Migrate applies every migration in turn. It stops at the first failure
// and returns the data as it was before the failing migration.
func (m *Migrator) Migrate(data []byte) ([]byte, []MigrationResult, error) {
	results := make([]MigrationResult, 0, len(m.migrations))
	for _, migration := range m.migrations {
		result := MigrationResult{Name: migration.Name, Description: migration.Description}

		migrated, changed, err := migration.Migrate(data)
		if err != nil {
			result.Error = err
			results = append(results, result)
			return data, results, fmt.Errorf("migration %s failed: %w", migration.Name, err)
		}

		result.Applied = changed
		results = append(results, result)
		data = migrated
	}
	return data, results, nil
}

// hoistGlobals moves every key of the legacy "globals" object to the root.
// A key already set at the root keeps its root value, matching how such a
// file is loaded.
func hoistGlobals(data []byte) ([]byte, bool, error) {
	globals := gjson.GetBytes(data, legacyGlobalsKey)
	if !globals.IsObject() {
		return data, false, nil
	}

	out := data
	var err error
	globals.ForEach(func(key, value gjson.Result) bool {
		path := escapePath(key.String())
		if gjson.GetBytes(out, path).Exists() {
			return true
		}
		out, err = sjson.SetRawBytes(out, path, []byte(value.Raw))
		return err == nil
	})
	if err != nil {
		return data, false, fmt.Errorf("moving %q: %w", legacyGlobalsKey, err)
	}

	out, err = sjson.DeleteBytes(out, legacyGlobalsKey)
	if err != nil {
		return data, false, fmt.Errorf("removing %q: %w", legacyGlobalsKey, err)
	}
	return out, true, nil
}

// escapePath escapes a key for use as a gjson or sjson path.
func escapePath(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
