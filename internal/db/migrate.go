package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// RunMigrations applies schema migrations in lexical filename order. When
// migrationsDir exists its .sql files are used; otherwise the embedded set
// applies. Statements are idempotent, so re-running is safe.
func RunMigrations(db *sql.DB, migrationsDir string) error {
	names, read, err := migrationSource(migrationsDir)
	if err != nil {
		return err
	}
	sort.Strings(names)
	for _, name := range names {
		data, err := read(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if len(data) == 0 {
			continue
		}
		if _, err := db.Exec(string(data)); err != nil {
			return fmt.Errorf("exec migration %s: %w", name, err)
		}
	}
	return nil
}

func migrationSource(dir string) (names []string, read func(string) ([]byte, error), err error) {
	if dir != "" {
		entries, dirErr := os.ReadDir(dir)
		if dirErr == nil {
			for _, e := range entries {
				if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
					names = append(names, e.Name())
				}
			}
			return names, func(name string) ([]byte, error) {
				return os.ReadFile(filepath.Join(dir, name))
			}, nil
		}
		if !errors.Is(dirErr, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("read migrations: %w", dirErr)
		}
	}

	entries, embErr := embeddedMigrations.ReadDir("migrations")
	if embErr != nil {
		return nil, nil, fmt.Errorf("read embedded migrations: %w", embErr)
	}
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			names = append(names, e.Name())
		}
	}
	return names, func(name string) ([]byte, error) {
		return embeddedMigrations.ReadFile(filepath.Join("migrations", name))
	}, nil
}
