package fixture

import (
	"cmp"
	"database/sql"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

type fixtureFile struct {
	version int
	name    string
	sql     string
}

func (f fixtureFile) String() string {
	return fmt.Sprintf("%03d_%s", f.version, f.name)
}

// runFixtures applies every fixture newer than the database's user_version
// in one transaction. A fresh :memory: database starts at 0, so only file
// DSNs ever skip anything.
func runFixtures(db *sql.DB, fsys fs.FS) error {
	files, err := loadFixtureFiles(fsys)
	if err != nil {
		return err
	}

	current, err := userVersion(db)
	if err != nil {
		return err
	}

	pending := lo.Filter(files, func(f fixtureFile, _ int) bool { return f.version > current })
	if len(pending) == 0 {
		return nil
	}
	return applyFixtures(db, pending)
}

func loadFixtureFiles(fsys fs.FS) ([]fixtureFile, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture directory: %w", err)
	}

	sqlEntries := lo.Filter(entries, func(e fs.DirEntry, _ int) bool {
		return !e.IsDir() && path.Ext(e.Name()) == ".sql"
	})

	files := make([]fixtureFile, 0, len(sqlEntries))
	for _, entry := range sqlEntries {
		f, err := readFixtureFile(fsys, entry.Name())
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}

	if dups := lo.FindDuplicatesBy(files, func(f fixtureFile) int { return f.version }); len(dups) > 0 {
		return nil, fmt.Errorf("duplicate fixture version: %d", dups[0].version)
	}

	slices.SortFunc(files, func(a, b fixtureFile) int {
		return cmp.Compare(a.version, b.version)
	})
	return files, nil
}

func readFixtureFile(fsys fs.FS, filename string) (fixtureFile, error) {
	version, name, err := parseFixtureFilename(filename)
	if err != nil {
		return fixtureFile{}, err
	}

	content, err := fs.ReadFile(fsys, filename)
	if err != nil {
		return fixtureFile{}, fmt.Errorf("failed to read fixture %s: %w", filename, err)
	}

	return fixtureFile{version: version, name: name, sql: string(content)}, nil
}

func parseFixtureFilename(filename string) (int, string, error) {
	base := strings.TrimSuffix(filename, path.Ext(filename))
	parts := strings.SplitN(base, "_", 2)
	if len(parts) != 2 {
		return 0, "", fmt.Errorf("invalid fixture filename %q: expected '<version>_<name>.sql'", filename)
	}

	version, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, "", fmt.Errorf("invalid fixture version in %q: %w", filename, err)
	}

	return version, parts[1], nil
}

func userVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read fixture version: %w", err)
	}
	return version, nil
}

func applyFixtures(db *sql.DB, files []fixtureFile) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin fixture transaction: %w", err)
	}
	defer tx.Rollback()

	for _, f := range files {
		if _, err := tx.Exec(f.sql); err != nil {
			return fmt.Errorf("failed to apply fixture %s: %w", f, err)
		}
	}

	// PRAGMA does not take bound parameters; the version is an int.
	last := files[len(files)-1].version
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", last)); err != nil {
		return fmt.Errorf("failed to record fixture version %d: %w", last, err)
	}

	return tx.Commit()
}
