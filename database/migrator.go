package database

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/artemisweb/portfolio-backend/errs"
	"github.com/artemisweb/portfolio-backend/models"
)

// Migrator applies SQL migration files in lexical filename order and
// records each applied file in the migrations ledger table. Re-running
// is idempotent: already-recorded files are skipped. A file is recorded
// only after its SQL fully executed, and the first failure aborts the
// run with nothing after it attempted.
type Migrator struct {
	db     *gorm.DB
	dir    string
	logger zerolog.Logger
}

func NewMigrator(db *gorm.DB, dir string) *Migrator {
	logger := log.With().Str("component", "migrator").Str("dir", dir).Logger()
	return &Migrator{db: db, dir: dir, logger: logger}
}

// Run applies every pending migration file. Callers treat a returned
// error as fatal; the ledger then reflects exactly the files that
// completed before the failure.
func (m *Migrator) Run() error {
	if err := m.db.AutoMigrate(&models.Migration{}); err != nil {
		return errs.NewDatabaseError("ensure ledger table for", "migrations", err)
	}

	files, err := m.pendingFiles()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		m.logger.Info().Msg("no migration files found")
		return nil
	}

	applied, err := m.appliedSet()
	if err != nil {
		return err
	}

	executed := 0
	for _, file := range files {
		if applied[file] {
			m.logger.Info().Str("file", file).Msg("skipping migration, already applied")
			continue
		}

		sqlBytes, err := os.ReadFile(filepath.Join(m.dir, file))
		if err != nil {
			return errs.NewMigrationError(file, err)
		}

		m.logger.Info().Str("file", file).Msg("applying migration")
		if err := m.db.Exec(string(sqlBytes)).Error; err != nil {
			return errs.NewMigrationError(file, err)
		}
		if err := m.db.Create(&models.Migration{Filename: file}).Error; err != nil {
			return errs.NewMigrationError(file, err)
		}
		executed++
	}

	m.logger.Info().Int("executed", executed).Int("total", len(files)).Msg("migrations complete")
	return nil
}

// pendingFiles lists the *.sql files on disk in lexical order. File
// naming is the caller's ordering contract: numeric or date prefixes so
// the sort matches the intended chronology.
func (m *Migrator) pendingFiles() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, errs.NewDatabaseError("read migration directory for", "migrations", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files, nil
}

func (m *Migrator) appliedSet() (map[string]bool, error) {
	var records []models.Migration
	if err := m.db.Find(&records).Error; err != nil {
		return nil, errs.NewDatabaseError("load ledger for", "migrations", err)
	}

	applied := make(map[string]bool, len(records))
	for _, record := range records {
		applied[record.Filename] = true
	}
	return applied, nil
}
