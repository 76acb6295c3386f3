// Package migration runs and tracks schema migrations for the SQL backends.
//
// Migrations register themselves from init():
//
//	func init() {
//	    migration.Register("20260101000000_create_users_table", &CreateUsersTable{})
//	}
//
// and are applied from the CLI:
//
//	shopdesk migrate             // run all pending
//	shopdesk migrate:rollback    // rollback last batch
//	shopdesk migrate:status
package migration

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/shopdesk/pkg/logger"
)

// Migration is the interface every migration must implement.
type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

// migrationRecord is the row stored in the tracking table.
type migrationRecord struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (migrationRecord) TableName() string { return "shopdesk_migrations" }

// Entry is a named migration.
type Entry struct {
	Name      string
	Migration Migration
}

var registry []Entry

// Register adds a migration to the global registry. name should be
// timestamp-prefixed so that lexical order is chronological.
func Register(name string, m Migration) {
	registry = append(registry, Entry{Name: name, Migration: m})
}

// Registered returns the global registry sorted by name.
func Registered() []Entry {
	out := append([]Entry(nil), registry...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Runner executes and tracks migrations.
type Runner struct {
	db      *gorm.DB
	out     io.Writer
	entries []Entry
}

// New creates a Runner over the global registry. Progress is written to out.
func New(db *gorm.DB, out io.Writer) *Runner {
	return NewWith(db, out, Registered())
}

// NewWith creates a Runner over an explicit list of migrations.
func NewWith(db *gorm.DB, out io.Writer, entries []Entry) *Runner {
	if out == nil {
		out = io.Discard
	}
	return &Runner{db: db, out: out, entries: entries}
}

// EnsureTable creates the tracking table if it does not exist.
func (r *Runner) EnsureTable() error {
	return r.db.AutoMigrate(&migrationRecord{})
}

// Pending returns the migrations that have not yet been run.
func (r *Runner) Pending() ([]Entry, error) {
	ran, err := r.ran()
	if err != nil {
		return nil, err
	}

	var pending []Entry
	for _, e := range r.entries {
		if _, ok := ran[e.Name]; !ok {
			pending = append(pending, e)
		}
	}
	return pending, nil
}

// Run executes all pending migrations in a single batch and returns how many
// ran.
func (r *Runner) Run() (int, error) {
	if err := r.EnsureTable(); err != nil {
		return 0, errors.Wrap(err, "migration: ensure table")
	}

	pending, err := r.Pending()
	if err != nil {
		return 0, errors.Wrap(err, "migration: fetch pending")
	}

	if len(pending) == 0 {
		fmt.Fprintln(r.out, "Nothing to migrate.")
		return 0, nil
	}

	batch, err := r.lastBatch()
	if err != nil {
		return 0, err
	}
	batch++

	for _, e := range pending {
		logger.Info("migration: running", "name", e.Name)
		fmt.Fprintf(r.out, "  ▶ Migrating: %s\n", e.Name)

		if err := e.Migration.Up(r.db); err != nil {
			return 0, errors.Wrapf(err, "migration: %s up", e.Name)
		}

		record := migrationRecord{Name: e.Name, Batch: batch}
		if err := r.db.Create(&record).Error; err != nil {
			return 0, errors.Wrapf(err, "migration: record %s", e.Name)
		}

		fmt.Fprintf(r.out, "  ✅ Migrated:  %s\n", e.Name)
	}

	logger.Info("migration: done", "ran", len(pending), "batch", batch)
	return len(pending), nil
}

// Rollback reverses all migrations from the most recent batch and returns how
// many were rolled back.
func (r *Runner) Rollback() (int, error) {
	if err := r.EnsureTable(); err != nil {
		return 0, errors.Wrap(err, "migration: ensure table")
	}

	batch, err := r.lastBatch()
	if err != nil {
		return 0, err
	}
	if batch == 0 {
		fmt.Fprintln(r.out, "Nothing to roll back.")
		return 0, nil
	}

	var records []migrationRecord
	if err := r.db.Where("batch = ?", batch).Order("id desc").Find(&records).Error; err != nil {
		return 0, errors.Wrap(err, "migration: load batch")
	}

	byName := make(map[string]Migration, len(r.entries))
	for _, e := range r.entries {
		byName[e.Name] = e.Migration
	}

	for _, rec := range records {
		m, ok := byName[rec.Name]
		if !ok {
			return 0, errors.Errorf("migration: cannot rollback %s: not registered", rec.Name)
		}

		fmt.Fprintf(r.out, "  ◀ Rolling back: %s\n", rec.Name)
		logger.Info("migration: rolling back", "name", rec.Name)

		if err := m.Down(r.db); err != nil {
			return 0, errors.Wrapf(err, "migration: %s down", rec.Name)
		}
		if err := r.db.Delete(&rec).Error; err != nil {
			return 0, errors.Wrapf(err, "migration: forget %s", rec.Name)
		}

		fmt.Fprintf(r.out, "  ✅ Rolled back:  %s\n", rec.Name)
	}

	return len(records), nil
}

// Status prints every known migration and whether it has been run.
func (r *Runner) Status() error {
	if err := r.EnsureTable(); err != nil {
		return err
	}

	ran, err := r.ran()
	if err != nil {
		return err
	}

	fmt.Fprintf(r.out, "%-60s  %-8s  %s\n", "Migration", "Status", "Batch")
	fmt.Fprintln(r.out, strings.Repeat("-", 80))
	for _, e := range r.entries {
		if rec, ok := ran[e.Name]; ok {
			fmt.Fprintf(r.out, "%-60s  %-8s  %d\n", e.Name, "Ran", rec.Batch)
		} else {
			fmt.Fprintf(r.out, "%-60s  %-8s  -\n", e.Name, "Pending")
		}
	}
	return nil
}

func (r *Runner) ran() (map[string]migrationRecord, error) {
	var rows []migrationRecord
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "migration: list ran")
	}
	out := make(map[string]migrationRecord, len(rows))
	for _, rec := range rows {
		out[rec.Name] = rec
	}
	return out, nil
}

func (r *Runner) lastBatch() (int, error) {
	var last struct{ Batch int }
	if err := r.db.Model(&migrationRecord{}).Select("COALESCE(MAX(batch), 0) AS batch").Scan(&last).Error; err != nil {
		return 0, errors.Wrap(err, "migration: last batch")
	}
	return last.Batch, nil
}
