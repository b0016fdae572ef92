package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/hazolabs/storefront-backend/pkg/config"
	"github.com/hazolabs/storefront-backend/pkg/db"
	pkgerrors "github.com/hazolabs/storefront-backend/pkg/errors"
	"github.com/hazolabs/storefront-backend/pkg/logger"
)

const backupPrefix = "storefront-"

// Entry describes one stored backup file.
type Entry struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// TableStat is one row of the database overview.
type TableStat struct {
	Name     string `json:"name"`
	RowCount int64  `json:"row_count"`
}

type Service struct {
	client *db.Client
	cfg    config.BackupConfig
	logg   *logger.Logger
	now    func() time.Time
}

func NewService(client *db.Client, cfg config.BackupConfig, logg *logger.Logger) (*Service, error) {
	if client == nil {
		return nil, fmt.Errorf("db client is required")
	}
	if cfg.Dir == "" {
		return nil, fmt.Errorf("backup dir is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating backup dir: %w", err)
	}
	return &Service{client: client, cfg: cfg, logg: logg, now: time.Now}, nil
}

// Create checkpoints the WAL, copies the database file under a timestamped
// name, then rotates old backups down to the configured keep count.
func (s *Service) Create(ctx context.Context) (*Entry, error) {
	// fold WAL pages into the main file so the copy is complete
	if err := s.client.Exec(ctx, "PRAGMA wal_checkpoint(TRUNCATE)").Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "wal checkpoint")
	}

	name := fmt.Sprintf("%s%s.db", backupPrefix, s.now().Format("20060102-150405"))
	target := filepath.Join(s.cfg.Dir, name)

	size, err := copyFile(s.client.Path(), target)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "copy database")
	}

	if err := s.rotate(); err != nil {
		// the new backup exists; rotation problems should not fail the call
		s.logg.Error(ctx, "backup rotation failed", err)
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{"backup": name, "bytes": size})
	s.logg.Info(logCtx, "backup created")

	return &Entry{Name: name, Size: size, CreatedAt: s.now()}, nil
}

// List returns stored backups, newest first.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	entries, err := os.ReadDir(s.cfg.Dir)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read backup dir")
	}

	out := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isBackupName(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		out = append(out, Entry{Name: entry.Name(), Size: info.Size(), CreatedAt: info.ModTime()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name > out[j].Name })
	return out, nil
}

// Restore replaces the live database with the named backup. The current
// database is first copied aside so a bad restore is recoverable.
func (s *Service) Restore(ctx context.Context, name string) error {
	if !isBackupName(name) || name != filepath.Base(name) {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid backup name")
	}
	source := filepath.Join(s.cfg.Dir, name)
	if _, err := os.Stat(source); err != nil {
		if os.IsNotExist(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "backup not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "stat backup")
	}

	safety := filepath.Join(s.cfg.Dir, fmt.Sprintf("pre-restore-%s.db", s.now().Format("20060102-150405")))
	if _, err := copyFile(s.client.Path(), safety); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "safety copy")
	}

	if _, err := copyFile(source, s.client.Path()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "restore database")
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{"backup": name, "safety_copy": filepath.Base(safety)})
	s.logg.Info(logCtx, "database restored")
	return nil
}

// IntegrityCheck runs SQLite's built-in check and reports whether it passed.
func (s *Service) IntegrityCheck(ctx context.Context) (bool, string, error) {
	var result string
	if err := s.client.Raw(ctx, "PRAGMA integrity_check").Scan(&result).Error; err != nil {
		return false, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "integrity check")
	}
	return result == "ok", result, nil
}

// TableStats counts rows per user table.
func (s *Service) TableStats(ctx context.Context) ([]TableStat, error) {
	var tables []string
	err := s.client.Raw(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' AND name NOT LIKE 'goose_%' ORDER BY name",
	).Scan(&tables).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tables")
	}

	stats := make([]TableStat, 0, len(tables))
	for _, table := range tables {
		var n int64
		if err := s.client.Raw(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %q", table)).Scan(&n).Error; err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count table rows")
		}
		stats = append(stats, TableStat{Name: table, RowCount: n})
	}
	return stats, nil
}

// Run creates a backup on the configured interval until the context ends.
func (s *Service) Run(ctx context.Context) {
	if s.cfg.Interval <= 0 {
		return
	}
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	s.logg.Info(ctx, "periodic backup loop started")
	for {
		select {
		case <-ctx.Done():
			s.logg.Info(ctx, "periodic backup loop stopped")
			return
		case <-ticker.C:
			if _, err := s.Create(ctx); err != nil {
				s.logg.Error(ctx, "periodic backup failed", err)
			}
		}
	}
}

// rotate deletes the oldest backups beyond the keep count, collecting every
// deletion failure instead of stopping at the first.
func (s *Service) rotate() error {
	if s.cfg.Keep <= 0 {
		return nil
	}
	entries, err := s.List(context.Background())
	if err != nil {
		return err
	}
	if len(entries) <= s.cfg.Keep {
		return nil
	}

	var errs error
	for _, entry := range entries[s.cfg.Keep:] {
		if err := os.Remove(filepath.Join(s.cfg.Dir, entry.Name)); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("remove %s: %w", entry.Name, err))
		}
	}
	return errs
}

func isBackupName(name string) bool {
	return strings.HasPrefix(name, backupPrefix) && strings.HasSuffix(name, ".db")
}

func copyFile(from, to string) (int64, error) {
	src, err := os.Open(from)
	if err != nil {
		return 0, err
	}
	defer src.Close()

	dst, err := os.Create(to)
	if err != nil {
		return 0, err
	}
	defer dst.Close()

	written, err := io.Copy(dst, src)
	if err != nil {
		return 0, err
	}
	return written, dst.Sync()
}
