package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// BackupManager handles snapshots of a SQLiteKV database file.
type BackupManager struct {
	kv         *SQLiteKV
	backupsDir string
	now        func() time.Time
}

// BackupMetadata is written next to every backup file.
type BackupMetadata struct {
	CreatedAt     time.Time `json:"created_at"`
	ID            string    `json:"id"`
	Description   string    `json:"description"`
	FileSize      int64     `json:"file_size"`
	Expenses      int       `json:"expenses"`
	Budgets       int       `json:"budgets"`
	SchemaVersion int       `json:"schema_version"`
	IsAuto        bool      `json:"is_auto"`
}

// Backup errors.
var (
	ErrBackupNotFound  = errors.New("backup not found")
	ErrBackupCorrupted = errors.New("backup integrity check failed")
	ErrBackupExists    = errors.New("backup already exists")
	ErrInvalidBackupID = errors.New("invalid backup id: cannot contain path separators")
	ErrInMemoryBackup  = errors.New("in-memory databases cannot be backed up")
)

// MaxAutoBackups is how many automatic backups are retained.
const MaxAutoBackups = 5

// NewBackupManager creates a backup manager storing snapshots in a
// "backups" directory beside the database.
func NewBackupManager(kv *SQLiteKV) (*BackupManager, error) {
	if kv.dbPath == ":memory:" {
		return nil, ErrInMemoryBackup
	}

	backupsDir := filepath.Join(filepath.Dir(kv.dbPath), "backups")
	if err := os.MkdirAll(backupsDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create backups directory: %w", err)
	}

	return &BackupManager{
		kv:         kv,
		backupsDir: backupsDir,
		now:        time.Now,
	}, nil
}

// Dir returns the backups directory.
func (bm *BackupManager) Dir() string {
	return bm.backupsDir
}

// Create snapshots the database under id. An empty id gets a timestamped name.
func (bm *BackupManager) Create(ctx context.Context, id, description string) (*BackupMetadata, error) {
	return bm.create(ctx, id, description, false)
}

// AutoBackup creates an automatic backup before the named operation and
// prunes automatic backups beyond MaxAutoBackups.
func (bm *BackupManager) AutoBackup(ctx context.Context, operation string) (*BackupMetadata, error) {
	id := fmt.Sprintf("auto-%s-%s", operation, bm.now().Format("2006-01-02-150405"))
	meta, err := bm.create(ctx, id, "Automatic backup before "+operation, true)
	if err != nil {
		return nil, fmt.Errorf("failed to create auto-backup: %w", err)
	}

	if err := bm.pruneAutoBackups(ctx); err != nil {
		slog.Warn("failed to prune old auto-backups", "error", err)
	}
	return meta, nil
}

func (bm *BackupManager) create(ctx context.Context, id, description string, auto bool) (*BackupMetadata, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if id == "" {
		id = "backup-" + bm.now().Format("2006-01-02-150405")
	}
	if err := validateBackupID(id); err != nil {
		return nil, err
	}

	backupPath := bm.dataPath(id)
	if _, err := os.Stat(backupPath); err == nil {
		return nil, ErrBackupExists
	}

	schemaVersion, err := bm.kv.SchemaVersion(ctx)
	if err != nil {
		return nil, err
	}
	expenses, budgets := bm.countRecords(ctx)

	if err := bm.snapshot(ctx, backupPath); err != nil {
		return nil, fmt.Errorf("failed to backup database: %w", err)
	}

	info, err := os.Stat(backupPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat backup: %w", err)
	}

	meta := BackupMetadata{
		ID:            id,
		CreatedAt:     bm.now(),
		Description:   description,
		FileSize:      info.Size(),
		Expenses:      expenses,
		Budgets:       budgets,
		SchemaVersion: schemaVersion,
		IsAuto:        auto,
	}
	if err := saveMetadata(bm.metaPath(id), meta); err != nil {
		if rmErr := os.Remove(backupPath); rmErr != nil {
			slog.Error("failed to remove backup file after metadata save failure", "error", rmErr)
		}
		return nil, fmt.Errorf("failed to save metadata: %w", err)
	}

	slog.Info("created backup", "id", id, "expenses", expenses, "budgets", budgets)
	return &meta, nil
}

// List returns all backups, newest first.
func (bm *BackupManager) List(_ context.Context) ([]BackupMetadata, error) {
	entries, err := os.ReadDir(bm.backupsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backups directory: %w", err)
	}

	backups := make([]BackupMetadata, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".meta.json") {
			continue
		}
		meta, err := loadMetadata(filepath.Join(bm.backupsDir, entry.Name()))
		if err != nil {
			slog.Debug("skipping unreadable backup metadata", "file", entry.Name(), "error", err)
			continue
		}
		backups = append(backups, *meta)
	}

	sort.SliceStable(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
	return backups, nil
}

// Restore replaces the database file with the named backup. The manager's
// SQLiteKV is closed first and must be reopened by the caller.
func (bm *BackupManager) Restore(_ context.Context, id string) error {
	if err := validateBackupID(id); err != nil {
		return err
	}

	backupPath := bm.dataPath(id)
	if _, err := os.Stat(backupPath); err != nil {
		if os.IsNotExist(err) {
			return ErrBackupNotFound
		}
		return fmt.Errorf("failed to access backup: %w", err)
	}
	if err := verifyIntegrity(backupPath); err != nil {
		return fmt.Errorf("%w: %w", ErrBackupCorrupted, err)
	}

	if err := bm.kv.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	// WAL side files belong to the replaced database.
	for _, suffix := range []string{"-wal", "-shm"} {
		if err := os.Remove(bm.kv.dbPath + suffix); err != nil && !os.IsNotExist(err) {
			slog.Warn("failed to remove database side file", "suffix", suffix, "error", err)
		}
	}

	if err := copyFile(backupPath, bm.kv.dbPath); err != nil {
		return fmt.Errorf("failed to restore backup: %w", err)
	}

	slog.Info("restored backup", "id", id)
	return nil
}

// Delete removes a backup and its metadata.
func (bm *BackupManager) Delete(_ context.Context, id string) error {
	if err := validateBackupID(id); err != nil {
		return err
	}

	backupPath := bm.dataPath(id)
	if err := os.Remove(backupPath); err != nil {
		if os.IsNotExist(err) {
			return ErrBackupNotFound
		}
		return fmt.Errorf("failed to remove backup file: %w", err)
	}
	if err := os.Remove(bm.metaPath(id)); err != nil {
		slog.Debug("failed to remove metadata file", "error", err, "id", id)
	}
	return nil
}

func (bm *BackupManager) pruneAutoBackups(ctx context.Context) error {
	backups, err := bm.List(ctx)
	if err != nil {
		return err
	}

	kept := 0
	for _, b := range backups {
		if !b.IsAuto {
			continue
		}
		kept++
		if kept > MaxAutoBackups {
			if err := bm.Delete(ctx, b.ID); err != nil {
				slog.Debug("failed to delete old auto-backup", "error", err, "id", b.ID)
			}
		}
	}
	return nil
}

func (bm *BackupManager) countRecords(ctx context.Context) (expenses, budgets int) {
	count := func(key string) int {
		raw, ok, err := bm.kv.Get(ctx, key)
		if err != nil || !ok {
			return 0
		}
		objects, err := decodeObjects(raw)
		if err != nil {
			return 0
		}
		return len(objects)
	}
	return count(ExpensesKey), count(BudgetsKey)
}

func (bm *BackupManager) snapshot(ctx context.Context, destPath string) error {
	if _, err := bm.kv.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return fmt.Errorf("failed to checkpoint WAL: %w", err)
	}

	// VACUUM INTO takes the target as a bound parameter.
	if _, err := bm.kv.db.ExecContext(ctx, "VACUUM INTO ?", destPath); err != nil {
		slog.Debug("VACUUM INTO failed, copying file", "error", err)
		return copyFile(bm.kv.dbPath, destPath)
	}
	return nil
}

func (bm *BackupManager) dataPath(id string) string {
	return filepath.Join(bm.backupsDir, id+".db")
}

func (bm *BackupManager) metaPath(id string) string {
	return filepath.Join(bm.backupsDir, id+".meta.json")
}

func validateBackupID(id string) error {
	if strings.Contains(id, "/") || strings.Contains(id, "\\") || strings.Contains(id, "..") {
		return ErrInvalidBackupID
	}
	return validateString(id, "id")
}

func verifyIntegrity(path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	var result string
	if err := db.QueryRow("PRAGMA integrity_check").Scan(&result); err != nil {
		return err
	}
	if result != "ok" {
		return fmt.Errorf("integrity check failed: %s", result)
	}
	return nil
}

func copyFile(src, dst string) error {
	source, err := os.Open(filepath.Clean(src))
	if err != nil {
		return err
	}
	defer func() { _ = source.Close() }()

	tmpDst := dst + ".tmp"
	destination, err := os.Create(filepath.Clean(tmpDst))
	if err != nil {
		return err
	}

	if _, err := io.Copy(destination, source); err != nil {
		_ = destination.Close()
		_ = os.Remove(tmpDst)
		return err
	}
	if err := destination.Close(); err != nil {
		_ = os.Remove(tmpDst)
		return err
	}
	return os.Rename(tmpDst, dst)
}

func saveMetadata(path string, meta BackupMetadata) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

func loadMetadata(path string) (*BackupMetadata, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	var meta BackupMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}
