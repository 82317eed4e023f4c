package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/campusnav/core/internal/domain/entities"
	"github.com/campusnav/core/internal/infrastructure/config"
)

// Observer receives one callback per completed load or save
type Observer interface {
	ObserveStore(file, op string, records int, duration time.Duration, err error)
}

// DataDir is the handle to the directory holding every CSV table. It owns
// the per-file locks that serialize read-modify-write cycles.
type DataDir struct {
	root     string
	config   config.StorageConfig
	observer Observer

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New opens (creating if needed) the data directory
func New(cfg config.StorageConfig, observer Observer) (*DataDir, error) {
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("data directory is not configured: %w", entities.ErrStoreUnavailable)
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %v: %w", cfg.DataDir, err, entities.ErrStoreUnavailable)
	}

	return &DataDir{
		root:     cfg.DataDir,
		config:   cfg,
		observer: observer,
		locks:    make(map[string]*sync.Mutex),
	}, nil
}

// Root returns the directory path
func (d *DataDir) Root() string {
	return d.root
}

// Config returns the storage configuration the handle was opened with
func (d *DataDir) Config() config.StorageConfig {
	return d.config
}

// Path returns the full path of a table file
func (d *DataDir) Path(name string) string {
	return filepath.Join(d.root, name)
}

// Open opens a table for reading. A missing file is reported with
// os.ErrNotExist so callers can treat it as an empty table.
func (d *DataDir) Open(name string) (*os.File, error) {
	f, err := os.Open(d.Path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to open %s: %v: %w", name, err, entities.ErrStoreUnavailable)
	}
	return f, nil
}

// WithLock executes fn while holding the lock for one table
func (d *DataDir) WithLock(ctx context.Context, name string, fn func() error) error {
	lock := d.lockFor(name)
	lock.Lock()
	defer lock.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn()
}

func (d *DataDir) lockFor(name string) *sync.Mutex {
	d.mu.Lock()
	defer d.mu.Unlock()

	lock, ok := d.locks[name]
	if !ok {
		lock = &sync.Mutex{}
		d.locks[name] = lock
	}
	return lock
}

// WriteAtomic replaces a table with whatever fn writes, using the temp-file,
// fsync, rename pattern. On any error the previous file is left untouched.
func (d *DataDir) WriteAtomic(name string, fn func(w io.Writer) error) error {
	path := d.Path(name)
	tmp, err := os.CreateTemp(d.root, "."+name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %v: %w", name, err, entities.ErrStoreUnavailable)
	}
	tmpName := tmp.Name()

	fail := func(step string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%s for %s: %v: %w", step, name, err, entities.ErrStoreUnavailable)
	}

	w := bufio.NewWriter(tmp)
	if err := fn(w); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := w.Flush(); err != nil {
		return fail("flushing buffer", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("syncing temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file for %s: %v: %w", name, err, entities.ErrStoreUnavailable)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file for %s: %v: %w", name, err, entities.ErrStoreUnavailable)
	}
	return nil
}

// Observe forwards a completed operation to the observer, if any
func (d *DataDir) Observe(file, op string, records int, started time.Time, err error) {
	if d.observer != nil {
		d.observer.ObserveStore(file, op, records, time.Since(started), err)
	}
}

// Ping checks that the data directory still exists
func (d *DataDir) Ping() error {
	info, err := os.Stat(d.root)
	if err != nil {
		return fmt.Errorf("data directory unreachable: %v: %w", err, entities.ErrStoreUnavailable)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory: %w", d.root, entities.ErrStoreUnavailable)
	}
	return nil
}

// HealthCheck verifies the data directory is writable by creating and
// removing a scratch file
func (d *DataDir) HealthCheck() error {
	if err := d.Ping(); err != nil {
		return err
	}

	scratch, err := os.CreateTemp(d.root, ".health-*")
	if err != nil {
		return fmt.Errorf("storage health check failed: %v: %w", err, entities.ErrStoreUnavailable)
	}
	name := scratch.Name()
	scratch.Close()
	os.Remove(name)

	return nil
}

// GetStorageInfo returns size and modification time of every table file
func (d *DataDir) GetStorageInfo() map[string]interface{} {
	info := map[string]interface{}{
		"data_dir": d.root,
	}

	for _, name := range []string{d.config.LocationsFile, d.config.RoutesFile, d.config.UsersFile, d.config.NotificationsFile} {
		if name == "" {
			continue
		}
		st, err := os.Stat(d.Path(name))
		if err != nil {
			info[name] = map[string]interface{}{"exists": false}
			continue
		}
		info[name] = map[string]interface{}{
			"exists":      true,
			"size_bytes":  st.Size(),
			"modified_at": st.ModTime().UTC().Format(time.RFC3339),
		}
	}

	return info
}
