package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusnav/core/internal/domain/entities"
	"github.com/campusnav/core/internal/infrastructure/config"
)

type recordingObserver struct {
	mu  sync.Mutex
	ops []string
}

func (o *recordingObserver) ObserveStore(file, op string, records int, d time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ops = append(o.ops, file+":"+op)
}

func newTestDir(t *testing.T) *DataDir {
	t.Helper()
	d, err := New(config.StorageConfig{
		DataDir:       filepath.Join(t.TempDir(), "data"),
		RoutesFile:    "routes.csv",
		LocationsFile: "locations.csv",
	}, nil)
	require.NoError(t, err)
	return d
}

func TestNewCreatesDirectory(t *testing.T) {
	d := newTestDir(t)
	assert.DirExists(t, d.Root())
	assert.NoError(t, d.Ping())
	assert.NoError(t, d.HealthCheck())
}

func TestNewRequiresDirectory(t *testing.T) {
	_, err := New(config.StorageConfig{}, nil)
	assert.True(t, errors.Is(err, entities.ErrStoreUnavailable))
}

func TestWriteAtomic(t *testing.T) {
	d := newTestDir(t)

	err := d.WriteAtomic("routes.csv", func(w io.Writer) error {
		_, err := io.WriteString(w, "id\n1\n")
		return err
	})
	require.NoError(t, err)

	data, err := os.ReadFile(d.Path("routes.csv"))
	require.NoError(t, err)
	assert.Equal(t, "id\n1\n", string(data))

	t.Run("failed write keeps previous content", func(t *testing.T) {
		boom := errors.New("boom")
		err := d.WriteAtomic("routes.csv", func(w io.Writer) error {
			io.WriteString(w, "id\n")
			return boom
		})
		assert.ErrorIs(t, err, boom)

		data, err := os.ReadFile(d.Path("routes.csv"))
		require.NoError(t, err)
		assert.Equal(t, "id\n1\n", string(data))

		leftovers, err := filepath.Glob(filepath.Join(d.Root(), ".routes.csv-*.tmp"))
		require.NoError(t, err)
		assert.Empty(t, leftovers)
	})
}

func TestOpenMissingFile(t *testing.T) {
	d := newTestDir(t)
	_, err := d.Open("nope.csv")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestWithLockSerializes(t *testing.T) {
	d := newTestDir(t)
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = d.WithLock(context.Background(), "routes.csv", func() error {
				v := counter
				time.Sleep(time.Microsecond)
				counter = v + 1
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestWithLockHonoursCancelledContext(t *testing.T) {
	d := newTestDir(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := d.WithLock(ctx, "routes.csv", func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestObserveAndStorageInfo(t *testing.T) {
	obs := &recordingObserver{}
	d, err := New(config.StorageConfig{DataDir: t.TempDir(), RoutesFile: "routes.csv", LocationsFile: "locations.csv"}, obs)
	require.NoError(t, err)

	require.NoError(t, d.WriteAtomic("routes.csv", func(w io.Writer) error { return nil }))
	d.Observe("routes.csv", "save", 0, time.Now(), nil)
	assert.Equal(t, []string{"routes.csv:save"}, obs.ops)

	info := d.GetStorageInfo()
	assert.Equal(t, true, info["routes.csv"].(map[string]interface{})["exists"])
	assert.Equal(t, false, info["locations.csv"].(map[string]interface{})["exists"])
}
