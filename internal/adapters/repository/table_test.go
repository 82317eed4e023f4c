package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusnav/core/internal/domain/entities"
	"github.com/campusnav/core/internal/infrastructure/config"
	"github.com/campusnav/core/internal/infrastructure/logger"
	"github.com/campusnav/core/internal/infrastructure/storage"
)

func newTestDataDir(t *testing.T) *storage.DataDir {
	t.Helper()
	dir, err := storage.New(config.StorageConfig{
		DataDir:           t.TempDir(),
		LocationsFile:     "locations.csv",
		RoutesFile:        "routes.csv",
		UsersFile:         "user_data.csv",
		NotificationsFile: "notification.csv",
	}, nil)
	require.NoError(t, err)
	return dir
}

func writeFile(t *testing.T, dir *storage.DataDir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(dir.Path(name), []byte(content), 0o644))
}

func readFile(t *testing.T, dir *storage.DataDir, name string) string {
	t.Helper()
	b, err := os.ReadFile(dir.Path(name))
	require.NoError(t, err)
	return string(b)
}

func TestLoadAllMissingFile(t *testing.T) {
	dir := newTestDataDir(t)
	repo := NewRouteRepository(dir, logger.NewNop())

	routes, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, routes)
	assert.NotNil(t, routes)
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := newTestDataDir(t)
	log := logger.NewNop()

	t.Run("locations", func(t *testing.T) {
		repo := NewLocationRepository(dir, log)
		want := []entities.Location{
			{ID: 1, Name: "Library", Building: "Main", Floor: 0, Accessible: true},
			{ID: 3, Name: "Lab, West", Building: "Science \"B\"", Floor: -1, Accessible: false},
		}
		require.NoError(t, repo.SaveAll(ctx, want))

		got, err := repo.LoadAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("routes", func(t *testing.T) {
		repo := NewRouteRepository(dir, log)
		want := []entities.Route{
			{ID: 1, StartLocation: "A", EndLocation: "B", DistanceM: 50, Accessible: true},
			{ID: 2, StartLocation: "A", EndLocation: "B", DistanceM: 30.25, Accessible: false},
		}
		require.NoError(t, repo.SaveAll(ctx, want))

		got, err := repo.LoadAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t,
			"id,start_location,end_location,distance_m,accessible\n1,A,B,50.0,True\n2,A,B,30.25,False\n",
			readFile(t, dir, "routes.csv"))
	})

	t.Run("users", func(t *testing.T) {
		repo := NewUserRepository(dir, log)
		want := []entities.User{
			{ID: 1, Username: "ana", Email: "ana@uni.edu", Role: entities.UserRoleAdmin, PasswordHash: "abc123"},
			{ID: 2, Username: "ben", Email: "ben@uni.edu", Role: entities.UserRoleVisitor, PasswordHash: "def456"},
		}
		require.NoError(t, repo.SaveAll(ctx, want))

		got, err := repo.LoadAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("notifications", func(t *testing.T) {
		repo := NewNotificationRepository(dir, log)
		want := []entities.Notification{
			{ID: 1, UserID: 1, Message: "Route 'A → B' updated", Delivered: false},
			{ID: 2, UserID: 4, Message: "multi\nline", Delivered: true},
		}
		require.NoError(t, repo.SaveAll(ctx, want))

		got, err := repo.LoadAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestLoadAllBooleans(t *testing.T) {
	dir := newTestDataDir(t)
	writeFile(t, dir, "locations.csv",
		"id,name,building,floor,accessible\n1,A,X,0,TRUE\n2,B,X,0,true\n3,C,X,0,yes\n4,D,X,0,False\n")

	got, err := NewLocationRepository(dir, logger.NewNop()).LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.True(t, got[0].Accessible)
	assert.True(t, got[1].Accessible)
	assert.False(t, got[2].Accessible)
	assert.False(t, got[3].Accessible)
}

func TestLoadAllColumnOrder(t *testing.T) {
	dir := newTestDataDir(t)
	writeFile(t, dir, "routes.csv",
		"accessible,distance_m,end_location,start_location,id,note\nTrue,12.5,B,A,7,extra\n")

	got, err := NewRouteRepository(dir, logger.NewNop()).LoadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []entities.Route{{ID: 7, StartLocation: "A", EndLocation: "B", DistanceM: 12.5, Accessible: true}}, got)
}

func TestLoadAllMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
		line    int
		column  string
	}{
		{
			name:    "bad integer",
			content: "id,name,building,floor,accessible\n1,A,X,0,True\n2,B,X,first,True\n",
			line:    3,
			column:  "floor",
		},
		{
			name:    "bad id",
			content: "id,name,building,floor,accessible\nx,A,X,0,True\n",
			line:    2,
			column:  "id",
		},
		{
			name:    "short row",
			content: "id,name,building,floor,accessible\n1,A\n",
			line:    2,
			column:  "building",
		},
		{
			name:    "missing column",
			content: "id,name,floor,accessible\n1,A,0,True\n",
			line:    1,
			column:  "building",
		},
		{
			name:    "duplicate id",
			content: "id,name,building,floor,accessible\n1,A,X,0,True\n1,B,X,0,True\n",
			line:    3,
			column:  "id",
		},
		{
			name:    "failed validation",
			content: "id,name,building,floor,accessible\n1,,X,0,True\n",
			line:    2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := newTestDataDir(t)
			writeFile(t, dir, "locations.csv", tt.content)

			got, err := NewLocationRepository(dir, logger.NewNop()).LoadAll(context.Background())
			assert.Nil(t, got)
			require.Error(t, err)
			assert.True(t, errors.Is(err, entities.ErrMalformedRecord))

			var merr *entities.MalformedRecordError
			require.True(t, errors.As(err, &merr))
			assert.Equal(t, "locations.csv", merr.File)
			assert.Equal(t, tt.line, merr.Line)
			assert.Equal(t, tt.column, merr.Column)
		})
	}
}

func TestLoadAllRouteValidation(t *testing.T) {
	dir := newTestDataDir(t)
	writeFile(t, dir, "routes.csv",
		"id,start_location,end_location,distance_m,accessible\n1,A,B,-4,True\n")

	_, err := NewRouteRepository(dir, logger.NewNop()).LoadAll(context.Background())
	assert.True(t, errors.Is(err, entities.ErrMalformedRecord))
	assert.True(t, errors.Is(err, entities.ErrValidation))
}

func TestLegacyUsersFile(t *testing.T) {
	ctx := context.Background()
	dir := newTestDataDir(t)
	writeFile(t, dir, "user_data.csv",
		"username,email,role,password\nana,ana@uni.edu,admin,aaa\nben,ben@uni.edu,student,bbb\n")
	repo := NewUserRepository(dir, logger.NewNop())

	users, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, 1, users[0].ID)
	assert.Equal(t, "ana", users[0].Username)
	assert.Equal(t, 2, users[1].ID)
	assert.Equal(t, "bbb", users[1].PasswordHash)

	require.NoError(t, repo.SaveAll(ctx, users))
	assert.Equal(t,
		"id,username,email,role,password\n1,ana,ana@uni.edu,admin,aaa\n2,ben,ben@uni.edu,student,bbb\n",
		readFile(t, dir, "user_data.csv"))
}

func TestLegacySignupFile(t *testing.T) {
	ctx := context.Background()
	dir := newTestDataDir(t)
	writeFile(t, dir, "user_data.csv",
		"username,email,role,password,consent\n"+
			"ana,ana@uni.edu,admin,aaa,yes\n"+
			"ben,ben-at-home,Regular User,bbb,yes\n")

	users, err := NewUserRepository(dir, logger.NewNop()).LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, entities.UserRoleAdmin, users[0].Role)
	assert.Equal(t, 2, users[1].ID)
	assert.Equal(t, entities.UserRoleVisitor, users[1].Role)
	assert.Equal(t, "ben-at-home", users[1].Email)
}

func TestLoadAllRejectsInfiniteDistance(t *testing.T) {
	for _, value := range []string{"inf", "+Inf", "NaN"} {
		t.Run(value, func(t *testing.T) {
			dir := newTestDataDir(t)
			writeFile(t, dir, "routes.csv",
				"id,start_location,end_location,distance_m,accessible\n1,A,B,"+value+",True\n")

			got, err := NewRouteRepository(dir, logger.NewNop()).LoadAll(context.Background())
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, entities.ErrMalformedRecord))
		})
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	dir := newTestDataDir(t)
	repo := NewNotificationRepository(dir, logger.NewNop())

	t.Run("appends", func(t *testing.T) {
		err := repo.Update(ctx, func(ns []entities.Notification) ([]entities.Notification, error) {
			return append(ns, entities.Notification{ID: entities.NextID(ns), UserID: 1, Message: "hello"}), nil
		})
		require.NoError(t, err)

		got, err := repo.LoadAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []entities.Notification{{ID: 1, UserID: 1, Message: "hello"}}, got)
	})

	t.Run("error leaves file untouched", func(t *testing.T) {
		before := readFile(t, dir, "notification.csv")
		boom := errors.New("boom")

		err := repo.Update(ctx, func(ns []entities.Notification) ([]entities.Notification, error) {
			return nil, boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, before, readFile(t, dir, "notification.csv"))
	})

	t.Run("concurrent updates never lose writes", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := repo.Update(ctx, func(ns []entities.Notification) ([]entities.Notification, error) {
					return append(ns, entities.Notification{ID: entities.NextID(ns), UserID: 2, Message: "tick"}), nil
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		got, err := repo.LoadAll(ctx)
		require.NoError(t, err)
		require.Len(t, got, 21)
		for i, n := range got {
			assert.Equal(t, i+1, n.ID)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		err := repo.Update(cctx, func(ns []entities.Notification) ([]entities.Notification, error) {
			t.Fatal("fn must not run")
			return ns, nil
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSaveAllFailureKeepsPreviousState(t *testing.T) {
	ctx := context.Background()
	dir := newTestDataDir(t)
	repo := NewLocationRepository(dir, logger.NewNop())

	// A non-empty directory at the table path makes the final rename fail.
	require.NoError(t, os.MkdirAll(filepath.Join(dir.Path("locations.csv"), "keep"), 0o755))

	err := repo.SaveAll(ctx, []entities.Location{{ID: 1, Name: "A", Building: "X"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, entities.ErrStoreUnavailable))

	entries, err := os.ReadDir(dir.Root())
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp")
	}

	_, err = repo.LoadAll(ctx)
	assert.True(t, errors.Is(err, entities.ErrStoreUnavailable))
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(entities.Location{ID: 1, Name: "A", Building: "X"})

	require.NoError(t, store.Update(ctx, func(ls []entities.Location) ([]entities.Location, error) {
		return append(ls, entities.Location{ID: 2, Name: "B", Building: "X"}), nil
	}))
	assert.Len(t, store.Records(), 2)
	assert.Equal(t, 1, store.Saves())

	store.SaveErr = entities.ErrStoreUnavailable
	err := store.SaveAll(ctx, nil)
	assert.ErrorIs(t, err, entities.ErrStoreUnavailable)
	assert.Len(t, store.Records(), 2)
}
