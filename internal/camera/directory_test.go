package camera

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDirectory(t *testing.T, handler http.HandlerFunc) (*Directory, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(server.URL+"/cameras", server.URL+"/image", 5*time.Second)
	return NewDirectory(client), server
}

func TestDirectory_Refresh(t *testing.T) {
	dir, _ := newTestDirectory(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"index":"camA","name":"Entrance"},{"index":"camB"}]`))
	})

	require.NoError(t, dir.Refresh(context.Background()))

	assert.Equal(t, 2, dir.Len())

	cam, ok := dir.Get(0)
	require.True(t, ok)
	assert.Equal(t, 0, cam.LocalIndex)
	assert.Equal(t, "camA", cam.RemoteID)
	assert.Equal(t, "Entrance", cam.DisplayName)

	// Missing remote name falls back to a generated label
	cam, ok = dir.Get(1)
	require.True(t, ok)
	assert.Equal(t, "camB", cam.RemoteID)
	assert.Equal(t, "Camera camB", cam.DisplayName)

	assert.Equal(t, []string{"Entrance", "Camera camB"}, dir.Labels())
}

func TestDirectory_RefreshFailureKeepsSnapshot(t *testing.T) {
	var fail atomic.Bool
	dir, _ := newTestDirectory(t, func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`[{"index":"camA","name":"Entrance"}]`))
	})

	require.NoError(t, dir.Refresh(context.Background()))
	before := dir.All()
	require.Len(t, before, 1)

	fail.Store(true)
	err := dir.Refresh(context.Background())
	assert.Error(t, err)

	// The pre-refresh snapshot is untouched
	assert.Equal(t, before, dir.All())
}

func TestDirectory_RefreshReplacesWholeSnapshot(t *testing.T) {
	var second atomic.Bool
	dir, _ := newTestDirectory(t, func(w http.ResponseWriter, r *http.Request) {
		if second.Load() {
			w.Write([]byte(`[{"index":"camC","name":"Garage"}]`))
			return
		}
		w.Write([]byte(`[{"index":"camA","name":"Entrance"},{"index":"camB","name":"Yard"}]`))
	})

	require.NoError(t, dir.Refresh(context.Background()))
	require.Equal(t, 2, dir.Len())

	second.Store(true)
	require.NoError(t, dir.Refresh(context.Background()))

	// Old entries are gone, indexes reassigned from zero
	assert.Equal(t, 1, dir.Len())
	cam, ok := dir.Get(0)
	require.True(t, ok)
	assert.Equal(t, "camC", cam.RemoteID)

	_, ok = dir.Get(1)
	assert.False(t, ok)
}

func TestDirectory_FindByLabel(t *testing.T) {
	dir, _ := newTestDirectory(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"index":"camA","name":"Entrance"}]`))
	})
	require.NoError(t, dir.Refresh(context.Background()))

	cam, ok := dir.FindByLabel("Entrance")
	require.True(t, ok)
	assert.Equal(t, "camA", cam.RemoteID)

	_, ok = dir.FindByLabel("No such camera")
	assert.False(t, ok)
}

func TestDirectory_EmptyBeforeFirstRefresh(t *testing.T) {
	dir := NewDirectory(NewClient("http://127.0.0.1:1/cameras", "http://127.0.0.1:1/image", time.Second))

	assert.Equal(t, 0, dir.Len())
	assert.Empty(t, dir.All())

	// Refresh against an unreachable service fails but leaves the
	// empty snapshot in place
	assert.Error(t, dir.Refresh(context.Background()))
	assert.Equal(t, 0, dir.Len())
}
