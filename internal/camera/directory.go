package camera

import (
	"context"
	"fmt"
	"sync"

	"camerabot/internal/models"
)

// Directory is the in-memory snapshot of cameras known to the remote
// service, indexed by a local sequential index assigned at refresh
// time. It is never authoritative and never persisted; a failed
// refresh keeps the previous snapshot.
//
// Local indexes are not stable across refreshes: if the remote
// directory changes order or membership, indexes are reassigned. This
// is an accepted limitation; image fetches resolve the remote
// identifier from the cached record instead of sending the index.
type Directory struct {
	mu      sync.RWMutex
	cameras map[int]models.Camera
	client  *Client
}

// NewDirectory creates an empty directory backed by the given client.
func NewDirectory(client *Client) *Directory {
	return &Directory{
		cameras: make(map[int]models.Camera),
		client:  client,
	}
}

// Refresh fetches the camera list and atomically replaces the cached
// mapping. On any failure the existing snapshot is left untouched and
// the error is returned for the caller to log; it must not be treated
// as fatal.
func (d *Directory) Refresh(ctx context.Context) error {
	remote, err := d.client.ListCameras(ctx)
	if err != nil {
		return err
	}

	cameras := make(map[int]models.Camera, len(remote))
	for i, rc := range remote {
		name := rc.Name
		if name == "" {
			name = fmt.Sprintf("Camera %s", rc.Index)
		}
		cameras[i] = models.Camera{
			LocalIndex:  i,
			RemoteID:    string(rc.Index),
			DisplayName: name,
		}
	}

	d.mu.Lock()
	d.cameras = cameras
	d.mu.Unlock()
	return nil
}

// Get returns the camera at the given local index.
func (d *Directory) Get(localIndex int) (models.Camera, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	cam, ok := d.cameras[localIndex]
	return cam, ok
}

// All returns a copy of the current snapshot.
func (d *Directory) All() map[int]models.Camera {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make(map[int]models.Camera, len(d.cameras))
	for i, cam := range d.cameras {
		out[i] = cam
	}
	return out
}

// Labels returns the display names of all cameras in local index order.
func (d *Directory) Labels() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	labels := make([]string, 0, len(d.cameras))
	for i := 0; i < len(d.cameras); i++ {
		labels = append(labels, d.cameras[i].DisplayName)
	}
	return labels
}

// FindByLabel returns the camera whose display name matches text.
func (d *Directory) FindByLabel(text string) (models.Camera, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, cam := range d.cameras {
		if cam.DisplayName == text {
			return cam, true
		}
	}
	return models.Camera{}, false
}

// Len returns the number of cameras in the current snapshot.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.cameras)
}
