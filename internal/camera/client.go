package camera

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"camerabot/internal/models"
)

// Client talks to the remote camera service over HTTP.
type Client struct {
	listURL    string
	imageURL   string
	httpClient *http.Client
}

// NewClient creates a camera service client. listURL is the full
// /cameras endpoint, imageURL the /image endpoint prefix (the camera
// identifier is appended as a path segment). The timeout applies to
// every request so a hanging camera service cannot hold a handler
// forever.
func NewClient(listURL, imageURL string, timeout time.Duration) *Client {
	return &Client{
		listURL:  listURL,
		imageURL: imageURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ListCameras fetches the camera directory from the remote service.
func (c *Client) ListCameras(ctx context.Context) ([]models.RemoteCamera, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.listURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build camera list request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch camera list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("camera service returned status %d for camera list", resp.StatusCode)
	}

	var cameras []models.RemoteCamera
	if err := json.NewDecoder(resp.Body).Decode(&cameras); err != nil {
		return nil, fmt.Errorf("failed to decode camera list: %w", err)
	}
	return cameras, nil
}

// FetchImage retrieves a single snapshot for the given remote camera
// identifier and returns the raw image bytes.
func (c *Client) FetchImage(ctx context.Context, remoteID string) ([]byte, error) {
	// The remote id comes from the service's own JSON and may contain
	// path metacharacters; escape it so it stays a single path segment.
	reqURL := fmt.Sprintf("%s/%s", c.imageURL, url.PathEscape(remoteID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build image request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image for camera %s: %w", remoteID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("camera service returned status %d for camera %s", resp.StatusCode, remoteID)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image for camera %s: %w", remoteID, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("camera service returned an empty image for camera %s", remoteID)
	}
	return data, nil
}
