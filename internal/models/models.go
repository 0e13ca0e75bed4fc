package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Camera is one entry of the camera directory. LocalIndex is assigned
// sequentially when the directory is refreshed and is only meaningful
// within that snapshot; RemoteID is the identifier the camera service
// itself understands.
type Camera struct {
	LocalIndex  int
	RemoteID    string
	DisplayName string
}

// RemoteCamera is a single element of the camera service's /cameras
// response. The service is inconsistent about the index type, so it is
// decoded from either a JSON string or a JSON number.
type RemoteCamera struct {
	Index RemoteID `json:"index"`
	Name  string   `json:"name"`
}

// RemoteID is a camera identifier as reported by the remote service.
type RemoteID string

func (r *RemoteID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return fmt.Errorf("camera index is missing")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid camera index: %w", err)
		}
		*r = RemoteID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid camera index: %w", err)
	}
	*r = RemoteID(n.String())
	return nil
}
