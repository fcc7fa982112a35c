package api

import (
	"time"

	"github.com/segmentio/ksuid"

	"github.com/ssargent/odsdb/pkg/codec"
	"github.com/ssargent/odsdb/pkg/storage"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// OutlineResponse is a stored outline together with its decoded form
type OutlineResponse struct {
	ID      string         `json:"id"`
	Created time.Time      `json:"created"`
	Size    int            `json:"size"`
	Outline *codec.Outline `json:"outline"`
}

// CreateOutlineResponse is returned when an outline is stored
type CreateOutlineResponse struct {
	ID      string `json:"id"`
	Entries int    `json:"entries"`
}

// DiffResponse holds a unified diff between two stored outlines
type DiffResponse struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Equal bool   `json:"equal"`
	Patch string `json:"patch"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port        int
	Bind        string
	APIKey      string
	DataDir     string
	MaxBodySize int64 // Largest accepted request body in bytes, 0 for no limit
}

// IOutlineStore defines the storage operations used by the API
type IOutlineStore interface {
	Create(data []byte) (ksuid.KSUID, error)
	Read(id ksuid.KSUID) ([]byte, error)
	Update(id ksuid.KSUID, data []byte) error
	Delete(id ksuid.KSUID) error
	List() ([]storage.Info, error)
	Close() error
}

// IOutlineCodec defines the codec operations used by the API
type IOutlineCodec interface {
	Decode(buf []byte) (*codec.Outline, error)
	Encode(o *codec.Outline) ([]byte, error)
}
