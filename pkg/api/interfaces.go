// Package api provides interfaces for dependency injection
package api

import "github.com/ssargent/odsdb/pkg/codec"

// CodecFactory creates outline codecs
type CodecFactory interface {
	// CreateCodec creates a codec with the given decoder settings
	CreateCodec(config codec.CodecConfig) IOutlineCodec
}

// StorageFactory creates outline stores
type StorageFactory interface {
	// CreateStorage opens the outline store in dataDir, validating writes
	// with the given codec
	CreateStorage(dataDir string, c IOutlineCodec) (IOutlineStore, error)
}

// ServerStarter defines the interface for starting the API server
type ServerStarter interface {
	// StartServer starts the API server with the given configuration
	StartServer(store IOutlineStore, c IOutlineCodec, config ServerConfig) error
}

// ServerFactory creates server instances
type ServerFactory interface {
	// CreateServerStarter creates a server starter
	CreateServerStarter() ServerStarter
}
