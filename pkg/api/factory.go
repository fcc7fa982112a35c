// Package api provides factory implementations for dependency injection
package api

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ssargent/odsdb/pkg/codec"
	"github.com/ssargent/odsdb/pkg/storage"
)

// DefaultCodecFactory is the default implementation of CodecFactory
type DefaultCodecFactory struct{}

// NewCodecFactory creates a new codec factory
func NewCodecFactory() CodecFactory {
	return &DefaultCodecFactory{}
}

// CreateCodec creates a codec with the given decoder settings
func (f *DefaultCodecFactory) CreateCodec(config codec.CodecConfig) IOutlineCodec {
	return codec.NewOutlineCodecWithConfig(config)
}

// DefaultStorageFactory is the default implementation of StorageFactory
type DefaultStorageFactory struct{}

// NewStorageFactory creates a new storage factory
func NewStorageFactory() StorageFactory {
	return &DefaultStorageFactory{}
}

// CreateStorage opens the pebble-backed outline store in dataDir
func (f *DefaultStorageFactory) CreateStorage(dataDir string, c IOutlineCodec) (IOutlineStore, error) {
	s, err := storage.NewDefaultStorage(dataDir, c)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// DefaultServerFactory is the default implementation of ServerFactory
type DefaultServerFactory struct{}

// NewServerFactory creates a new server factory
func NewServerFactory() ServerFactory {
	return &DefaultServerFactory{}
}

// CreateServerStarter creates a server starter
func (f *DefaultServerFactory) CreateServerStarter() ServerStarter {
	return &DefaultServerStarter{}
}

// DefaultServerStarter is the default implementation of ServerStarter
type DefaultServerStarter struct{}

// StartServer starts the API server with the given configuration
func (s *DefaultServerStarter) StartServer(store IOutlineStore, c IOutlineCodec, config ServerConfig) error {
	return StartServer(store, c, config, NewMetrics(prometheus.DefaultRegisterer))
}
