// Package storage keeps raw outline buffers in a pebble database keyed by
// KSUID. Buffers are validated by decoding them before they are written.
package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/odsdb/pkg/codec"
)

var (
	// ErrNotFound is returned when no outline is stored under an id.
	ErrNotFound = errors.New("storage: outline not found")
	// ErrInvalid is returned when a buffer does not decode as an outline.
	ErrInvalid = errors.New("storage: invalid outline")
)

var keyPrefix = []byte("outline/")

// Decoder validates buffers before they are stored.
type Decoder interface {
	Decode(buf []byte) (*codec.Outline, error)
}

// Info describes a stored outline.
type Info struct {
	ID      ksuid.KSUID `json:"id" yaml:"id"`
	Size    int         `json:"size" yaml:"size"`
	Created time.Time   `json:"created" yaml:"created"`
}

// DefaultStorage is a pebble-backed outline store.
type DefaultStorage struct {
	db      *pebble.DB
	decoder Decoder
}

// NewDefaultStorage opens (or creates) a store at path. A nil decoder means
// codec.NewOutlineCodec().
func NewDefaultStorage(path string, decoder Decoder) (*DefaultStorage, error) {
	if decoder == nil {
		decoder = codec.NewOutlineCodec()
	}
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	return &DefaultStorage{db: db, decoder: decoder}, nil
}

func key(id ksuid.KSUID) []byte {
	return append(append([]byte{}, keyPrefix...), id.Bytes()...)
}

func (s *DefaultStorage) validate(data []byte) error {
	if _, err := s.decoder.Decode(data); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Create stores a new outline buffer and returns its id.
func (s *DefaultStorage) Create(data []byte) (ksuid.KSUID, error) {
	if err := s.validate(data); err != nil {
		return ksuid.Nil, err
	}

	id := ksuid.New()
	if err := s.db.Set(key(id), data, pebble.NoSync); err != nil {
		return ksuid.Nil, fmt.Errorf("storage: create %s: %w", id, err)
	}
	return id, nil
}

// Read returns a copy of the buffer stored under id.
func (s *DefaultStorage) Read(id ksuid.KSUID) ([]byte, error) {
	data, closer, err := s.db.Get(key(id))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", id, err)
	}
	defer closer.Close()

	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *DefaultStorage) exists(id ksuid.KSUID) error {
	_, closer, err := s.db.Get(key(id))
	if errors.Is(err, pebble.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("storage: read %s: %w", id, err)
	}
	return closer.Close()
}

// Update replaces the buffer stored under an existing id.
func (s *DefaultStorage) Update(id ksuid.KSUID, data []byte) error {
	if err := s.exists(id); err != nil {
		return err
	}
	if err := s.validate(data); err != nil {
		return err
	}
	if err := s.db.Set(key(id), data, pebble.NoSync); err != nil {
		return fmt.Errorf("storage: update %s: %w", id, err)
	}
	return nil
}

// Delete removes the buffer stored under id.
func (s *DefaultStorage) Delete(id ksuid.KSUID) error {
	if err := s.exists(id); err != nil {
		return err
	}
	if err := s.db.Delete(key(id), pebble.NoSync); err != nil {
		return fmt.Errorf("storage: delete %s: %w", id, err)
	}
	return nil
}

// List returns every stored outline in id order, which is creation order.
func (s *DefaultStorage) List() ([]Info, error) {
	upper := append(append([]byte{}, keyPrefix[:len(keyPrefix)-1]...), keyPrefix[len(keyPrefix)-1]+1)
	iter, err := s.db.NewIter(&pebble.IterOptions{LowerBound: keyPrefix, UpperBound: upper})
	if err != nil {
		return nil, fmt.Errorf("storage: list: %w", err)
	}
	defer iter.Close()

	infos := []Info{}
	for iter.First(); iter.Valid(); iter.Next() {
		id, err := ksuid.FromBytes(iter.Key()[len(keyPrefix):])
		if err != nil {
			return nil, fmt.Errorf("storage: list: bad key %x: %w", iter.Key(), err)
		}
		infos = append(infos, Info{ID: id, Size: len(iter.Value()), Created: id.Time()})
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("storage: list: %w", err)
	}
	return infos, nil
}

// Close flushes and closes the database.
func (s *DefaultStorage) Close() error {
	return s.db.Close()
}
