package storage

import (
	"testing"

	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/odsdb/pkg/codec"
)

func newTestStorage(t *testing.T) *DefaultStorage {
	t.Helper()
	s, err := NewDefaultStorage(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func outlineBytes(t *testing.T, titles ...string) []byte {
	t.Helper()
	o := &codec.Outline{MinorVersion: 1}
	for _, title := range titles {
		o.Entries = append(o.Entries, codec.Entry{Title: title})
	}
	buf, err := codec.NewOutlineCodec().Encode(o)
	require.NoError(t, err)
	return buf
}

func TestStorage_CreateRead(t *testing.T) {
	s := newTestStorage(t)
	buf := outlineBytes(t, "Home", "About")

	id, err := s.Create(buf)
	require.NoError(t, err)
	assert.NotEqual(t, ksuid.Nil, id)

	got, err := s.Read(id)
	require.NoError(t, err)
	assert.Equal(t, buf, got)
}

func TestStorage_CreateRejectsInvalid(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.Create([]byte{0x01, 0x02})
	assert.ErrorIs(t, err, ErrInvalid)
	assert.ErrorIs(t, err, codec.ErrShortBuffer)

	infos, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestStorage_Update(t *testing.T) {
	s := newTestStorage(t)

	id, err := s.Create(outlineBytes(t, "Home"))
	require.NoError(t, err)

	updated := outlineBytes(t, "Home", "Contact")
	require.NoError(t, s.Update(id, updated))

	got, err := s.Read(id)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	assert.ErrorIs(t, s.Update(id, []byte{0xFF}), ErrInvalid)
	assert.ErrorIs(t, s.Update(ksuid.New(), updated), ErrNotFound)
}

func TestStorage_Delete(t *testing.T) {
	s := newTestStorage(t)

	id, err := s.Create(outlineBytes(t, "Home"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(id))

	_, err = s.Read(id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(id), ErrNotFound)
}

func TestStorage_List(t *testing.T) {
	s := newTestStorage(t)

	var ids []ksuid.KSUID
	for _, title := range []string{"A", "B", "C"} {
		id, err := s.Create(outlineBytes(t, title))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	infos, err := s.List()
	require.NoError(t, err)
	require.Len(t, infos, 3)

	got := make(map[ksuid.KSUID]Info)
	for _, info := range infos {
		got[info.ID] = info
	}
	for _, id := range ids {
		info, ok := got[id]
		require.True(t, ok, "missing %s", id)
		assert.Equal(t, len(outlineBytes(t, "A")), info.Size)
		assert.Equal(t, id.Time(), info.Created)
	}
}

func TestStorage_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	buf := outlineBytes(t, "Persisted")

	s, err := NewDefaultStorage(dir, nil)
	require.NoError(t, err)
	id, err := s.Create(buf)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = NewDefaultStorage(dir, nil)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Read(id)
	require.NoError(t, err)
	assert.Equal(t, buf, got)
}
