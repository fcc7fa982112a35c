package di

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/odsdb/pkg/api"
	"github.com/ssargent/odsdb/pkg/codec"
)

type stubServerFactory struct{ starter api.ServerStarter }

func (f *stubServerFactory) CreateServerStarter() api.ServerStarter { return f.starter }

func TestNewContainer_Defaults(t *testing.T) {
	c := NewContainer()

	require.NotNil(t, c.GetCodecFactory())
	require.NotNil(t, c.GetStorageFactory())
	require.NotNil(t, c.GetServerFactory())

	oc := c.GetCodecFactory().CreateCodec(codec.DefaultCodecConfig())
	buf, err := oc.Encode(&codec.Outline{Entries: []codec.Entry{{Title: "Home"}}})
	require.NoError(t, err)

	store, err := c.GetStorageFactory().CreateStorage(t.TempDir(), oc)
	require.NoError(t, err)
	defer store.Close()

	id, err := store.Create(buf)
	require.NoError(t, err)
	got, err := store.Read(id)
	require.NoError(t, err)
	assert.Equal(t, buf, got)
}

func TestContainer_Overrides(t *testing.T) {
	c := NewContainer()
	stub := &stubServerFactory{}

	c.SetServerFactory(stub)
	assert.Same(t, stub, c.GetServerFactory())

	codecs := api.NewCodecFactory()
	c.SetCodecFactory(codecs)
	assert.Equal(t, codecs, c.GetCodecFactory())

	stores := api.NewStorageFactory()
	c.SetStorageFactory(stores)
	assert.Equal(t, stores, c.GetStorageFactory())
}
