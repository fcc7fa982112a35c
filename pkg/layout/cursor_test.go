package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_SequentialReads(t *testing.T) {
	c := NewCursor([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0xAA, 0xBB})

	peek, err := c.PeekUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0201), peek)
	assert.Equal(t, 0, c.Pos(), "peek does not advance")

	v16, err := c.Uint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0201), v16)

	v32, err := c.Uint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x06050403), v32)

	require.NoError(t, c.Skip(1))
	b, err := c.Next(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA, 0xBB}, b)
	assert.Equal(t, 0, c.Remaining())
	assert.Equal(t, 9, c.Len())
}

func TestCursor_ShortBuffer(t *testing.T) {
	c := NewCursor([]byte{0x01})

	_, err := c.PeekUint16()
	assert.ErrorIs(t, err, ErrShortBuffer)
	_, err = c.Uint32()
	assert.ErrorIs(t, err, ErrShortBuffer)
	_, err = c.Next(2)
	assert.ErrorIs(t, err, ErrShortBuffer)
	assert.ErrorIs(t, c.Skip(2), ErrShortBuffer)
	assert.ErrorIs(t, c.Skip(-1), ErrShortBuffer)
	assert.Equal(t, 0, c.Pos(), "failed reads do not advance")
}

func TestCursor_NextDoesNotExposeTail(t *testing.T) {
	c := NewCursor([]byte{1, 2, 3, 4})
	b, err := c.Next(2)
	require.NoError(t, err)
	assert.Equal(t, 2, cap(b))
}

func TestCursor_View(t *testing.T) {
	buf := make([]byte, pointLayout.Size()+1)
	buf[0] = 0xFE
	buf[1] = 0xFF

	c := NewCursor(buf)
	v, err := c.View(pointLayout)
	require.NoError(t, err)
	assert.Equal(t, pointLayout.Size(), c.Pos())

	x, err := v.Int("X")
	require.NoError(t, err)
	assert.Equal(t, int64(-2), x)

	_, err = c.View(pointLayout)
	assert.ErrorIs(t, err, ErrShortBuffer)
}

func TestWriter_MirrorsCursor(t *testing.T) {
	w := NewWriter(0)
	w.Uint16(0xBEEF)
	w.Uint32(0xCAFEBABE)
	w.Write([]byte("hi"))
	w.Pad(2)
	err := w.Struct(pointLayout, func(v View) error {
		if err := v.SetInt("X", -1); err != nil {
			return err
		}
		return v.SetInt("Y", 300)
	})
	require.NoError(t, err)
	assert.Equal(t, 2+4+2+2+pointLayout.Size(), w.Len())

	c := NewCursor(w.Bytes())
	a, _ := c.Uint16()
	b, _ := c.Uint32()
	s, _ := c.Next(2)
	require.NoError(t, c.Skip(2))
	v, err := c.View(pointLayout)
	require.NoError(t, err)

	assert.Equal(t, uint16(0xBEEF), a)
	assert.Equal(t, uint32(0xCAFEBABE), b)
	assert.Equal(t, "hi", string(s))
	x, _ := v.Int("X")
	y, _ := v.Int("Y")
	assert.Equal(t, int64(-1), x)
	assert.Equal(t, int64(300), y)
}
