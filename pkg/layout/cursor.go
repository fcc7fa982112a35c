package layout

import (
	"encoding/binary"
	"fmt"
)

// Cursor reads a buffer front to back.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor returns a cursor positioned at the start of buf.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Pos returns the current offset.
func (c *Cursor) Pos() int {
	return c.pos
}

// Len returns the length of the underlying buffer.
func (c *Cursor) Len() int {
	return len(c.buf)
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

func (c *Cursor) need(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative length %d at offset %d", ErrShortBuffer, n, c.pos)
	}
	if n > c.Remaining() {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrShortBuffer, n, c.pos, c.Remaining())
	}
	return nil
}

// PeekUint16 reads a 16-bit value without advancing.
func (c *Cursor) PeekUint16() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(c.buf[c.pos:]), nil
}

// Uint16 reads a 16-bit value.
func (c *Cursor) Uint16() (uint16, error) {
	v, err := c.PeekUint16()
	if err != nil {
		return 0, err
	}
	c.pos += 2
	return v, nil
}

// Uint32 reads a 32-bit value.
func (c *Cursor) Uint32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(c.buf[c.pos:])
	c.pos += 4
	return v, nil
}

// Next returns the next n bytes. The slice aliases the buffer.
func (c *Cursor) Next(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	end := c.pos + n
	b := c.buf[c.pos:end:end]
	c.pos = end
	return b, nil
}

// Skip advances past n bytes.
func (c *Cursor) Skip(n int) error {
	if err := c.need(n); err != nil {
		return err
	}
	c.pos += n
	return nil
}

// View binds d at the current offset and advances past it.
func (c *Cursor) View(d *Descriptor) (View, error) {
	v, err := Bind(c.buf, c.pos, d)
	if err != nil {
		return View{}, err
	}
	c.pos += d.Size()
	return v, nil
}

// Writer appends binary data. It is the encoding mirror of Cursor.
type Writer struct {
	buf []byte
}

// NewWriter returns a writer with the given initial capacity.
func NewWriter(capacity int) *Writer {
	return &Writer{buf: make([]byte, 0, capacity)}
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Bytes returns the written data.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Uint16 appends a 16-bit value.
func (w *Writer) Uint16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

// Uint32 appends a 32-bit value.
func (w *Writer) Uint32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

// Write appends p.
func (w *Writer) Write(p []byte) {
	w.buf = append(w.buf, p...)
}

// Pad appends n zero bytes.
func (w *Writer) Pad(n int) {
	for i := 0; i < n; i++ {
		w.buf = append(w.buf, 0)
	}
}

// Struct appends a zeroed d-sized region and lets fill populate it. The view
// passed to fill is only valid for the duration of the call.
func (w *Writer) Struct(d *Descriptor, fill func(View) error) error {
	off := len(w.buf)
	w.Pad(d.Size())
	v, err := Bind(w.buf, off, d)
	if err != nil {
		return err
	}
	return fill(v)
}
