package richtext

import (
	"fmt"

	"github.com/ssargent/odsdb/pkg/layout"
)

// Decoder splits a composite payload into records. Implementations must not
// retain data beyond the call unless they copy it.
type Decoder interface {
	Decode(data []byte, area Area) ([]Record, error)
}

// DefaultDecoder decodes the BSIG/WSIG/LSIG record framing.
type DefaultDecoder struct{}

// NewDecoder returns the default record decoder.
func NewDecoder() *DefaultDecoder {
	return &DefaultDecoder{}
}

// Decode reads records until data is exhausted. Record payloads alias data.
func (d *DefaultDecoder) Decode(data []byte, area Area) ([]Record, error) {
	c := layout.NewCursor(data)
	records := []Record{}

	for c.Remaining() > 0 {
		start := c.Pos()
		r, err := readRecord(c, area)
		if err != nil {
			return nil, fmt.Errorf("richtext: record %d at offset %d: %w", len(records), start, err)
		}
		records = append(records, r)
	}

	return records, nil
}

func readRecord(c *layout.Cursor, area Area) (Record, error) {
	w, err := c.Uint16()
	if err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrTruncated, err)
	}
	sig := Signature(w)
	kind := sig.Kind()

	var length uint32
	switch kind {
	case SigByte:
		length = uint32(w >> 8)
	case SigWord:
		l, err := c.Uint16()
		if err != nil {
			return Record{}, fmt.Errorf("%w: %w", ErrTruncated, err)
		}
		length = uint32(l)
	case SigLong:
		if length, err = c.Uint32(); err != nil {
			return Record{}, fmt.Errorf("%w: %w", ErrTruncated, err)
		}
	}

	hdr := kind.HeaderSize()
	if length < uint32(hdr) {
		return Record{}, fmt.Errorf("%w: %s length %d is smaller than its %d-byte header", ErrBadLength, kind, length, hdr)
	}
	if uint64(length)-uint64(hdr) > uint64(c.Remaining()) {
		return Record{}, fmt.Errorf("%w: %s length %d, %d bytes left", ErrTruncated, kind, length, c.Remaining()+hdr)
	}
	payload, err := c.Next(int(length) - hdr)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrTruncated, err)
	}
	if length%2 == 1 && c.Remaining() > 0 {
		if err := c.Skip(1); err != nil {
			return Record{}, err
		}
	}

	return Record{
		Type:   sig.Type(),
		Kind:   kind,
		Name:   Name(area, sig.Type()),
		Length: length,
		Data:   payload,
	}, nil
}

// Encode writes records back into a composite stream. Lengths are computed
// from the payloads; the Length field of each record is ignored.
func Encode(records []Record) ([]byte, error) {
	w := layout.NewWriter(0)

	for i, r := range records {
		hdr := r.Kind.HeaderSize()
		length := uint64(hdr) + uint64(len(r.Data))

		switch r.Kind {
		case SigByte:
			if length == longMarker || length >= wordMarker {
				return nil, fmt.Errorf("%w: record %d: bsig length %d does not fit the signature byte", ErrBadLength, i, length)
			}
			w.Uint16(uint16(length)<<8 | uint16(r.Type))
		case SigWord:
			if length > 0xFFFF {
				return nil, fmt.Errorf("%w: record %d: wsig length %d exceeds 16 bits", ErrBadLength, i, length)
			}
			w.Uint16(uint16(wordMarker)<<8 | uint16(r.Type))
			w.Uint16(uint16(length))
		case SigLong:
			if length > 0xFFFFFFFF {
				return nil, fmt.Errorf("%w: record %d: lsig length %d exceeds 32 bits", ErrBadLength, i, length)
			}
			w.Uint16(uint16(r.Type))
			w.Uint32(uint32(length))
		default:
			return nil, fmt.Errorf("richtext: record %d: unknown kind %d", i, r.Kind)
		}

		w.Write(r.Data)
		if length%2 == 1 && i < len(records)-1 {
			w.Pad(1)
		}
	}

	return w.Bytes(), nil
}
