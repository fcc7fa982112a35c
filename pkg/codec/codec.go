package codec

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ssargent/odsdb/pkg/layout"
	"github.com/ssargent/odsdb/pkg/lmbcs"
	"github.com/ssargent/odsdb/pkg/logging"
	"github.com/ssargent/odsdb/pkg/richtext"
)

var (
	// ErrShortBuffer is returned when a header or sub-field runs past the end
	// of the buffer.
	ErrShortBuffer = layout.ErrShortBuffer
	// ErrSizeMismatch is returned when an entry's sub-field sizes add up to
	// more than its declared variable section.
	ErrSizeMismatch = errors.New("codec: sub-field sizes exceed variable section")
	// ErrEntryCount is returned when the item-group counters do not add up to
	// the declared number of entries.
	ErrEntryCount = errors.New("codec: entry count mismatch")
	// ErrTooLarge is returned when an input exceeds the configured size limit.
	ErrTooLarge = errors.New("codec: input too large")
)

// CodecConfig holds decoder settings.
type CodecConfig struct {
	// MaxSize rejects inputs larger than this many bytes. Zero means no limit.
	MaxSize int
	// VersionGate treats the toolbar and popup sub-fields as unparsed bytes
	// when the format minor version predates them.
	VersionGate bool
	// LenientEntryCount accepts item-group counters that disagree with the
	// declared entry count. The counters always drive the decode loop.
	LenientEntryCount bool
	// RichText decodes composite on-click and image payloads. Nil means
	// richtext.NewDecoder().
	RichText richtext.Decoder
}

// DefaultCodecConfig returns the default decoder settings.
func DefaultCodecConfig() CodecConfig {
	return CodecConfig{}
}

// OutlineCodec decodes and encodes outline/sitemap buffers. It holds no
// mutable state and is safe for concurrent use.
type OutlineCodec struct {
	config CodecConfig
}

// NewOutlineCodec creates a codec with the default settings.
func NewOutlineCodec() *OutlineCodec {
	return NewOutlineCodecWithConfig(DefaultCodecConfig())
}

// NewOutlineCodecWithConfig creates a codec with the given settings.
func NewOutlineCodecWithConfig(config CodecConfig) *OutlineCodec {
	if config.RichText == nil {
		config.RichText = richtext.NewDecoder()
	}
	return &OutlineCodec{config: config}
}

// Config returns the codec settings.
func (c *OutlineCodec) Config() CodecConfig {
	return c.config
}

// Decode parses a complete outline buffer. Decoded strings are copies;
// Payload.Data and Record.Data alias buf, so buf must not be modified while
// the result is in use.
func (c *OutlineCodec) Decode(buf []byte) (*Outline, error) {
	if c.config.MaxSize > 0 && len(buf) > c.config.MaxSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, len(buf), c.config.MaxSize)
	}

	cur := layout.NewCursor(buf)
	hdr, err := cur.View(FormatLayout)
	if err != nil {
		return nil, fmt.Errorf("codec: format header: %w", err)
	}

	flags, err := hdr.Flags("Flags")
	if err != nil {
		return nil, err
	}
	out := &Outline{
		Flags:        flags,
		RawFlags:     uintOf(hdr, "Flags"),
		MajorVersion: uint16(uintOf(hdr, "MajorVersion")),
		MinorVersion: uint16(uintOf(hdr, "MinorVersion")),
		Reserved:     reservedOf(hdr),
	}
	items := int(uintOf(hdr, "Items"))
	numEntries := int(uintOf(hdr, "NumEntries"))

	out.ItemEntries = make([]uint16, items)
	total := 0
	for i := range out.ItemEntries {
		n, err := cur.Uint16()
		if err != nil {
			return nil, fmt.Errorf("codec: item counter %d: %w", i, err)
		}
		out.ItemEntries[i] = n
		total += int(n)
	}
	if total != numEntries && !c.config.LenientEntryCount {
		return nil, fmt.Errorf("%w: item counters sum to %d, header declares %d", ErrEntryCount, total, numEntries)
	}

	out.Entries = make([]Entry, 0, total)
	for g, n := range out.ItemEntries {
		for j := 0; j < int(n); j++ {
			e, err := c.decodeEntry(cur, g, out.MinorVersion)
			if err != nil {
				return nil, fmt.Errorf("codec: entry %d (group %d): %w", len(out.Entries), g, err)
			}
			out.Entries = append(out.Entries, e)
		}
	}

	out.Trailing = cur.Remaining()
	logging.Debug("codec: decoded %d entries in %d groups, %d trailing bytes", len(out.Entries), items, out.Trailing)
	return out, nil
}

func (c *OutlineCodec) decodeEntry(cur *layout.Cursor, group int, minor uint16) (Entry, error) {
	start := cur.Pos()
	v, err := cur.View(EntryLayout)
	if err != nil {
		return Entry{}, fmt.Errorf("entry header: %w", err)
	}

	flags, err := v.Flags("Flags")
	if err != nil {
		return Entry{}, err
	}
	e := Entry{
		Group:              group,
		Flags:              flags,
		RawFlags:           uintOf(v, "Flags"),
		ResourceDesignType: uint16(uintOf(v, "ResourceDesignType")),
		ResourceType:       ResourceType(uintOf(v, "ResourceType")),
		ResourceClass:      ResourceClass(uintOf(v, "ResourceClass")),
		Level:              uint16(uintOf(v, "Level")),
		ID:                 uintOf(v, "ID"),
		Spare:              uint16(uintOf(v, "Spare")),
		Reserved:           reservedOf(v),
	}

	var sizes [numFields]int
	declared := 0
	for f := range sizes {
		sizes[f] = int(uintOf(v, sizeMembers[f]))
		declared += sizes[f]
	}
	varSize := int(uintOf(v, "VarDataSize"))
	if declared > cur.Remaining() {
		return Entry{}, fmt.Errorf("%w: %d bytes of sub-fields at offset %d, have %d",
			ErrShortBuffer, declared, cur.Pos(), cur.Remaining())
	}
	if varSize > cur.Remaining() {
		return Entry{}, fmt.Errorf("%w: variable section of %d bytes at offset %d, have %d",
			ErrShortBuffer, varSize, cur.Pos(), cur.Remaining())
	}
	if declared > varSize {
		return Entry{}, fmt.Errorf("%w: %d bytes of sub-fields, variable section is %d", ErrSizeMismatch, declared, varSize)
	}

	gated := c.config.VersionGate && minor < toolbarMinorVersion
	consumed := 0
	for _, f := range Fields() {
		size := sizes[f]
		if size == 0 {
			continue
		}
		data, err := cur.Next(size)
		if err != nil {
			return Entry{}, fmt.Errorf("%s: %w", f, err)
		}
		consumed += size

		if gated && f.versioned() {
			e.Unparsed += size
			continue
		}
		if err := c.decodeField(&e, f, data); err != nil {
			return Entry{}, err
		}
	}

	leftover := varSize - consumed
	if err := cur.Skip(leftover); err != nil {
		return Entry{}, fmt.Errorf("unparsed bytes: %w", err)
	}
	e.Unparsed += leftover

	e.Span = Span{Offset: start, Length: cur.Pos() - start}
	return e, nil
}

// decodeField interprets one sub-field. data holds the declared size,
// datatype tag included.
func (c *OutlineCodec) decodeField(e *Entry, f Field, data []byte) error {
	var tag uint16
	if len(data) >= datatypeSize {
		tag = binary.LittleEndian.Uint16(data)
	}

	payload := data
	if tag == TypeFormula {
		payload = data[datatypeSize:]
		e.Formulas = e.Formulas.With(f)
	}

	if s := e.text(f); s != nil {
		*s = lmbcs.Decode(payload)
		return nil
	}

	p := &Payload{Datatype: tag}
	switch tag {
	case TypeComposite:
		p.Data = data[datatypeSize:]
		records, err := c.config.RichText.Decode(p.Data, richtext.AreaRichText)
		if err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
		p.Records = records
	default:
		p.Data = payload
		p.Text = lmbcs.Decode(payload)
	}
	*e.payload(f) = p
	return nil
}
