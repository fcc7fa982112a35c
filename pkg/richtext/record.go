// Package richtext splits composite (CD) record streams into records.
//
// Every record starts with a 16-bit signature. The low byte is the record
// type and the high byte selects the header class:
//
//	0xFF     WSIG: signature + 16-bit length
//	0x00     LSIG: signature + 32-bit length
//	other    BSIG: the high byte is the length itself
//
// Lengths include the header. A record of odd length is followed by one pad
// byte so the next record starts on an even offset.
package richtext

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncated is returned when a record runs past the end of the data.
	ErrTruncated = errors.New("richtext: truncated record")
	// ErrBadLength is returned when a length is smaller than its header or
	// cannot be represented by the record's header class.
	ErrBadLength = errors.New("richtext: bad record length")
)

// SigKind is the header class of a record.
type SigKind int

const (
	SigByte SigKind = iota
	SigWord
	SigLong
)

// HeaderSize returns the size of the signature and length fields.
func (k SigKind) HeaderSize() int {
	switch k {
	case SigWord:
		return 4
	case SigLong:
		return 6
	default:
		return 2
	}
}

func (k SigKind) String() string {
	switch k {
	case SigByte:
		return "bsig"
	case SigWord:
		return "wsig"
	case SigLong:
		return "lsig"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k SigKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *SigKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "bsig":
		*k = SigByte
	case "wsig":
		*k = SigWord
	case "lsig":
		*k = SigLong
	default:
		return fmt.Errorf("richtext: unknown signature kind %q", text)
	}
	return nil
}

const (
	wordMarker = 0xFF
	longMarker = 0x00
)

// Signature is the leading word of a record.
type Signature uint16

// Kind returns the header class encoded in the high byte.
func (s Signature) Kind() SigKind {
	switch byte(s >> 8) {
	case wordMarker:
		return SigWord
	case longMarker:
		return SigLong
	default:
		return SigByte
	}
}

// Type returns the record type in the low byte.
func (s Signature) Type() byte {
	return byte(s)
}

// Area selects which record-type table names a record. The same type byte
// means different records in different areas.
type Area int

const (
	AreaRichText Area = iota
	AreaFrameset
	AreaImage
)

func (a Area) String() string {
	switch a {
	case AreaRichText:
		return "richtext"
	case AreaFrameset:
		return "frameset"
	case AreaImage:
		return "image"
	default:
		return "unknown"
	}
}

// Record is one decoded CD record.
type Record struct {
	Type   byte    `json:"type" yaml:"type"`
	Kind   SigKind `json:"kind" yaml:"kind"`
	Name   string  `json:"name" yaml:"name"`
	Length uint32  `json:"length" yaml:"length"`
	Data   []byte  `json:"data,omitempty" yaml:"data,omitempty"`
}

// NewRecord builds a record of the given class and type around data.
func NewRecord(kind SigKind, typ byte, data []byte) Record {
	return Record{
		Type:   typ,
		Kind:   kind,
		Name:   Name(AreaRichText, typ),
		Length: uint32(kind.HeaderSize() + len(data)),
		Data:   data,
	}
}

// Signature returns the signature word for the record.
func (r Record) Signature() Signature {
	switch r.Kind {
	case SigWord:
		return Signature(uint16(wordMarker)<<8 | uint16(r.Type))
	case SigLong:
		return Signature(uint16(r.Type))
	default:
		return Signature(uint16(r.Length)<<8 | uint16(r.Type))
	}
}

var names = map[Area]map[byte]string{
	AreaRichText: {
		124: "IMAGEHEADER",
		125: "IMAGESEGMENT",
		129: "PARAGRAPH",
		130: "PABDEFINITION",
		131: "PABREFERENCE",
		133: "TEXT",
		153: "GRAPHIC",
		169: "HOTSPOTBEGIN",
		170: "HOTSPOTEND",
	},
	AreaFrameset: {
		250: "FRAMESETHEADER",
		251: "FRAMESET",
		252: "FRAME",
	},
	AreaImage: {
		124: "IMAGEHEADER",
		125: "IMAGESEGMENT",
	},
}

// Name returns the record name for a type byte in an area.
func Name(area Area, typ byte) string {
	if n, ok := names[area][typ]; ok {
		return n
	}
	return fmt.Sprintf("UNKNOWN_%d", typ)
}
