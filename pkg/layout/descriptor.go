package layout

import (
	"errors"
	"fmt"
)

var (
	// ErrShortBuffer is returned when a buffer is too small for the data it
	// is declared to hold.
	ErrShortBuffer = errors.New("layout: short buffer")
	// ErrOverflow is returned when a value does not fit the member width.
	ErrOverflow = errors.New("layout: value out of range")
	// ErrUnknownMember is returned for a member name the descriptor lacks.
	ErrUnknownMember = errors.New("layout: unknown member")
	// ErrUnknownFlag is returned for a flag name the member does not define.
	ErrUnknownFlag = errors.New("layout: unknown flag")
	// ErrIndex is returned for an array index outside the member count.
	ErrIndex = errors.New("layout: index out of range")
	// ErrKind is returned when an accessor does not match the member kind.
	ErrKind = errors.New("layout: wrong member kind")
	// ErrInvalidDescriptor is returned by New for malformed member tables.
	ErrInvalidDescriptor = errors.New("layout: invalid descriptor")
)

// Kind classifies how a member's bytes are interpreted.
type Kind int

const (
	KindUint Kind = iota
	KindInt
	KindBits
	KindStruct
)

func (k Kind) String() string {
	switch k {
	case KindUint:
		return "uint"
	case KindInt:
		return "int"
	case KindBits:
		return "bits"
	case KindStruct:
		return "struct"
	default:
		return "unknown"
	}
}

// Flag names a single bit of a bitfield member.
type Flag struct {
	Name string
	Mask uint64
}

// Member describes one field of a Descriptor.
type Member struct {
	Name   string
	Kind   Kind
	Width  int // bytes per element
	Count  int // number of elements, 1 for scalars
	Flags  []Flag
	Struct *Descriptor

	// Offset is assigned by New.
	Offset int
}

// Size returns the number of bytes the member occupies.
func (m Member) Size() int {
	return m.Width * m.Count
}

func scalar(name string, kind Kind, width int) Member {
	return Member{Name: name, Kind: kind, Width: width, Count: 1}
}

// U8 declares an unsigned 8-bit member.
func U8(name string) Member { return scalar(name, KindUint, 1) }

// U16 declares an unsigned 16-bit member.
func U16(name string) Member { return scalar(name, KindUint, 2) }

// U32 declares an unsigned 32-bit member.
func U32(name string) Member { return scalar(name, KindUint, 4) }

// I8 declares a signed 8-bit member.
func I8(name string) Member { return scalar(name, KindInt, 1) }

// I16 declares a signed 16-bit member.
func I16(name string) Member { return scalar(name, KindInt, 2) }

// I32 declares a signed 32-bit member.
func I32(name string) Member { return scalar(name, KindInt, 4) }

func bits(name string, width int, flags []Flag) Member {
	m := scalar(name, KindBits, width)
	m.Flags = flags
	return m
}

// Bits8 declares an 8-bit bitfield with the given named flags.
func Bits8(name string, flags ...Flag) Member { return bits(name, 1, flags) }

// Bits16 declares a 16-bit bitfield with the given named flags.
func Bits16(name string, flags ...Flag) Member { return bits(name, 2, flags) }

// Bits32 declares a 32-bit bitfield with the given named flags.
func Bits32(name string, flags ...Flag) Member { return bits(name, 4, flags) }

// Array turns m into a fixed-length array of n elements.
func Array(m Member, n int) Member {
	m.Count = n
	return m
}

// Struct declares an embedded structure, repeated n times.
func Struct(name string, d *Descriptor, n int) Member {
	m := Member{Name: name, Kind: KindStruct, Count: n, Struct: d}
	if d != nil {
		m.Width = d.Size()
	}
	return m
}

// Descriptor is a named, fixed-size binary schema.
type Descriptor struct {
	name    string
	members []Member
	index   map[string]int
	size    int
}

// New builds a descriptor, assigning offsets in declaration order.
func New(name string, members ...Member) (*Descriptor, error) {
	d := &Descriptor{
		name:    name,
		members: make([]Member, 0, len(members)),
		index:   make(map[string]int, len(members)),
	}

	offset := 0
	for _, m := range members {
		if err := validateMember(m); err != nil {
			return nil, fmt.Errorf("%w: %s.%s: %v", ErrInvalidDescriptor, name, m.Name, err)
		}
		if _, dup := d.index[m.Name]; dup {
			return nil, fmt.Errorf("%w: %s: duplicate member %q", ErrInvalidDescriptor, name, m.Name)
		}
		m.Offset = offset
		offset += m.Size()
		d.index[m.Name] = len(d.members)
		d.members = append(d.members, m)
	}
	d.size = offset

	return d, nil
}

// MustNew is like New but panics on error. It is meant for package-level
// descriptor tables.
func MustNew(name string, members ...Member) *Descriptor {
	d, err := New(name, members...)
	if err != nil {
		panic(err)
	}
	return d
}

func validateMember(m Member) error {
	if m.Name == "" {
		return fmt.Errorf("empty member name")
	}
	if m.Count <= 0 {
		return fmt.Errorf("count must be positive, got %d", m.Count)
	}

	switch m.Kind {
	case KindUint, KindInt:
		if m.Width != 1 && m.Width != 2 && m.Width != 4 {
			return fmt.Errorf("unsupported width %d", m.Width)
		}
	case KindBits:
		if m.Width != 1 && m.Width != 2 && m.Width != 4 {
			return fmt.Errorf("unsupported width %d", m.Width)
		}
		seen := make(map[string]bool, len(m.Flags))
		limit := uint64(1)<<(8*m.Width) - 1
		for _, f := range m.Flags {
			if f.Name == "" || seen[f.Name] {
				return fmt.Errorf("bad or duplicate flag name %q", f.Name)
			}
			if f.Mask == 0 || f.Mask&(f.Mask-1) != 0 || f.Mask > limit {
				return fmt.Errorf("flag %s: mask %#x is not a single bit within %d bytes", f.Name, f.Mask, m.Width)
			}
			seen[f.Name] = true
		}
	case KindStruct:
		if m.Struct == nil {
			return fmt.Errorf("nil struct descriptor")
		}
	default:
		return fmt.Errorf("unknown kind %d", m.Kind)
	}

	return nil
}

// Name returns the descriptor name.
func (d *Descriptor) Name() string {
	return d.name
}

// Size returns the fixed byte size of the structure.
func (d *Descriptor) Size() int {
	return d.size
}

// Members returns a copy of the member table in declaration order.
func (d *Descriptor) Members() []Member {
	out := make([]Member, len(d.members))
	copy(out, d.members)
	return out
}

// Member looks up a member by name.
func (d *Descriptor) Member(name string) (Member, bool) {
	i, ok := d.index[name]
	if !ok {
		return Member{}, false
	}
	return d.members[i], true
}

// Offset returns the byte offset of the named member, or -1.
func (d *Descriptor) Offset(name string) int {
	m, ok := d.Member(name)
	if !ok {
		return -1
	}
	return m.Offset
}

func (d *Descriptor) lookup(name string) (Member, error) {
	m, ok := d.Member(name)
	if !ok {
		return Member{}, fmt.Errorf("%w: %s.%s", ErrUnknownMember, d.name, name)
	}
	return m, nil
}
