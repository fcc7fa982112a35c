package layout

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// View is a typed window over a region of a byte buffer laid out according
// to a Descriptor. It does not own the buffer.
type View struct {
	d *Descriptor
	b []byte
}

// Bind returns a view of d over buf starting at offset.
func Bind(buf []byte, offset int, d *Descriptor) (View, error) {
	if offset < 0 || offset > len(buf) {
		return View{}, fmt.Errorf("%w: %s at offset %d, buffer length %d", ErrShortBuffer, d.Name(), offset, len(buf))
	}
	end := offset + d.Size()
	if end > len(buf) {
		return View{}, fmt.Errorf("%w: %s needs %d bytes at offset %d, have %d",
			ErrShortBuffer, d.Name(), d.Size(), offset, len(buf)-offset)
	}
	return View{d: d, b: buf[offset:end:end]}, nil
}

// Descriptor returns the layout the view was bound with.
func (v View) Descriptor() *Descriptor {
	return v.d
}

// Bytes returns the bound region. Modifying it modifies the view.
func (v View) Bytes() []byte {
	return v.b
}

func (v View) element(name string, i int) (Member, int, error) {
	m, err := v.d.lookup(name)
	if err != nil {
		return Member{}, 0, err
	}
	if i < 0 || i >= m.Count {
		return Member{}, 0, fmt.Errorf("%w: %s.%s[%d], count %d", ErrIndex, v.d.Name(), name, i, m.Count)
	}
	return m, m.Offset + i*m.Width, nil
}

func (v View) load(width, off int) uint64 {
	switch width {
	case 1:
		return uint64(v.b[off])
	case 2:
		return uint64(binary.LittleEndian.Uint16(v.b[off:]))
	default:
		return uint64(binary.LittleEndian.Uint32(v.b[off:]))
	}
}

func (v View) store(width, off int, x uint64) {
	switch width {
	case 1:
		v.b[off] = byte(x)
	case 2:
		binary.LittleEndian.PutUint16(v.b[off:], uint16(x))
	default:
		binary.LittleEndian.PutUint32(v.b[off:], uint32(x))
	}
}

// Int reads a scalar member.
func (v View) Int(name string) (int64, error) {
	return v.IntAt(name, 0)
}

// IntAt reads element i of an integer member. Unsigned and bitfield members
// are zero-extended, signed members are sign-extended.
func (v View) IntAt(name string, i int) (int64, error) {
	m, off, err := v.element(name, i)
	if err != nil {
		return 0, err
	}
	if m.Kind == KindStruct {
		return 0, fmt.Errorf("%w: %s.%s is a struct", ErrKind, v.d.Name(), name)
	}

	raw := v.load(m.Width, off)
	if m.Kind != KindInt {
		return int64(raw), nil
	}
	switch m.Width {
	case 1:
		return int64(int8(raw)), nil
	case 2:
		return int64(int16(raw)), nil
	default:
		return int64(int32(raw)), nil
	}
}

// Ints reads every element of an integer array member.
func (v View) Ints(name string) ([]int64, error) {
	m, err := v.d.lookup(name)
	if err != nil {
		return nil, err
	}
	out := make([]int64, m.Count)
	for i := range out {
		if out[i], err = v.IntAt(name, i); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Uint returns the raw bit pattern of a scalar member.
func (v View) Uint(name string) (uint64, error) {
	m, off, err := v.element(name, 0)
	if err != nil {
		return 0, err
	}
	if m.Kind == KindStruct {
		return 0, fmt.Errorf("%w: %s.%s is a struct", ErrKind, v.d.Name(), name)
	}
	return v.load(m.Width, off), nil
}

// SetInt writes a scalar member.
func (v View) SetInt(name string, x int64) error {
	return v.SetIntAt(name, 0, x)
}

// SetIntAt writes element i of an integer member, rejecting values outside
// the member's range.
func (v View) SetIntAt(name string, i int, x int64) error {
	m, off, err := v.element(name, i)
	if err != nil {
		return err
	}
	if m.Kind == KindStruct {
		return fmt.Errorf("%w: %s.%s is a struct", ErrKind, v.d.Name(), name)
	}

	bitsWide := uint(8 * m.Width)
	var lo, hi int64
	if m.Kind == KindInt {
		lo, hi = -(int64(1) << (bitsWide - 1)), int64(1)<<(bitsWide-1)-1
	} else {
		lo, hi = 0, int64(1)<<bitsWide-1
	}
	if x < lo || x > hi {
		return fmt.Errorf("%w: %s.%s = %d, want [%d, %d]", ErrOverflow, v.d.Name(), name, x, lo, hi)
	}

	v.store(m.Width, off, uint64(x))
	return nil
}

// SetUint writes the raw bit pattern of a scalar member.
func (v View) SetUint(name string, x uint64) error {
	m, off, err := v.element(name, 0)
	if err != nil {
		return err
	}
	if m.Kind == KindStruct {
		return fmt.Errorf("%w: %s.%s is a struct", ErrKind, v.d.Name(), name)
	}
	if x > uint64(1)<<(8*m.Width)-1 {
		return fmt.Errorf("%w: %s.%s = %#x exceeds %d bytes", ErrOverflow, v.d.Name(), name, x, m.Width)
	}
	v.store(m.Width, off, x)
	return nil
}

// Sub returns a view of element i of an embedded struct member.
func (v View) Sub(name string, i int) (View, error) {
	m, off, err := v.element(name, i)
	if err != nil {
		return View{}, err
	}
	if m.Kind != KindStruct {
		return View{}, fmt.Errorf("%w: %s.%s is %s, not a struct", ErrKind, v.d.Name(), name, m.Kind)
	}
	return Bind(v.b, off, m.Struct)
}

// FlagSet is the set of named flags present in a bitfield, in the order the
// member declares them.
type FlagSet []string

// Has reports whether the named flag is present.
func (s FlagSet) Has(name string) bool {
	for _, n := range s {
		if n == name {
			return true
		}
	}
	return false
}

func (s FlagSet) String() string {
	return strings.Join(s, "|")
}

// Flags decodes the named flags of a bitfield member. Bits with no name are
// not reported.
func (v View) Flags(name string) (FlagSet, error) {
	m, off, err := v.element(name, 0)
	if err != nil {
		return nil, err
	}
	if m.Kind != KindBits {
		return nil, fmt.Errorf("%w: %s.%s is %s, not bits", ErrKind, v.d.Name(), name, m.Kind)
	}
	return Decode(m, v.load(m.Width, off)), nil
}

// SetFlags replaces the named bits of a bitfield member with set. Bits that
// have no name keep their current value.
func (v View) SetFlags(name string, set FlagSet) error {
	m, off, err := v.element(name, 0)
	if err != nil {
		return err
	}
	if m.Kind != KindBits {
		return fmt.Errorf("%w: %s.%s is %s, not bits", ErrKind, v.d.Name(), name, m.Kind)
	}

	named, err := Encode(m, set)
	if err != nil {
		return fmt.Errorf("%s.%s: %w", v.d.Name(), name, err)
	}
	raw := v.load(m.Width, off)
	v.store(m.Width, off, raw&^KnownMask(m)|named)
	return nil
}

// Decode maps a raw bit pattern to the member's named flags.
func Decode(m Member, raw uint64) FlagSet {
	set := FlagSet{}
	for _, f := range m.Flags {
		if raw&f.Mask != 0 {
			set = append(set, f.Name)
		}
	}
	return set
}

// Encode maps named flags to their bit pattern.
func Encode(m Member, set FlagSet) (uint64, error) {
	var raw uint64
	for _, name := range set {
		found := false
		for _, f := range m.Flags {
			if f.Name == name {
				raw |= f.Mask
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%w: %q", ErrUnknownFlag, name)
		}
	}
	return raw, nil
}

// KnownMask returns the union of the member's named bits.
func KnownMask(m Member) uint64 {
	var mask uint64
	for _, f := range m.Flags {
		mask |= f.Mask
	}
	return mask
}
