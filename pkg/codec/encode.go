package codec

import (
	"fmt"

	"github.com/ssargent/odsdb/pkg/layout"
	"github.com/ssargent/odsdb/pkg/lmbcs"
	"github.com/ssargent/odsdb/pkg/richtext"
)

// Encode serializes an outline into the binary format read by Decode.
//
// Sub-field sizes and VarDataSize are computed. Reserved words beyond the
// header's array length fail with layout.ErrIndex. Text sub-fields listed in
// Entry.Formulas are written behind a formula datatype tag, and Entry.Unparsed
// zero bytes are appended to each variable section. A composite payload with
// no Data is rebuilt from its Records. When ItemEntries is empty all entries
// are written as one item group.
func (c *OutlineCodec) Encode(o *Outline) ([]byte, error) {
	groups := o.ItemEntries
	if len(groups) == 0 && len(o.Entries) > 0 {
		groups = []uint16{uint16(len(o.Entries))}
	}
	total := 0
	for _, n := range groups {
		total += int(n)
	}
	if total != len(o.Entries) {
		return nil, fmt.Errorf("%w: item counters sum to %d, have %d entries", ErrEntryCount, total, len(o.Entries))
	}

	w := layout.NewWriter(FormatLayout.Size() + 2*len(groups) + len(o.Entries)*EntryLayout.Size())
	err := w.Struct(FormatLayout, func(v layout.View) error {
		if err := v.SetUint("Flags", uint64(o.RawFlags)); err != nil {
			return err
		}
		if err := v.SetFlags("Flags", o.Flags); err != nil {
			return err
		}
		if err := v.SetInt("MajorVersion", int64(o.MajorVersion)); err != nil {
			return err
		}
		if err := v.SetInt("MinorVersion", int64(o.MinorVersion)); err != nil {
			return err
		}
		if err := setReserved(v, o.Reserved); err != nil {
			return err
		}
		if err := v.SetInt("Items", int64(len(groups))); err != nil {
			return err
		}
		return v.SetInt("NumEntries", int64(len(o.Entries)))
	})
	if err != nil {
		return nil, fmt.Errorf("codec: format header: %w", err)
	}

	for _, n := range groups {
		w.Uint16(n)
	}

	for i := range o.Entries {
		if err := encodeEntry(w, &o.Entries[i]); err != nil {
			return nil, fmt.Errorf("codec: entry %d: %w", i, err)
		}
	}

	return w.Bytes(), nil
}

func encodeEntry(w *layout.Writer, e *Entry) error {
	var fields [numFields][]byte
	varSize := e.Unparsed
	for _, f := range Fields() {
		b, err := fieldBytes(e, f)
		if err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
		fields[f] = b
		varSize += len(b)
	}

	err := w.Struct(EntryLayout, func(v layout.View) error {
		if err := v.SetUint("Flags", uint64(e.RawFlags)); err != nil {
			return err
		}
		if err := v.SetFlags("Flags", e.Flags); err != nil {
			return err
		}
		values := []struct {
			name string
			x    int64
		}{
			{"ResourceDesignType", int64(e.ResourceDesignType)},
			{"ResourceType", int64(e.ResourceType)},
			{"ResourceClass", int64(e.ResourceClass)},
			{"Level", int64(e.Level)},
			{"ID", int64(e.ID)},
			{"Spare", int64(e.Spare)},
			{"VarDataSize", int64(varSize)},
		}
		for f := range fields {
			values = append(values, struct {
				name string
				x    int64
			}{sizeMembers[f], int64(len(fields[f]))})
		}
		for _, m := range values {
			if err := v.SetInt(m.name, m.x); err != nil {
				return err
			}
		}
		return setReserved(v, e.Reserved)
	})
	if err != nil {
		return err
	}

	for _, b := range fields {
		w.Write(b)
	}
	w.Pad(e.Unparsed)
	return nil
}

// fieldBytes returns the stored form of a sub-field, datatype tag included.
func fieldBytes(e *Entry, f Field) ([]byte, error) {
	if s := e.text(f); s != nil {
		if e.Formulas.Has(f) {
			return tagged(TypeFormula, lmbcs.Encode(*s)), nil
		}
		if *s == "" {
			return nil, nil
		}
		return lmbcs.Encode(*s), nil
	}

	p := *e.payload(f)
	if p == nil {
		return nil, nil
	}

	data := p.Data
	switch {
	case p.Datatype == TypeComposite:
		if data == nil {
			var err error
			if data, err = richtext.Encode(p.Records); err != nil {
				return nil, err
			}
		}
		return tagged(TypeComposite, data), nil
	case p.Datatype == TypeFormula || e.Formulas.Has(f):
		if data == nil {
			data = lmbcs.Encode(p.Text)
		}
		return tagged(TypeFormula, data), nil
	default:
		if data == nil {
			data = lmbcs.Encode(p.Text)
		}
		return data, nil
	}
}

func tagged(tag uint16, payload []byte) []byte {
	b := make([]byte, datatypeSize, datatypeSize+len(payload))
	b[0] = byte(tag)
	b[1] = byte(tag >> 8)
	return append(b, payload...)
}
