//go:build bench
// +build bench

package codec

import (
	"fmt"
	"testing"

	"github.com/ssargent/odsdb/pkg/richtext"
)

func benchOutline(n int) *Outline {
	o := &Outline{MinorVersion: 1}
	for i := 0; i < n; i++ {
		o.Entries = append(o.Entries, Entry{
			Title:    fmt.Sprintf("Entry %d", i),
			Level:    uint16(i % 4),
			HideWhen: "@IsNewDoc",
			Formulas: FieldMask(0).With(FieldHideWhen),
			OnClick: &Payload{
				Datatype: TypeComposite,
				Records: []richtext.Record{
					richtext.NewRecord(richtext.SigByte, 169, []byte{0x01, 0x00}),
					richtext.NewRecord(richtext.SigWord, 133, []byte("link text")),
					richtext.NewRecord(richtext.SigByte, 170, nil),
				},
			},
		})
	}
	return o
}

func BenchmarkOutlineCodec_Encode(b *testing.B) {
	c := NewOutlineCodec()

	for _, n := range []int{1, 100, 1000} {
		o := benchOutline(n)
		b.Run(fmt.Sprintf("entries_%d", n), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := c.Encode(o); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkOutlineCodec_Decode(b *testing.B) {
	c := NewOutlineCodec()

	for _, n := range []int{1, 100, 1000} {
		buf, err := c.Encode(benchOutline(n))
		if err != nil {
			b.Fatal(err)
		}
		b.Run(fmt.Sprintf("entries_%d", n), func(b *testing.B) {
			b.SetBytes(int64(len(buf)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := c.Decode(buf); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
