package codec_test

import (
	"errors"
	"fmt"
	"log"

	"github.com/ssargent/odsdb/pkg/codec"
	"github.com/ssargent/odsdb/pkg/richtext"
)

// ExampleOutlineCodec_basic demonstrates encoding and decoding an outline
func ExampleOutlineCodec_basic() {
	c := codec.NewOutlineCodec()

	in := &codec.Outline{
		Flags:        []string{codec.FormatShowTwisties},
		MajorVersion: 1,
		MinorVersion: 1,
		Entries: []codec.Entry{
			{Title: "Home", Level: 0, ResourceType: codec.ResourceURL},
			{Title: "About", Level: 1, ResourceType: codec.ResourceNamedElement, ResourceClass: codec.ClassPage},
		},
	}

	buf, err := c.Encode(in)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Encoded %d bytes\n", len(buf))

	out, err := c.Decode(buf)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Flags: %s\n", out.Flags)
	for _, e := range out.Entries {
		fmt.Printf("%d %s (%s, %s)\n", e.Level, e.Title, e.ResourceType, e.ResourceClass)
	}

	// Output:
	// Encoded 143 bytes
	// Flags: ShowTwisties
	// 0 Home (url, none)
	// 1 About (named-element, page)
}

// ExampleOutlineCodec_formula demonstrates formula sub-fields
func ExampleOutlineCodec_formula() {
	c := codec.NewOutlineCodec()

	buf, err := c.Encode(&codec.Outline{
		Entries: []codec.Entry{{
			Title:    "Admin",
			HideWhen: `!@IsMember("[Admin]"; @UserRoles)`,
			Formulas: codec.FieldMask(0).With(codec.FieldHideWhen),
		}},
	})
	if err != nil {
		log.Fatal(err)
	}

	out, err := c.Decode(buf)
	if err != nil {
		log.Fatal(err)
	}

	e := out.Entries[0]
	fmt.Printf("Hide when: %s\n", e.HideWhen)
	fmt.Printf("Formulas: %s\n", e.Formulas)

	// Output:
	// Hide when: !@IsMember("[Admin]"; @UserRoles)
	// Formulas: hide_when
}

// ExampleOutlineCodec_richText demonstrates composite on-click payloads
func ExampleOutlineCodec_richText() {
	c := codec.NewOutlineCodec()

	buf, err := c.Encode(&codec.Outline{
		Entries: []codec.Entry{{
			Title: "Docs",
			OnClick: &codec.Payload{
				Datatype: codec.TypeComposite,
				Records: []richtext.Record{
					richtext.NewRecord(richtext.SigByte, 169, []byte{0x01, 0x00}),
					richtext.NewRecord(richtext.SigByte, 170, nil),
				},
			},
		}},
	})
	if err != nil {
		log.Fatal(err)
	}

	out, err := c.Decode(buf)
	if err != nil {
		log.Fatal(err)
	}

	for _, r := range out.Entries[0].OnClick.Records {
		fmt.Printf("%s %s length=%d\n", r.Kind, r.Name, r.Length)
	}

	// Output:
	// bsig HOTSPOTBEGIN length=4
	// bsig HOTSPOTEND length=2
}

// ExampleOutlineCodec_errorHandling demonstrates error handling
func ExampleOutlineCodec_errorHandling() {
	c := codec.NewOutlineCodec()

	_, err := c.Decode([]byte{0x01, 0x02, 0x03})
	if errors.Is(err, codec.ErrShortBuffer) {
		fmt.Println("buffer too short")
	}

	// Output:
	// buffer too short
}
