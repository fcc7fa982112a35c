package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/odsdb/pkg/codec"
	"github.com/ssargent/odsdb/pkg/richtext"
)

func sample() *codec.Outline {
	return &codec.Outline{
		Flags:        []string{codec.FormatShowTwisties},
		MajorVersion: 1,
		MinorVersion: 1,
		ItemEntries:  []uint16{2},
		Entries: []codec.Entry{
			{Title: "Home", ResourceType: codec.ResourceURL},
			{
				Title:    "About",
				Level:    1,
				Alias:    "about",
				HideWhen: "@IsNewDoc",
				Formulas: codec.FieldMask(0).With(codec.FieldHideWhen),
				OnClick: &codec.Payload{
					Datatype: codec.TypeComposite,
					Records: []richtext.Record{
						richtext.NewRecord(richtext.SigByte, 169, nil),
						richtext.NewRecord(richtext.SigByte, 170, nil),
					},
				},
			},
		},
	}
}

func TestRender(t *testing.T) {
	lines := Render(sample(), Options{})

	want := []string{
		"outline v1.1 flags=ShowTwisties groups=[2]\n",
		"- \"Home\" url/none id=0 flags=-\n",
		"  - \"About\" unknown/none id=0 flags=-\n",
		"      alias: about\n",
		"      on_click: composite [HOTSPOTBEGIN HOTSPOTEND]\n",
		"      hide_when: @IsNewDoc\n",
		"      formulas: hide_when\n",
	}
	assert.Equal(t, want, lines)
}

func TestRender_Offsets(t *testing.T) {
	o := sample()
	o.Entries[0].Span = codec.Span{Offset: 32, Length: 56}

	lines := Render(o, Options{Offsets: true})
	assert.True(t, strings.HasSuffix(lines[1], " @32+56\n"), lines[1])
}

func TestUnified(t *testing.T) {
	a := sample()
	b := sample()
	b.Entries[1].Title = "About us"

	patch, err := Unified("a.bin", "b.bin", a, b, Options{})
	require.NoError(t, err)

	assert.Contains(t, patch, "--- a.bin\n")
	assert.Contains(t, patch, "+++ b.bin\n")
	assert.Contains(t, patch, "-  - \"About\"")
	assert.Contains(t, patch, "+  - \"About us\"")
	assert.False(t, Equal(a, b))
}

func TestUnified_Identical(t *testing.T) {
	patch, err := Unified("a", "b", sample(), sample(), Options{Context: 1})
	require.NoError(t, err)
	assert.Empty(t, patch)
	assert.True(t, Equal(sample(), sample()))
}
