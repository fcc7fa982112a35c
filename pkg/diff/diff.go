// Package diff renders outlines as text and compares them with unified
// diffs. It uses github.com/pmezard/go-difflib/difflib for the patches.
package diff

import (
	"fmt"
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"

	"github.com/ssargent/odsdb/pkg/codec"
)

// DefaultContext is the number of context lines used when Options.Context
// is zero.
const DefaultContext = 3

// Options controls patch generation.
type Options struct {
	// Context is the number of context lines around each hunk.
	Context int
	// Offsets includes each entry's byte span in the rendering.
	Offsets bool
}

// Render returns one line per header, entry and present sub-field. Every
// line ends with a newline. Entries are indented two spaces per level.
func Render(o *codec.Outline, opt Options) []string {
	lines := []string{
		fmt.Sprintf("outline v%d.%d flags=%s groups=%v\n", o.MajorVersion, o.MinorVersion, flags(o.Flags), o.ItemEntries),
	}

	for i := range o.Entries {
		e := &o.Entries[i]
		indent := strings.Repeat("  ", int(e.Level))

		line := fmt.Sprintf("%s- %q %s/%s id=%d flags=%s", indent, e.Title, e.ResourceType, e.ResourceClass, e.ID, flags(e.Flags))
		if opt.Offsets {
			line += fmt.Sprintf(" @%d+%d", e.Span.Offset, e.Span.Length)
		}
		lines = append(lines, line+"\n")

		field := func(name, value string) {
			if value != "" {
				lines = append(lines, fmt.Sprintf("%s    %s: %s\n", indent, name, value))
			}
		}
		field("alias", e.Alias)
		field("on_click", payload(e.OnClick))
		field("image", payload(e.Image))
		field("target_frame", e.TargetFrame)
		field("hide_when", e.HideWhen)
		field("source", e.Source)
		field("preferred_server", e.PreferredServer)
		field("toolbar_manager", e.ToolbarManager)
		field("toolbar_entry", e.ToolbarEntry)
		field("popup", e.Popup)
		if e.Formulas != 0 {
			field("formulas", e.Formulas.String())
		}
		if e.Unparsed > 0 {
			field("unparsed", fmt.Sprintf("%d bytes", e.Unparsed))
		}
	}

	return lines
}

func flags(set []string) string {
	if len(set) == 0 {
		return "-"
	}
	return strings.Join(set, "|")
}

func payload(p *codec.Payload) string {
	if p == nil {
		return ""
	}
	if p.IsComposite() {
		names := make([]string, len(p.Records))
		for i, r := range p.Records {
			names[i] = r.Name
		}
		return fmt.Sprintf("composite [%s]", strings.Join(names, " "))
	}
	if p.Datatype == codec.TypeFormula {
		return "formula " + p.Text
	}
	return p.Text
}

// Unified returns a unified patch from a to b. It is empty when the
// renderings are identical.
func Unified(aName, bName string, a, b *codec.Outline, opt Options) (string, error) {
	ctx := opt.Context
	if ctx <= 0 {
		ctx = DefaultContext
	}

	u := difflib.UnifiedDiff{
		A:        Render(a, opt),
		B:        Render(b, opt),
		FromFile: aName,
		ToFile:   bName,
		Context:  ctx,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		return "", fmt.Errorf("diff: %w", err)
	}
	return s, nil
}

// Equal reports whether two outlines render identically.
func Equal(a, b *codec.Outline) bool {
	ra, rb := Render(a, Options{}), Render(b, Options{})
	if len(ra) != len(rb) {
		return false
	}
	for i := range ra {
		if ra[i] != rb[i] {
			return false
		}
	}
	return true
}
