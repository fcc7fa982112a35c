package codec

import (
	"fmt"
	"strings"

	"github.com/ssargent/odsdb/pkg/layout"
	"github.com/ssargent/odsdb/pkg/richtext"
)

// Field identifies a variable sub-field of an entry. Values are in the
// order the sub-fields are stored.
type Field int

const (
	FieldTitle Field = iota
	FieldOnClick
	FieldImage
	FieldTargetFrame
	FieldHideWhen
	FieldAlias
	FieldSource
	FieldPreferredServer
	FieldToolbarManager
	FieldToolbarEntry
	FieldPopup
	numFields
)

var fieldNames = [numFields]string{
	"title", "on_click", "image", "target_frame", "hide_when", "alias",
	"source", "preferred_server", "toolbar_manager", "toolbar_entry", "popup",
}

func (f Field) String() string {
	if f < 0 || f >= numFields {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return fieldNames[f]
}

// versioned reports whether the field only exists from toolbarMinorVersion.
func (f Field) versioned() bool {
	return f == FieldToolbarManager || f == FieldToolbarEntry || f == FieldPopup
}

// Fields returns all sub-fields in storage order.
func Fields() []Field {
	out := make([]Field, numFields)
	for i := range out {
		out[i] = Field(i)
	}
	return out
}

// FieldMask is a set of Fields.
type FieldMask uint16

// Has reports whether f is in the set.
func (m FieldMask) Has(f Field) bool {
	return m&(1<<uint(f)) != 0
}

// With returns the set with f added.
func (m FieldMask) With(f Field) FieldMask {
	return m | 1<<uint(f)
}

func (m FieldMask) String() string {
	var names []string
	for _, f := range Fields() {
		if m.Has(f) {
			names = append(names, f.String())
		}
	}
	return strings.Join(names, ",")
}

// MarshalText implements encoding.TextMarshaler.
func (m FieldMask) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *FieldMask) UnmarshalText(text []byte) error {
	var out FieldMask
	for _, name := range strings.Split(string(text), ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		found := false
		for _, f := range Fields() {
			if f.String() == name {
				out = out.With(f)
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("codec: unknown field %q", name)
		}
	}
	*m = out
	return nil
}

// ResourceType is what an entry points at.
type ResourceType uint16

const (
	ResourceUnknown ResourceType = iota
	ResourceURL
	ResourceNotesLink
	ResourceNamedElement
	ResourceAction
)

func (t ResourceType) String() string {
	switch t {
	case ResourceUnknown:
		return "unknown"
	case ResourceURL:
		return "url"
	case ResourceNotesLink:
		return "notes-link"
	case ResourceNamedElement:
		return "named-element"
	case ResourceAction:
		return "action"
	default:
		return fmt.Sprintf("type(%d)", uint16(t))
	}
}

// ResourceClass is the kind of design element an entry points at.
type ResourceClass uint16

const (
	ClassNone ResourceClass = iota
	ClassDatabase
	ClassView
	ClassForm
	ClassNavigator
	ClassPage
	ClassFrameset
	ClassOutline
	ClassDocument
	ClassFolder
)

var classNames = []string{
	"none", "database", "view", "form", "navigator",
	"page", "frameset", "outline", "document", "folder",
}

func (c ResourceClass) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return fmt.Sprintf("class(%d)", uint16(c))
}

// Payload is an on-click or image sub-field. Datatype is the tag probed in
// front of the payload. Records is set when the datatype is TypeComposite;
// otherwise the payload is decoded as Text.
type Payload struct {
	Datatype uint16            `json:"datatype" yaml:"datatype"`
	Data     []byte            `json:"data,omitempty" yaml:"data,omitempty"`
	Text     string            `json:"text,omitempty" yaml:"text,omitempty"`
	Records  []richtext.Record `json:"records,omitempty" yaml:"records,omitempty"`
}

// IsComposite reports whether the payload holds richtext records.
func (p *Payload) IsComposite() bool {
	return p != nil && p.Datatype == TypeComposite
}

// Span locates an entry within the decoded buffer.
type Span struct {
	Offset int `json:"offset" yaml:"offset"`
	Length int `json:"length" yaml:"length"`
}

// Entry is one decoded outline entry.
type Entry struct {
	Group              int            `json:"group" yaml:"group"`
	Flags              layout.FlagSet `json:"flags" yaml:"flags"`
	RawFlags           uint32         `json:"raw_flags" yaml:"raw_flags"`
	ResourceDesignType uint16         `json:"resource_design_type" yaml:"resource_design_type"`
	ResourceType       ResourceType   `json:"resource_type" yaml:"resource_type"`
	ResourceClass      ResourceClass  `json:"resource_class" yaml:"resource_class"`
	Level              uint16         `json:"level" yaml:"level"`
	ID                 uint32         `json:"id" yaml:"id"`
	Spare              uint16         `json:"spare,omitempty" yaml:"spare,omitempty"`
	Reserved           []uint32       `json:"reserved,omitempty" yaml:"reserved,omitempty"`

	Title           string `json:"title,omitempty" yaml:"title,omitempty"`
	Alias           string `json:"alias,omitempty" yaml:"alias,omitempty"`
	TargetFrame     string `json:"target_frame,omitempty" yaml:"target_frame,omitempty"`
	HideWhen        string `json:"hide_when,omitempty" yaml:"hide_when,omitempty"`
	Source          string `json:"source,omitempty" yaml:"source,omitempty"`
	PreferredServer string `json:"preferred_server,omitempty" yaml:"preferred_server,omitempty"`
	ToolbarManager  string `json:"toolbar_manager,omitempty" yaml:"toolbar_manager,omitempty"`
	ToolbarEntry    string `json:"toolbar_entry,omitempty" yaml:"toolbar_entry,omitempty"`
	Popup           string `json:"popup,omitempty" yaml:"popup,omitempty"`

	OnClick *Payload `json:"on_click,omitempty" yaml:"on_click,omitempty"`
	Image   *Payload `json:"image,omitempty" yaml:"image,omitempty"`

	// Formulas marks text sub-fields that carried a formula datatype tag.
	Formulas FieldMask `json:"formulas,omitempty" yaml:"formulas,omitempty"`
	// Unparsed counts variable-section bytes that were skipped.
	Unparsed int `json:"unparsed,omitempty" yaml:"unparsed,omitempty"`

	Span Span `json:"span" yaml:"span"`
}

// text returns the string sub-field for f, or nil for payload fields.
func (e *Entry) text(f Field) *string {
	switch f {
	case FieldTitle:
		return &e.Title
	case FieldTargetFrame:
		return &e.TargetFrame
	case FieldHideWhen:
		return &e.HideWhen
	case FieldAlias:
		return &e.Alias
	case FieldSource:
		return &e.Source
	case FieldPreferredServer:
		return &e.PreferredServer
	case FieldToolbarManager:
		return &e.ToolbarManager
	case FieldToolbarEntry:
		return &e.ToolbarEntry
	case FieldPopup:
		return &e.Popup
	default:
		return nil
	}
}

// payload returns the payload slot for on-click and image, or nil.
func (e *Entry) payload(f Field) **Payload {
	switch f {
	case FieldOnClick:
		return &e.OnClick
	case FieldImage:
		return &e.Image
	default:
		return nil
	}
}

// Outline is a decoded outline/sitemap format.
type Outline struct {
	Flags        layout.FlagSet `json:"flags" yaml:"flags"`
	RawFlags     uint32         `json:"raw_flags" yaml:"raw_flags"`
	MajorVersion uint16         `json:"major_version" yaml:"major_version"`
	MinorVersion uint16         `json:"minor_version" yaml:"minor_version"`
	Reserved     []uint32       `json:"reserved,omitempty" yaml:"reserved,omitempty"`
	// ItemEntries holds the number of entries in each item group.
	ItemEntries []uint16 `json:"item_entries" yaml:"item_entries"`
	Entries     []Entry  `json:"entries" yaml:"entries"`
	// Trailing counts bytes after the last entry.
	Trailing int `json:"trailing,omitempty" yaml:"trailing,omitempty"`
}

// Groups returns the entries split by item group, in order.
func (o *Outline) Groups() [][]Entry {
	groups := make([][]Entry, 0, len(o.ItemEntries))
	next := 0
	for _, n := range o.ItemEntries {
		end := next + int(n)
		if end > len(o.Entries) {
			end = len(o.Entries)
		}
		groups = append(groups, o.Entries[next:end])
		next = end
	}
	return groups
}

// Titles returns the entry titles in order.
func (o *Outline) Titles() []string {
	titles := make([]string, len(o.Entries))
	for i := range o.Entries {
		titles[i] = o.Entries[i].Title
	}
	return titles
}
