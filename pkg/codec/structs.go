package codec

import "github.com/ssargent/odsdb/pkg/layout"

// Datatype tags that can precede a variable sub-field payload.
const (
	TypeComposite uint16 = 0x0001
	TypeText      uint16 = 0x0500
	TypeFormula   uint16 = 0x0600
)

// datatypeSize is the width of a datatype tag.
const datatypeSize = 2

// toolbarMinorVersion is the first format minor version that defines the
// toolbar-manager, toolbar-entry and popup sub-fields.
const toolbarMinorVersion = 1

// Outline format flags.
const (
	FormatShowTwisties  = "ShowTwisties"
	FormatShowIcons     = "ShowIcons"
	FormatExpandAll     = "ExpandAll"
	FormatUseStyleSheet = "UseStyleSheet"
)

// Outline entry flags.
const (
	EntryExpanded           = "Expanded"
	EntryHidden             = "Hidden"
	EntryKeepSelectionFocus = "KeepSelectionFocus"
	EntryUseHideWhen        = "UseHideWhen"
	EntryPopupFormula       = "PopupFormula"
	EntryImageIsResource    = "ImageIsResource"
)

var formatFlags = []layout.Flag{
	{Name: FormatShowTwisties, Mask: 0x0001},
	{Name: FormatShowIcons, Mask: 0x0002},
	{Name: FormatExpandAll, Mask: 0x0004},
	{Name: FormatUseStyleSheet, Mask: 0x0008},
}

var entryFlags = []layout.Flag{
	{Name: EntryExpanded, Mask: 0x0001},
	{Name: EntryHidden, Mask: 0x0002},
	{Name: EntryKeepSelectionFocus, Mask: 0x0004},
	{Name: EntryUseHideWhen, Mask: 0x0008},
	{Name: EntryPopupFormula, Mask: 0x0010},
	{Name: EntryImageIsResource, Mask: 0x0020},
}

// FormatLayout is the fixed header at the start of an outline buffer. It is
// followed by Items 16-bit item-group counters.
var FormatLayout = layout.MustNew("OUTLINE_FORMAT",
	layout.Bits32("Flags", formatFlags...),
	layout.U16("MajorVersion"),
	layout.U16("MinorVersion"),
	layout.U16("Items"),
	layout.U16("NumEntries"),
	layout.Array(layout.U32("Reserved"), 4),
)

// EntryLayout is the fixed header of each entry. The *Size members give the
// declared byte size of each variable sub-field, in schema order.
var EntryLayout = layout.MustNew("OUTLINE_ENTRY",
	layout.Bits32("Flags", entryFlags...),
	layout.U16("ResourceDesignType"),
	layout.U16("ResourceType"),
	layout.U16("ResourceClass"),
	layout.U16("Level"),
	layout.U32("ID"),
	layout.U16("TitleSize"),
	layout.U16("OnClickSize"),
	layout.U16("ImageSize"),
	layout.U16("TargetFrameSize"),
	layout.U16("HideWhenSize"),
	layout.U16("AliasSize"),
	layout.U16("SourceSize"),
	layout.U16("PreferredServerSize"),
	layout.U16("ToolbarManagerSize"),
	layout.U16("ToolbarEntrySize"),
	layout.U16("PopupSize"),
	layout.U16("Spare"),
	layout.U32("VarDataSize"),
	layout.Array(layout.U32("Reserved"), 2),
)

// sizeMembers maps each Field to its size member in EntryLayout.
var sizeMembers = [numFields]string{
	FieldTitle:           "TitleSize",
	FieldOnClick:         "OnClickSize",
	FieldImage:           "ImageSize",
	FieldTargetFrame:     "TargetFrameSize",
	FieldHideWhen:        "HideWhenSize",
	FieldAlias:           "AliasSize",
	FieldSource:          "SourceSize",
	FieldPreferredServer: "PreferredServerSize",
	FieldToolbarManager:  "ToolbarManagerSize",
	FieldToolbarEntry:    "ToolbarEntrySize",
	FieldPopup:           "PopupSize",
}

// uintOf reads a member whose name is fixed by one of the layouts above.
func uintOf(v layout.View, name string) uint32 {
	x, err := v.Int(name)
	if err != nil {
		panic(err)
	}
	return uint32(x)
}

// reservedOf returns the Reserved words of a header, or nil when all are zero.
func reservedOf(v layout.View) []uint32 {
	xs, err := v.Ints("Reserved")
	if err != nil {
		panic(err)
	}
	out := make([]uint32, len(xs))
	zero := true
	for i, x := range xs {
		out[i] = uint32(x)
		zero = zero && x == 0
	}
	if zero {
		return nil
	}
	return out
}

func setReserved(v layout.View, words []uint32) error {
	for i, x := range words {
		if err := v.SetIntAt("Reserved", i, int64(x)); err != nil {
			return err
		}
	}
	return nil
}
