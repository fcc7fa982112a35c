// Package codec decodes and encodes outline/sitemap format buffers.
//
// An outline is a fixed format header followed by a list of item-group
// counters and then the entries themselves. Each entry is a fixed header
// that declares the size of up to eleven optional sub-fields, followed by
// those sub-fields and any unparsed padding.
//
// # Buffer Format
//
// All integers are little-endian.
//
//	[OUTLINE_FORMAT(28)][ItemEntries(2 * Items)][Entry]...
//
//	Entry: [OUTLINE_ENTRY(52)][sub-fields][unparsed]
//
// OUTLINE_FORMAT:
//   - Flags: 32-bit format flags (ShowTwisties, ShowIcons, ExpandAll, UseStyleSheet)
//   - MajorVersion, MinorVersion: 16-bit format version
//   - Items: number of item-group counters that follow the header
//   - NumEntries: total number of entries across all groups
//   - Reserved: 16 bytes
//
// OUTLINE_ENTRY:
//   - Flags: 32-bit entry flags (Expanded, Hidden, KeepSelectionFocus, ...)
//   - ResourceDesignType, ResourceType, ResourceClass, Level: 16-bit values
//   - ID: 32-bit entry identifier
//   - eleven 16-bit sub-field sizes, a spare word, and the 32-bit size of the
//     whole variable section (VarDataSize)
//   - Reserved: 8 bytes
//
// # Sub-fields
//
// Sub-fields are stored in a fixed order: title, on-click, image,
// target-frame, hide-when, alias, source, preferred-server, toolbar-manager,
// toolbar-entry, popup. A size of zero means the sub-field is absent.
//
// The first word of a present sub-field is probed as a datatype tag:
//   - TypeFormula: the declared size includes the tag. The tag is skipped and
//     the remaining size-2 bytes are the payload.
//   - TypeComposite: on-click and image payloads are split into richtext
//     records by the configured richtext.Decoder.
//   - anything else: the whole sub-field is decoded as LMBCS text.
//
// Whatever is left of VarDataSize after the sub-fields is skipped and
// reported in Entry.Unparsed, so every entry consumes exactly
// 52 + VarDataSize bytes.
//
// # Usage
//
//	c := codec.NewOutlineCodec()
//
//	outline, err := c.Decode(buf)
//	if err != nil {
//	    return err
//	}
//
//	for _, e := range outline.Entries {
//	    fmt.Println(e.Level, e.Title)
//	}
//
// # Error Handling
//
// Structural problems abort the whole decode; there is no partial result:
//   - ErrShortBuffer: a header or a declared size runs past the buffer
//   - ErrSizeMismatch: sub-field sizes exceed the declared variable section
//   - ErrEntryCount: item-group counters disagree with NumEntries
//   - ErrTooLarge: the buffer exceeds CodecConfig.MaxSize
//
// Errors from the richtext decoder are wrapped and returned as well. Bad
// text is never an error; undecodable bytes become U+FFFD.
//
// # Thread Safety
//
// OutlineCodec instances are safe for concurrent use. A decoded Outline
// aliases the input buffer for raw payload bytes, so the buffer must not be
// modified while the Outline is in use.
package codec
