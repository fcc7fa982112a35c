// Package layout maps fixed-size binary structures onto typed accessors.
//
// A Descriptor is a static table of members built once, usually as a
// package-level variable:
//
//	var entryLayout = layout.MustNew("OUTLINE_ENTRY",
//	    layout.Bits32("Flags", entryFlags...),
//	    layout.U16("Level"),
//	    layout.U32("ID"),
//	    layout.Array(layout.U32("Reserved"), 2),
//	)
//
// Offsets are assigned in declaration order with no implicit padding, so the
// size of a descriptor is the sum of its member widths times their counts and
// is known without looking at any data.
//
// # Views
//
// Bind returns a View over a region of a caller-owned buffer. The view does
// not copy: reads interpret the bytes in place and setters write straight
// into them. A view must not be used after its buffer is reused.
//
// Integer accessors return int64. Unsigned members are zero-extended and
// signed members are sign-extended, which gives every unsigned 8, 16 and
// 32-bit value an exact representation. Setters reject values that do not
// fit the member width with ErrOverflow instead of truncating.
//
// # Bitfields
//
// Members declared with Bits8, Bits16 or Bits32 carry a table of named flags.
// Flags returns the set of named flags present. SetFlags rewrites only the
// named bits; bits without a name are preserved, and Uint exposes the raw
// pattern for callers that need them.
//
// # Cursor and Writer
//
// Cursor walks a buffer sequentially and fails with ErrShortBuffer instead of
// reading past the end. Writer is the append-only mirror used by encoders.
//
// All multi-byte values are little-endian.
package layout
