// Package lmbcs converts between LMBCS, the multi-byte character set used
// for text stored in Notes databases, and UTF-8.
//
// Decoding is best-effort and never fails: sequences that are truncated or
// belong to an unsupported group decode to U+FFFD and decoding continues with
// the next byte.
package lmbcs

import (
	"encoding/binary"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// Group prefix bytes.
const (
	GroupLatin1      = 0x01 // code page 850, also the optimization group
	GroupGreek       = 0x02 // code page 851
	GroupHebrew      = 0x03 // code page 1255
	GroupArabic      = 0x04 // code page 1256
	GroupCyrillic    = 0x05 // code page 1251
	GroupLatin2      = 0x06 // code page 852
	GroupTurkish     = 0x08 // code page 1254
	GroupThai        = 0x0B // code page 874
	GroupControl     = 0x0F // C0 control escape
	GroupJapanese    = 0x10 // code page 932
	GroupKorean      = 0x11 // code page 949
	GroupTradChinese = 0x12 // code page 950
	GroupSimpChinese = 0x13 // code page 936
	GroupUnicode     = 0x14 // one UTF-16BE code unit
)

const controlOffset = 0x20

// single-byte groups, indexed by prefix. A nil entry is a recognised group
// with no available code page.
var singleByte = map[byte]*charmap.Charmap{
	GroupLatin1:   charmap.CodePage850,
	GroupGreek:    nil,
	GroupHebrew:   charmap.Windows1255,
	GroupArabic:   charmap.Windows1256,
	GroupCyrillic: charmap.Windows1251,
	GroupLatin2:   charmap.CodePage852,
	GroupTurkish:  charmap.Windows1254,
	GroupThai:     charmap.Windows874,
}

var doubleByte = map[byte]encoding.Encoding{
	GroupJapanese:    japanese.ShiftJIS,
	GroupKorean:      korean.EUCKR,
	GroupTradChinese: traditionalchinese.Big5,
	GroupSimpChinese: simplifiedchinese.GBK,
}

// Decode converts LMBCS bytes to a UTF-8 string.
func Decode(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))

	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c >= 0x80:
			sb.WriteRune(charmap.CodePage850.DecodeByte(c))
			i++

		case c == GroupUnicode:
			i += decodeUnicode(&sb, b[i+1:])

		case c == GroupControl:
			if i+1 >= len(b) || b[i+1] < controlOffset || b[i+1] >= 2*controlOffset {
				sb.WriteRune(utf8.RuneError)
				i++
				continue
			}
			sb.WriteRune(rune(b[i+1] - controlOffset))
			i += 2

		case isSingleByteGroup(c):
			if i+1 >= len(b) {
				sb.WriteRune(utf8.RuneError)
				i++
				continue
			}
			cm := singleByte[c]
			if cm == nil {
				sb.WriteRune(utf8.RuneError)
			} else {
				sb.WriteRune(cm.DecodeByte(b[i+1]))
			}
			i += 2

		case isDoubleByteGroup(c):
			i += decodeDouble(&sb, doubleByte[c], b[i+1:])

		default:
			// ASCII and C0 controls that are not group prefixes.
			sb.WriteByte(c)
			i++
		}
	}

	return sb.String()
}

func isSingleByteGroup(c byte) bool {
	_, ok := singleByte[c]
	return ok
}

func isDoubleByteGroup(c byte) bool {
	_, ok := doubleByte[c]
	return ok
}

// decodeUnicode decodes the code unit following a 0x14 prefix, pairing
// surrogates across two consecutive prefixed units. It returns the number of
// bytes consumed including the prefix.
func decodeUnicode(sb *strings.Builder, rest []byte) int {
	if len(rest) < 2 {
		sb.WriteRune(utf8.RuneError)
		return 1 + len(rest)
	}
	u := rune(binary.BigEndian.Uint16(rest))
	if utf16.IsSurrogate(u) && len(rest) >= 5 && rest[2] == GroupUnicode {
		lo := rune(binary.BigEndian.Uint16(rest[3:]))
		if r := utf16.DecodeRune(u, lo); r != utf8.RuneError {
			sb.WriteRune(r)
			return 6
		}
	}
	if utf16.IsSurrogate(u) {
		sb.WriteRune(utf8.RuneError)
	} else {
		sb.WriteRune(u)
	}
	return 3
}

// decodeDouble decodes one character from a double-byte group. A lead byte
// at or above 0x80 takes a trail byte; anything else stands alone.
func decodeDouble(sb *strings.Builder, enc encoding.Encoding, rest []byte) int {
	if len(rest) == 0 {
		sb.WriteRune(utf8.RuneError)
		return 1
	}
	n := 1
	if rest[0] >= 0x80 {
		n = 2
	}
	if len(rest) < n {
		sb.WriteRune(utf8.RuneError)
		return 1 + len(rest)
	}

	out, err := enc.NewDecoder().Bytes(rest[:n])
	if err != nil || len(out) == 0 {
		sb.WriteRune(utf8.RuneError)
	} else {
		sb.Write(out)
	}
	return 1 + n
}

// Encode converts a UTF-8 string to LMBCS. ASCII is written as-is, runes in
// code page 850 use the optimization group without a prefix, and all other
// runes are written as prefixed UTF-16 code units. Invalid UTF-8 is encoded
// as U+FFFD.
func Encode(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r < 0x80 && !isPrefix(byte(r)) {
			out = append(out, byte(r))
			continue
		}
		if r < 0x80 {
			out = append(out, GroupControl, byte(r)+controlOffset)
			continue
		}
		if b, ok := charmap.CodePage850.EncodeRune(r); ok && b >= 0x80 {
			out = append(out, b)
			continue
		}
		if r >= 0x10000 {
			hi, lo := utf16.EncodeRune(r)
			out = appendUnicode(out, hi)
			out = appendUnicode(out, lo)
			continue
		}
		out = appendUnicode(out, r)
	}
	return out
}

func isPrefix(c byte) bool {
	return c == GroupUnicode || c == GroupControl || isSingleByteGroup(c) || isDoubleByteGroup(c)
}

func appendUnicode(out []byte, u rune) []byte {
	out = append(out, GroupUnicode)
	return binary.BigEndian.AppendUint16(out, uint16(u))
}
