package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFlags = []Flag{
	{Name: "A", Mask: 0x01},
	{Name: "B", Mask: 0x02},
	{Name: "C", Mask: 0x80},
}

var pointLayout = MustNew("POINT",
	I16("X"),
	I16("Y"),
)

var testLayout = MustNew("TEST",
	U8("U8"),
	I8("I8"),
	U16("U16"),
	I16("I16"),
	U32("U32"),
	I32("I32"),
	Bits16("Flags", testFlags...),
	Array(U16("Counts"), 3),
	Struct("Points", pointLayout, 2),
)

func TestDescriptor_SizeAndOffsets(t *testing.T) {
	assert.Equal(t, 4, pointLayout.Size())
	assert.Equal(t, 1+1+2+2+4+4+2+6+8, testLayout.Size())

	assert.Equal(t, 0, testLayout.Offset("U8"))
	assert.Equal(t, 2, testLayout.Offset("U16"))
	assert.Equal(t, 6, testLayout.Offset("U32"))
	assert.Equal(t, 14, testLayout.Offset("Flags"))
	assert.Equal(t, 16, testLayout.Offset("Counts"))
	assert.Equal(t, 22, testLayout.Offset("Points"))
	assert.Equal(t, -1, testLayout.Offset("Missing"))

	sum := 0
	for _, m := range testLayout.Members() {
		sum += m.Width * m.Count
	}
	assert.Equal(t, testLayout.Size(), sum)
}

func TestDescriptor_Invalid(t *testing.T) {
	testCases := []struct {
		name    string
		members []Member
	}{
		{name: "duplicate member", members: []Member{U8("A"), U16("A")}},
		{name: "empty name", members: []Member{U8("")}},
		{name: "zero count", members: []Member{Array(U8("A"), 0)}},
		{name: "flag mask too wide", members: []Member{Bits8("F", Flag{Name: "X", Mask: 0x100})}},
		{name: "flag mask not single bit", members: []Member{Bits8("F", Flag{Name: "X", Mask: 0x03})}},
		{name: "duplicate flag", members: []Member{Bits8("F", Flag{Name: "X", Mask: 1}, Flag{Name: "X", Mask: 2})}},
		{name: "nil struct", members: []Member{Struct("S", nil, 1)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New("BAD", tc.members...)
			assert.ErrorIs(t, err, ErrInvalidDescriptor)
		})
	}

	assert.Panics(t, func() { MustNew("BAD", U8("A"), U8("A")) })
}

func TestBind_ShortBuffer(t *testing.T) {
	buf := make([]byte, testLayout.Size()-1)
	_, err := Bind(buf, 0, testLayout)
	assert.ErrorIs(t, err, ErrShortBuffer)

	buf = make([]byte, testLayout.Size()+4)
	_, err = Bind(buf, 5, testLayout)
	assert.ErrorIs(t, err, ErrShortBuffer)

	_, err = Bind(buf, -1, testLayout)
	assert.ErrorIs(t, err, ErrShortBuffer)

	v, err := Bind(buf, 4, testLayout)
	require.NoError(t, err)
	assert.Len(t, v.Bytes(), testLayout.Size())
}

func TestView_IntegerRoundTrip(t *testing.T) {
	testCases := []struct {
		member string
		values []int64
	}{
		{member: "U8", values: []int64{0, 1, 0x7F, 0x80, 0xFF}},
		{member: "I8", values: []int64{-128, -1, 0, 1, 127}},
		{member: "U16", values: []int64{0, 0x7FFF, 0x8000, 0xFFFF}},
		{member: "I16", values: []int64{-32768, -1, 0, 32767}},
		{member: "U32", values: []int64{0, 0x7FFFFFFF, 0x80000000, 0xFFFFFFFF}},
		{member: "I32", values: []int64{-2147483648, -1, 0, 2147483647}},
	}

	for _, tc := range testCases {
		t.Run(tc.member, func(t *testing.T) {
			v, err := Bind(make([]byte, testLayout.Size()), 0, testLayout)
			require.NoError(t, err)

			for _, want := range tc.values {
				require.NoError(t, v.SetInt(tc.member, want))
				got, err := v.Int(tc.member)
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}
		})
	}
}

func TestView_UnsignedZeroExtends(t *testing.T) {
	buf := make([]byte, testLayout.Size())
	for i := range buf {
		buf[i] = 0xFF
	}
	v, err := Bind(buf, 0, testLayout)
	require.NoError(t, err)

	u32, err := v.Int("U32")
	require.NoError(t, err)
	assert.Equal(t, int64(4294967295), u32)

	i32, err := v.Int("I32")
	require.NoError(t, err)
	assert.Equal(t, int64(-1), i32)

	u8, err := v.Int("U8")
	require.NoError(t, err)
	assert.Equal(t, int64(255), u8)

	i8, err := v.Int("I8")
	require.NoError(t, err)
	assert.Equal(t, int64(-1), i8)
}

func TestView_SetRejectsOverflow(t *testing.T) {
	v, err := Bind(make([]byte, testLayout.Size()), 0, testLayout)
	require.NoError(t, err)

	require.NoError(t, v.SetInt("U16", 7))

	assert.ErrorIs(t, v.SetInt("U16", 0x10000), ErrOverflow)
	assert.ErrorIs(t, v.SetInt("U16", -1), ErrOverflow)
	assert.ErrorIs(t, v.SetInt("I8", 128), ErrOverflow)
	assert.ErrorIs(t, v.SetInt("I8", -129), ErrOverflow)
	assert.ErrorIs(t, v.SetInt("U32", 1<<32), ErrOverflow)
	assert.ErrorIs(t, v.SetUint("U8", 0x100), ErrOverflow)

	got, err := v.Int("U16")
	require.NoError(t, err)
	assert.Equal(t, int64(7), got, "rejected write must not modify the buffer")
}

func TestView_LittleEndian(t *testing.T) {
	buf := make([]byte, testLayout.Size())
	v, err := Bind(buf, 0, testLayout)
	require.NoError(t, err)

	require.NoError(t, v.SetInt("U32", 0x01020304))
	assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, buf[6:10])
}

func TestView_Arrays(t *testing.T) {
	buf := make([]byte, testLayout.Size())
	v, err := Bind(buf, 0, testLayout)
	require.NoError(t, err)

	for i, x := range []int64{10, 20, 0xFFFF} {
		require.NoError(t, v.SetIntAt("Counts", i, x))
	}
	counts, err := v.Ints("Counts")
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 20, 0xFFFF}, counts)
	assert.Equal(t, []byte{20, 0}, buf[18:20], "element 1 sits at base + 1*width")

	_, err = v.IntAt("Counts", 3)
	assert.ErrorIs(t, err, ErrIndex)

	p1, err := v.Sub("Points", 1)
	require.NoError(t, err)
	require.NoError(t, p1.SetInt("X", -5))
	require.NoError(t, p1.SetInt("Y", 9))

	p1again, err := v.Sub("Points", 1)
	require.NoError(t, err)
	x, _ := p1again.Int("X")
	y, _ := p1again.Int("Y")
	assert.Equal(t, int64(-5), x)
	assert.Equal(t, int64(9), y)
	assert.Equal(t, byte(0xFB), buf[26])

	_, err = v.Sub("Points", 2)
	assert.ErrorIs(t, err, ErrIndex)
	_, err = v.Sub("U8", 0)
	assert.ErrorIs(t, err, ErrKind)
	_, err = v.Int("Points")
	assert.ErrorIs(t, err, ErrKind)
}

func TestView_Flags(t *testing.T) {
	testCases := []struct {
		name string
		set  FlagSet
		raw  uint64
	}{
		{name: "empty", set: FlagSet{}, raw: 0},
		{name: "A", set: FlagSet{"A"}, raw: 0x01},
		{name: "B", set: FlagSet{"B"}, raw: 0x02},
		{name: "C", set: FlagSet{"C"}, raw: 0x80},
		{name: "all", set: FlagSet{"A", "B", "C"}, raw: 0x83},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := Bind(make([]byte, testLayout.Size()), 0, testLayout)
			require.NoError(t, err)

			require.NoError(t, v.SetFlags("Flags", tc.set))
			raw, err := v.Uint("Flags")
			require.NoError(t, err)
			assert.Equal(t, tc.raw, raw)

			got, err := v.Flags("Flags")
			require.NoError(t, err)
			assert.Equal(t, tc.set, got)
		})
	}
}

func TestView_FlagsPreserveUnknownBits(t *testing.T) {
	v, err := Bind(make([]byte, testLayout.Size()), 0, testLayout)
	require.NoError(t, err)

	require.NoError(t, v.SetUint("Flags", 0x0104|0x01))

	got, err := v.Flags("Flags")
	require.NoError(t, err)
	assert.Equal(t, FlagSet{"A"}, got, "unnamed bits are not reported")

	require.NoError(t, v.SetFlags("Flags", FlagSet{"B"}))
	raw, err := v.Uint("Flags")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0104|0x02), raw, "unnamed bits survive SetFlags")

	assert.ErrorIs(t, v.SetFlags("Flags", FlagSet{"Nope"}), ErrUnknownFlag)
	_, err = v.Flags("U16")
	assert.ErrorIs(t, err, ErrKind)
}

func TestView_UnknownMember(t *testing.T) {
	v, err := Bind(make([]byte, testLayout.Size()), 0, testLayout)
	require.NoError(t, err)

	_, err = v.Int("Missing")
	assert.ErrorIs(t, err, ErrUnknownMember)
	assert.ErrorIs(t, v.SetInt("Missing", 1), ErrUnknownMember)
}

func TestFlagSet(t *testing.T) {
	s := FlagSet{"A", "C"}
	assert.True(t, s.Has("A"))
	assert.False(t, s.Has("B"))
	assert.Equal(t, "A|C", s.String())
}
