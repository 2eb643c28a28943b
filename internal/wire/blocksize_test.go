package wire

import "testing"

func TestBlockSize(t *testing.T) {
	cases := []struct {
		valueLen int
		want     int
	}{
		{0, 16},
		{1, 16},
		{10, 16},
		{11, 32}, // 5 + 11 == 16, must still bump past the boundary
		{12, 32},
		{26, 32}, // 5 + 26 == 31
		{27, 48}, // 5 + 27 == 32, bumped again
	}
	for _, c := range cases {
		if got := BlockSize(c.valueLen); got != c.want {
			t.Errorf("BlockSize(%d) = %d, want %d", c.valueLen, got, c.want)
		}
		if got := PadLen(c.valueLen); got != c.want-5-c.valueLen {
			t.Errorf("PadLen(%d) = %d, want %d", c.valueLen, got, c.want-5-c.valueLen)
		}
	}
}

func TestEncodingRoundTrip(t *testing.T) {
	b := make([]byte, 8)
	PutU16(b, 0, 0xBEEF)
	PutU32(b, 2, 0xDEADBEEF)
	if got := ReadU16(b, 0); got != 0xBEEF {
		t.Errorf("ReadU16 = %x, want BEEF", got)
	}
	if got := ReadU32(b, 2); got != 0xDEADBEEF {
		t.Errorf("ReadU32 = %x, want DEADBEEF", got)
	}
}
