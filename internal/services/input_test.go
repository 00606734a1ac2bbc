package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		input string
		want  int
		ok    bool
	}{
		{"1", 1, true},
		{"50", 50, true},
		{"99", 99, true},
		{" 3 ", 3, true},
		{"0", 0, false},
		{"100", 0, false},
		{"abc", 0, false},
		{"-1", 0, false},
		{"", 0, false},
		{"1.5", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseQuantity(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		if tt.ok {
			assert.Equal(t, tt.want, got, "input %q", tt.input)
		}
	}
}

func TestParseName(t *testing.T) {
	name, ok := ParseName("  Nguyễn Văn A  ")
	assert.True(t, ok)
	assert.Equal(t, "Nguyễn Văn A", name)

	_, ok = ParseName("A")
	assert.False(t, ok)

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}
	_, ok = ParseName(string(long))
	assert.False(t, ok)
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"+84912345678", "0912345678", true},
		{"84912345678", "0912345678", true},
		{"0912345678", "0912345678", true},
		{"912345678", "0912345678", true},
		{" 0912345678 ", "0912345678", true},
		{"12345", "", false},
		{"0212345678", "", false}, // landline range
		{"091234567", "", false},  // too short
		{"09123456789", "", false},
		{"abc", "", false},
	}

	for _, tt := range tests {
		got, ok := NormalizePhone(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestParseAddress(t *testing.T) {
	addr, ok := ParseAddress("  123 Lê Lợi, Quận 1, TP.HCM  ")
	assert.True(t, ok)
	assert.Equal(t, "123 Lê Lợi, Quận 1, TP.HCM", addr)

	_, ok = ParseAddress("ngắn quá")
	assert.False(t, ok)
}

func TestMatchConfirmWord(t *testing.T) {
	for _, word := range []string{"có", "CO", "Yes", "ok", "xác nhận", "chốt"} {
		confirmed, matched := MatchConfirmWord(word)
		assert.True(t, matched, "word %q", word)
		assert.True(t, confirmed, "word %q", word)
	}

	for _, word := range []string{"không", "khong", "no", "hủy", "thôi"} {
		confirmed, matched := MatchConfirmWord(word)
		assert.True(t, matched, "word %q", word)
		assert.False(t, confirmed, "word %q", word)
	}

	_, matched := MatchConfirmWord("để mình nghĩ đã")
	assert.False(t, matched)
}
