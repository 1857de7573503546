package classfile

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
)

func TestModifiedUtf8(t *testing.T) {
	tests := []struct {
		name    string
		encoded []byte
		decoded string
	}{
		{"empty", nil, ""},
		{"ascii", []byte("Hi"), "Hi"},
		{"nul", []byte{0xC0, 0x80}, "\x00"},
		{"two byte", []byte{0xC3, 0xA9}, "é"},
		{"three byte", []byte{0xE2, 0x82, 0xAC}, "€"},
		{"supplementary", []byte{0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80}, "😀"},
		{"unpaired high surrogate", []byte{0xED, 0xA0, 0x80}, "\xed\xa0\x80"},
		{"unpaired low surrogate", []byte{0x41, 0xED, 0xB0, 0x80}, "A\xed\xb0\x80"},
		{"mixed", []byte{'a', 0xC0, 0x80, 'b', 0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80}, "a\x00b😀"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, bad := decodeModifiedUtf8(tt.encoded)
			require.Equal(t, -1, bad)
			require.Equal(t, tt.decoded, decoded)

			encoded, ok := encodeModifiedUtf8(tt.decoded)
			require.True(t, ok)
			require.Equal(t, []byte(tt.encoded), append([]byte(nil), encoded...))
		})
	}
}

func TestModifiedUtf8Malformed(t *testing.T) {
	tests := []struct {
		name    string
		encoded []byte
		bad     int
	}{
		{"raw nul", []byte{'a', 0x00}, 1},
		{"lone continuation", []byte{0x80}, 0},
		{"truncated two byte", []byte{'a', 'b', 0xC3}, 2},
		{"truncated three byte", []byte{0xE2, 0x82}, 0},
		{"bad continuation", []byte{0xE2, 0x41, 0xAC}, 0},
		{"overlong two byte", []byte{0xC1, 0x81}, 0},
		{"overlong three byte", []byte{0xE0, 0x81, 0x81}, 0},
		{"four byte form", []byte{0xF0, 0x9F, 0x98, 0x80}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bad := decodeModifiedUtf8(tt.encoded)
			require.Equal(t, tt.bad, bad)
		})
	}
}

func TestModifiedUtf8Unrepresentable(t *testing.T) {
	for _, s := range []string{
		"\xff",
		"\xc0\x80",
		"\xe0\x81\x81",
		"\xed\xa0\xbd\xed\xb8\x80",
		"\xf0\x9f\x98",
	} {
		_, ok := encodeModifiedUtf8(s)
		require.False(t, ok, "%q", s)
	}
}

func TestModifiedUtf8RandomText(t *testing.T) {
	faker := gofakeit.New(42)
	for i := 0; i < 200; i++ {
		s := faker.Sentence(8) + faker.Emoji() + "\x00" + faker.Word()
		encoded, ok := encodeModifiedUtf8(s)
		require.True(t, ok, "%q", s)
		require.NotContains(t, string(encoded), "\x00")

		decoded, bad := decodeModifiedUtf8(encoded)
		require.Equal(t, -1, bad)
		require.Equal(t, s, decoded)
	}
}
