package classfile

import "unicode/utf8"

// decodeModifiedUtf8 converts the JVM's modified UTF-8 into a Go string.
// NUL arrives as C0 80 and supplementary characters as surrogate pairs; both
// are folded into ordinary UTF-8. Unpaired surrogates have no UTF-8 form and
// are kept as their raw three-byte sequence so that re-encoding reproduces
// the input exactly. It returns the position of the first malformed byte,
// or -1.
func decodeModifiedUtf8(b []byte) (string, int) {
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c == 0:
			return "", i
		case c < 0x80:
			out = append(out, c)
			i++
		case c&0xE0 == 0xC0:
			if i+1 >= len(b) || !continuation(b[i+1]) {
				return "", i
			}
			r := rune(c&0x1F)<<6 | rune(b[i+1]&0x3F)
			if r != 0 && r < 0x80 {
				return "", i
			}
			if r == 0 {
				out = append(out, 0)
			} else {
				out = utf8.AppendRune(out, r)
			}
			i += 2
		case c&0xF0 == 0xE0:
			if i+2 >= len(b) || !continuation(b[i+1]) || !continuation(b[i+2]) {
				return "", i
			}
			r := rune(c&0x0F)<<12 | rune(b[i+1]&0x3F)<<6 | rune(b[i+2]&0x3F)
			if r < 0x800 {
				return "", i
			}
			if r >= 0xD800 && r <= 0xDBFF && i+5 < len(b) && b[i+3] == 0xED &&
				continuation(b[i+4]) && continuation(b[i+5]) {
				low := rune(b[i+3]&0x0F)<<12 | rune(b[i+4]&0x3F)<<6 | rune(b[i+5]&0x3F)
				if low >= 0xDC00 && low <= 0xDFFF {
					out = utf8.AppendRune(out, 0x10000+(r-0xD800)<<10+(low-0xDC00))
					i += 6
					continue
				}
			}
			if r >= 0xD800 && r <= 0xDFFF {
				out = append(out, b[i:i+3]...)
			} else {
				out = utf8.AppendRune(out, r)
			}
			i += 3
		default:
			return "", i
		}
	}
	return string(out), -1
}

func continuation(c byte) bool {
	return c&0xC0 == 0x80
}

// encodeModifiedUtf8 is the inverse of decodeModifiedUtf8. It reports false
// if s holds bytes that no modified UTF-8 sequence decodes to.
func encodeModifiedUtf8(s string) ([]byte, bool) {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == 0:
			out = append(out, 0xC0, 0x80)
			i++
		case c < 0x80:
			out = append(out, c)
			i++
		case c >= 0xC2 && c < 0xE0 && i+1 < len(s) && continuation(s[i+1]):
			out = append(out, s[i:i+2]...)
			i += 2
		case c&0xF0 == 0xE0 && i+2 < len(s) && continuation(s[i+1]) && continuation(s[i+2]):
			r := rune(c&0x0F)<<12 | rune(s[i+1]&0x3F)<<6 | rune(s[i+2]&0x3F)
			if r < 0x800 {
				return nil, false
			}
			// A raw high surrogate directly followed by a raw low one would
			// decode as a single supplementary character.
			if r >= 0xD800 && r <= 0xDBFF && i+5 < len(s) && s[i+3] == 0xED && s[i+4] >= 0xB0 {
				return nil, false
			}
			out = append(out, s[i:i+3]...)
			i += 3
		case c&0xF8 == 0xF0:
			r, size := utf8.DecodeRuneInString(s[i:])
			if r == utf8.RuneError || size != 4 {
				return nil, false
			}
			r -= 0x10000
			out = appendSurrogate(out, 0xD800+(r>>10))
			out = appendSurrogate(out, 0xDC00+(r&0x3FF))
			i += 4
		default:
			return nil, false
		}
	}
	return out, true
}

func appendSurrogate(out []byte, r rune) []byte {
	return append(out, 0xE0|byte(r>>12), 0x80|byte(r>>6)&0x3F, 0x80|byte(r)&0x3F)
}
