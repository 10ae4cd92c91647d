package windows

import (
	"unicode/utf16"
	"unicode/utf8"
)

// encodeText returns text as NUL-terminated UTF-16. Runes outside the BMP
// become surrogate pairs.
func encodeText(text string) []uint16 {
	n := 1
	for _, r := range text {
		if r >= 0x10000 {
			n += 2
			continue
		}
		n++
	}

	dst := make([]uint16, 0, n)
	for _, r := range text {
		if r >= 0x10000 {
			r1, r2 := utf16.EncodeRune(r)
			dst = append(dst, uint16(r1), uint16(r2))
			continue
		}
		dst = append(dst, uint16(r))
	}

	return append(dst, 0)
}

// decodeText converts UTF-16 up to the first NUL into UTF-8. Unpaired
// surrogates become utf8.RuneError.
func decodeText(s []uint16) string {
	buf := make([]byte, 0, len(s))

	for i := 0; i < len(s); i++ {
		r := rune(s[i])

		if r == 0 {
			break
		}

		if r < utf8.RuneSelf {
			buf = append(buf, byte(r))
			continue
		}

		if 0xD800 <= r && r < 0xDC00 && i+1 < len(s) && 0xDC00 <= s[i+1] && s[i+1] < 0xE000 {
			buf = utf8.AppendRune(buf, utf16.DecodeRune(r, rune(s[i+1])))
			i++
			continue
		}

		if 0xD800 <= r && r < 0xE000 {
			r = utf8.RuneError
		}

		buf = utf8.AppendRune(buf, r)
	}

	return string(buf)
}

// encodeLegacy returns text as NUL-terminated bytes for CF_TEXT.
func encodeLegacy(text string) []byte {
	return append([]byte(text), 0)
}

// decodeLegacy returns the CF_TEXT bytes up to the first NUL.
func decodeLegacy(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
