package numerology

import (
	"strings"

	dErrors "stellium/pkg/domain-errors"
)

// Cipher selects a letter-to-value mapping. Tables are fixed at compile time
// and immutable for the process lifetime.
type Cipher string

const (
	CipherPythagorean Cipher = "pythagorean"
	CipherChaldean    Cipher = "chaldean"
)

// ParseCipher validates and returns a Cipher.
func ParseCipher(s string) (Cipher, error) {
	c := Cipher(s)
	if !c.IsValid() {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown numerology cipher: %q", s)
	}
	return c, nil
}

// IsValid checks if the cipher is one of the supported enum values.
func (c Cipher) IsValid() bool {
	return c == CipherPythagorean || c == CipherChaldean
}

// String returns the string representation.
func (c Cipher) String() string {
	return string(c)
}

// pythagoreanValues assigns 1-9 cyclically across the alphabet (a=1 ... i=9,
// j=1 ...).
var pythagoreanValues = map[rune]int{
	'a': 1, 'b': 2, 'c': 3, 'd': 4, 'e': 5, 'f': 6, 'g': 7, 'h': 8, 'i': 9,
	'j': 1, 'k': 2, 'l': 3, 'm': 4, 'n': 5, 'o': 6, 'p': 7, 'q': 8, 'r': 9,
	's': 1, 't': 2, 'u': 3, 'v': 4, 'w': 5, 'x': 6, 'y': 7, 'z': 8,
}

// chaldeanValues follows the Chaldean system, which assigns values by sound
// and never maps any letter to 9.
var chaldeanValues = map[rune]int{
	'a': 1, 'b': 2, 'c': 3, 'd': 4, 'e': 5, 'f': 8, 'g': 3, 'h': 5, 'i': 1,
	'j': 1, 'k': 2, 'l': 3, 'm': 4, 'n': 5, 'o': 7, 'p': 8, 'q': 1, 'r': 2,
	's': 3, 't': 4, 'u': 6, 'v': 6, 'w': 6, 'x': 5, 'y': 1, 'z': 7,
}

// LetterValue returns the cipher's value for a lowercase Latin letter, or 0
// for any other rune.
func (c Cipher) LetterValue(r rune) int {
	switch c {
	case CipherChaldean:
		return chaldeanValues[r]
	default:
		return pythagoreanValues[r]
	}
}

var vowels = map[rune]bool{'a': true, 'e': true, 'i': true, 'o': true, 'u': true}

// IsVowel reports whether r is one of the five vowels. Y is treated as a
// consonant in both ciphers.
func IsVowel(r rune) bool {
	return vowels[r]
}

// NormalizeName lowercases the name and strips everything outside a-z before
// letter-value lookup.
func NormalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
