// Package base32 generates and validates Douglas Crockford base32 strings
// with an optional ISO 7064 mod 97-10 checksum. The encoding omits the
// easily confused characters i, l, o and u; decoding is case-insensitive
// and folds i/l to 1 and o to 0.
package base32

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// ENCODING_CHARS per Crockford: digits then lowercase letters minus ilou.
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

var decodeMap = func() map[rune]int64 {
	m := make(map[rune]int64, len(alphabet)+3)
	for i, c := range alphabet {
		m[c] = int64(i)
	}
	m['i'] = 1
	m['l'] = 1
	m['o'] = 0
	return m
}()

// Generate returns a random base32 string of exactly length characters.
// With checksum enabled, the last two characters are ISO 7064 mod 97-10
// check digits computed over the preceding payload (so length must be at
// least 3). With splitEvery > 0, hyphens are inserted every splitEvery
// characters; hyphens do not count towards length.
func Generate(length, splitEvery int, checksum bool) (string, error) {
	size := length
	if checksum {
		size = length - 2
	}
	if size < 1 {
		return "", fmt.Errorf("invalid length %d: too short for requested options", length)
	}
	if splitEvery < 0 {
		return "", fmt.Errorf("invalid split interval %d", splitEvery)
	}

	payload := make([]byte, size)
	for i := range payload {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", fmt.Errorf("failed to draw random symbol: %w", err)
		}
		payload[i] = alphabet[n.Int64()]
	}

	generated := string(payload)
	if checksum {
		generated += fmt.Sprintf("%02d", checksumOf(generated))
	}
	if splitEvery > 0 {
		generated = hyphenate(generated, splitEvery)
	}
	return generated, nil
}

// Validate reports whether s is a well-formed base32 string, verifying the
// trailing two check digits when checksum is set. Hyphens and case are
// ignored.
func Validate(s string, checksum bool) bool {
	normalized, err := Normalize(s)
	if err != nil {
		return false
	}
	if !checksum {
		return len(normalized) > 0
	}
	if len(normalized) < 3 {
		return false
	}
	payload, check := normalized[:len(normalized)-2], normalized[len(normalized)-2:]
	digits, err := strconv.Atoi(check)
	if err != nil {
		return false
	}
	return (residue(payload)*100+int64(digits))%97 == 1
}

// Normalize lowercases s, strips hyphens and folds the Crockford aliases
// (i/l to 1, o to 0). It fails on characters outside the alphabet.
func Normalize(s string) (string, error) {
	var b strings.Builder
	for _, c := range strings.ToLower(s) {
		if c == '-' {
			continue
		}
		v, ok := decodeMap[c]
		if !ok {
			return "", fmt.Errorf("invalid base32 character %q", c)
		}
		b.WriteByte(alphabet[v])
	}
	return b.String(), nil
}

// checksumOf computes the two ISO 7064 mod 97-10 check digits for payload.
func checksumOf(payload string) int64 {
	return 98 - (residue(payload)*100)%97
}

// residue folds the base32 value of payload modulo 97, avoiding big-number
// arithmetic for long identifiers.
func residue(payload string) int64 {
	var n int64
	for _, c := range payload {
		n = (n*32 + decodeMap[c]) % 97
	}
	return n
}

func hyphenate(s string, every int) string {
	var chunks []string
	for len(s) > every {
		chunks = append(chunks, s[:every])
		s = s[every:]
	}
	chunks = append(chunks, s)
	return strings.Join(chunks, "-")
}
