package kyc

import (
	"regexp"
	"strings"
	"unicode"
)

// Verhoeff multiplication, permutation and inverse tables. Aadhaar numbers
// carry a Verhoeff check digit in the last position.
var verhoeffD = [10][10]int{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
	{1, 2, 3, 4, 0, 6, 7, 8, 9, 5},
	{2, 3, 4, 0, 1, 7, 8, 9, 5, 6},
	{3, 4, 0, 1, 2, 8, 9, 5, 6, 7},
	{4, 0, 1, 2, 3, 9, 5, 6, 7, 8},
	{5, 9, 8, 7, 6, 0, 4, 3, 2, 1},
	{6, 5, 9, 8, 7, 1, 0, 4, 3, 2},
	{7, 6, 5, 9, 8, 2, 1, 0, 4, 3},
	{8, 7, 6, 5, 9, 3, 2, 1, 0, 4},
	{9, 8, 7, 6, 5, 4, 3, 2, 1, 0},
}

var verhoeffP = [8][10]int{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
	{1, 5, 7, 6, 2, 8, 3, 0, 9, 4},
	{5, 8, 0, 3, 7, 9, 6, 1, 4, 2},
	{8, 9, 1, 6, 0, 4, 3, 5, 2, 7},
	{9, 4, 5, 3, 1, 2, 6, 8, 7, 0},
	{4, 2, 8, 6, 5, 7, 3, 9, 0, 1},
	{2, 7, 9, 3, 8, 0, 6, 4, 1, 5},
	{7, 0, 4, 6, 9, 1, 3, 2, 5, 8},
}

// IsValidAadhaar checks that number is exactly 12 digits and that the
// Verhoeff checksum holds. The raw claim is checked as submitted; embedded
// spaces make it invalid.
func IsValidAadhaar(number string) bool {
	if len(number) != 12 {
		return false
	}
	c := 0
	for i := 0; i < 12; i++ {
		ch := number[11-i]
		if ch < '0' || ch > '9' {
			return false
		}
		c = verhoeffD[c][verhoeffP[i%8][ch-'0']]
	}
	return c == 0
}

// Indian DL format: two state letters, two digit RTO code, four digit year,
// seven digit serial. Embedded spaces are tolerated in the claim and
// stripped before matching.
var dlFormatRe = regexp.MustCompile(`^[A-Z]{2}\d{2}\d{4}\d{7}$`)

func IsValidDLFormat(number string) bool {
	return dlFormatRe.MatchString(strings.ToUpper(stripSpace(number)))
}

// stripSpace removes all whitespace, not just ASCII space.
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
