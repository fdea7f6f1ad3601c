package kyc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var verhoeffInv = [10]int{0, 4, 3, 2, 1, 5, 6, 7, 8, 9}

// verhoeffCheckDigit computes the check digit for an 11-digit base, used
// to build valid fixtures without hard-coding real Aadhaar numbers.
func verhoeffCheckDigit(base string) byte {
	c := 0
	for i := 0; i < len(base); i++ {
		d := int(base[len(base)-1-i] - '0')
		c = verhoeffD[c][verhoeffP[(i+1)%8][d]]
	}
	return byte('0' + verhoeffInv[c])
}

func TestIsValidAadhaar(t *testing.T) {
	// Precomputed: check digit for base 12345678901 is 0.
	require.True(t, IsValidAadhaar("123456789010"))

	t.Run("round trip", func(t *testing.T) {
		for _, base := range []string{"12345678901", "98765432109", "55555555555", "40404040404"} {
			num := base + string(verhoeffCheckDigit(base))
			require.True(t, IsValidAadhaar(num), "expected %s to validate", num)
		}
	})

	t.Run("checksum perturbation", func(t *testing.T) {
		base := "12345678901"
		good := verhoeffCheckDigit(base)
		for d := byte('0'); d <= '9'; d++ {
			if d == good {
				continue
			}
			require.False(t, IsValidAadhaar(base+string(d)))
		}
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, num := range []string{
			"",
			"12345678901",    // 11 digits
			"1234567890123",  // 13 digits
			"12345678901A",   // trailing letter
			"1234 5678 9010", // embedded spaces, 14 bytes
			"12345678901x",
		} {
			require.False(t, IsValidAadhaar(num), "expected %q to be rejected", num)
		}
	})
}

func TestIsValidDLFormat(t *testing.T) {
	valid := []string{
		"MH12 2023 0012345",
		"MH1220230012345",
		"KA01 1999 1234567",
		"mh12 2023 0012345", // case normalized before matching
	}
	for _, num := range valid {
		require.True(t, IsValidDLFormat(num), "expected %q to validate", num)
	}

	invalid := []string{
		"MH1220230012345X", // trailing letter
		"M112 2023 0012345",
		"MH12 2023 001234",   // short serial
		"MH12 2023 00123456", // long serial
		"",
		"1234 5678 9012",
	}
	for _, num := range invalid {
		require.False(t, IsValidDLFormat(num), "expected %q to be rejected", num)
	}
}
