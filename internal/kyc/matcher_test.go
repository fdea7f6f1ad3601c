package kyc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchNumber(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		claimed string
		want    bool
	}{
		{"exact", "SOME HEADER 123456789010 FOOTER", "123456789010", true},
		{"claim with spaces", "GOVT OF INDIA 123456789010", "1234 5678 9010", true},
		{"whitespace stripped from claim only", "1234", "12 34", true},
		{"lower case claim", "DL NO MH1220230012345", "mh1220230012345", true},
		{"absent", "NOTHING RELEVANT HERE", "123456789010", false},
		{"empty claim never matches", "ANY TEXT", "   ", false},
		// Known weakness, kept on purpose: containment accepts a claim
		// embedded inside a longer digit run.
		{"embedded in longer run", "9912345678901099", "123456789010", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, MatchNumber(tc.text, tc.claimed))
		})
	}
}

func TestExtractDLFields(t *testing.T) {
	t.Run("all fields present", func(t *testing.T) {
		text := "NAME JOHN DOE DOB 01-01-1990 MH1220230012345 VALID 15/06/2020 TO 14/06/2040"
		f := ExtractDLFields(text)
		// First run of 2-3 all-caps words wins, so the NAME label is
		// swallowed into the match.
		require.Equal(t, "NAME JOHN DOE", f.Name)
		require.Equal(t, "01-01-1990", f.DOB)
		require.Equal(t, "15/06/2020", f.ValidFrom)
		require.Equal(t, "14/06/2040", f.ValidTo)
	})

	t.Run("dob is first date in text", func(t *testing.T) {
		f := ExtractDLFields("ISSUED 02/03/2015 DOB 01-01-1990")
		require.Equal(t, "02/03/2015", f.DOB)
	})

	t.Run("absence yields empty fields", func(t *testing.T) {
		f := ExtractDLFields("12 34 56")
		require.Equal(t, DLFields{}, f)
	})

	t.Run("no validity without the to separator", func(t *testing.T) {
		f := ExtractDLFields("RAHUL SHARMA 01-01-1990 05-05-2020")
		require.Equal(t, "01-01-1990", f.DOB)
		require.Empty(t, f.ValidFrom)
		require.Empty(t, f.ValidTo)
	})

	t.Run("short words do not form a name", func(t *testing.T) {
		f := ExtractDLFields("DL NO AB CD 123")
		require.Empty(t, f.Name)
	})
}

func TestHolderNameSimilarity(t *testing.T) {
	require.InDelta(t, 1.0, HolderNameSimilarity("JOHN DOE", "John Doe"), 1e-9)
	require.Zero(t, HolderNameSimilarity("", "John Doe"))
	require.Zero(t, HolderNameSimilarity("JOHN DOE", "  "))
	require.Greater(t, HolderNameSimilarity("JOHN DOE", "JON DOE"), 0.8)
	require.Less(t, HolderNameSimilarity("JOHN DOE", "PRIYA NAIR"), 0.6)
}
