package kyc

import (
	"regexp"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// MatchNumber reports whether the claimed number appears in the extracted
// text. The claim is whitespace-stripped and upper-cased; the text is
// expected to be normalized already. Containment is deliberately
// permissive: it tolerates OCR noise around the number, at the cost of
// false positives when the claim happens to be embedded in a longer
// recognized digit run.
func MatchNumber(text, claimed string) bool {
	clean := strings.ToUpper(stripSpace(claimed))
	if clean == "" {
		return false
	}
	return strings.Contains(text, clean)
}

// DLFields holds the auxiliary fields opportunistically parsed from a
// driving-license image. Any of them may be empty; absence is not an
// error.
type DLFields struct {
	Name      string `json:"name,omitempty"`
	DOB       string `json:"dob,omitempty"`
	ValidFrom string `json:"validFrom,omitempty"`
	ValidTo   string `json:"validTo,omitempty"`
}

var (
	// First run of 2-3 consecutive all-caps words approximates the holder
	// name printed in block capitals.
	dlNameRe     = regexp.MustCompile(`([A-Z]{3,}(?:\s+[A-Z]{3,}){1,2})`)
	dlDOBRe      = regexp.MustCompile(`(\d{1,2}[-/]\d{1,2}[-/]\d{4})`)
	dlValidityRe = regexp.MustCompile(`(?i)(\d{1,2}[-/]\d{1,2}[-/]\d{4})\s*to\s*(\d{1,2}[-/]\d{1,2}[-/]\d{4})`)
)

// ExtractDLFields pulls holder name, date of birth and validity window out
// of normalized license text. First match wins for every field; the
// heuristics are best-effort and order-sensitive on purpose.
func ExtractDLFields(text string) DLFields {
	var f DLFields
	if m := dlNameRe.FindStringSubmatch(text); m != nil {
		f.Name = m[1]
	}
	if m := dlDOBRe.FindStringSubmatch(text); m != nil {
		f.DOB = m[1]
	}
	if m := dlValidityRe.FindStringSubmatch(text); m != nil {
		f.ValidFrom = m[1]
		f.ValidTo = m[2]
	}
	return f
}

// HolderNameSimilarity scores the OCR-extracted holder name against the
// name the user registered with, 0..1. Informational only; it never feeds
// into the verification verdict.
func HolderNameSimilarity(extracted, registered string) float64 {
	if strings.TrimSpace(extracted) == "" || strings.TrimSpace(registered) == "" {
		return 0
	}
	metric := metrics.NewJaroWinkler()
	return strutil.Similarity(strings.ToLower(extracted), strings.ToLower(registered), metric)
}
