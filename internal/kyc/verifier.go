package kyc

import (
	"context"
	"log"
	"strings"
	"unicode/utf8"
)

// Excerpt of extracted text kept in DocumentDetails for audit purposes.
const extractedTextLimit = 200

// DocumentDetails is populated whenever the pipeline ran to completion,
// whether or not the number matched.
type DocumentDetails struct {
	Number         string  `json:"number"`
	FormatValid    bool    `json:"formatValid"`
	ImageVerified  bool    `json:"imageVerified"`
	Name           string  `json:"name,omitempty"`
	DOB            string  `json:"dob,omitempty"`
	ValidFrom      string  `json:"validFrom,omitempty"`
	ValidTo        string  `json:"validTo,omitempty"`
	NameMatchScore float64 `json:"nameMatchScore,omitempty"`
	ExtractedText  string  `json:"extractedText"`
}

// Result is what one verification call produces. Two shapes exist: a
// completed run has Details set and IsValid reflecting the containment
// check, while a run that could not be attempted (bad format, download or
// OCR failure) has Error set and Details nil. Callers distinguish "the
// number was not in the image" from "we never saw the image" by checking
// Details.
type Result struct {
	IsValid  bool             `json:"isValid"`
	Verified bool             `json:"verified"`
	Error    string           `json:"error,omitempty"`
	Details  *DocumentDetails `json:"details,omitempty"`
}

// DLFieldParser extracts auxiliary license fields from OCR text. The
// regex extractor is the default; a Gemini-backed parser can be plugged in.
type DLFieldParser interface {
	ParseDLFields(ctx context.Context, text string) (DLFields, error)
}

// Verifier runs the verification pipeline: format check, image download,
// text extraction, containment match. Each call is self-contained and
// holds no shared mutable state, so one Verifier may serve concurrent
// calls. It never panics and never returns an error: every failure is
// folded into the Result.
type Verifier struct {
	Fetcher   ImageFetcher
	Extractor TextExtractor

	// Optional. When set, license field extraction goes through it first,
	// falling back to the regex extractor on any fault.
	DLParser DLFieldParser
}

func NewVerifier(fetcher ImageFetcher, extractor TextExtractor) *Verifier {
	return &Verifier{Fetcher: fetcher, Extractor: extractor}
}

// VerifyAadhaar checks that the claimed Aadhaar number is well-formed and
// appears in the submitted document image.
func (v *Verifier) VerifyAadhaar(ctx context.Context, number, imageURL string) Result {
	if !IsValidAadhaar(number) {
		return errorResult("Invalid Aadhaar number format")
	}

	text, res := v.fetchAndExtract(ctx, imageURL)
	if res != nil {
		return *res
	}

	clean := strings.ToUpper(stripSpace(number))
	found := MatchNumber(text, number)
	log.Printf("aadhaar verification: number=%s found=%v", clean, found)

	return Result{
		IsValid:  found,
		Verified: found,
		Details: &DocumentDetails{
			Number:        number,
			FormatValid:   true,
			ImageVerified: found,
			ExtractedText: excerpt(text, extractedTextLimit),
		},
	}
}

// VerifyDrivingLicense checks the claimed DL number against the image and
// additionally parses holder name, date of birth and validity window out
// of the extracted text.
func (v *Verifier) VerifyDrivingLicense(ctx context.Context, number, imageURL string) Result {
	if !IsValidDLFormat(number) {
		return errorResult("Invalid DL number format")
	}

	text, res := v.fetchAndExtract(ctx, imageURL)
	if res != nil {
		return *res
	}

	clean := strings.ToUpper(stripSpace(number))
	found := MatchNumber(text, number)

	fields := ExtractDLFields(text)
	if v.DLParser != nil {
		if parsed, err := v.DLParser.ParseDLFields(ctx, text); err == nil {
			fields = parsed
		} else {
			log.Printf("dl field parser failed, using regex extraction: %v", err)
		}
	}
	log.Printf("dl verification: number=%s found=%v fields=%+v", clean, found, fields)

	return Result{
		IsValid:  found,
		Verified: found,
		Details: &DocumentDetails{
			Number:        number,
			FormatValid:   true,
			ImageVerified: found,
			Name:          fields.Name,
			DOB:           fields.DOB,
			ValidFrom:     fields.ValidFrom,
			ValidTo:       fields.ValidTo,
			ExtractedText: excerpt(text, extractedTextLimit),
		},
	}
}

// fetchAndExtract runs the shared Download and Extract stages. A non-nil
// Result is the ErrorExit for the stage that failed.
func (v *Verifier) fetchAndExtract(ctx context.Context, imageURL string) (string, *Result) {
	img, err := v.Fetcher.Fetch(ctx, imageURL)
	if err != nil {
		r := errorResult(err.Error())
		return "", &r
	}
	text, err := v.Extractor.Extract(ctx, img)
	if err != nil {
		r := errorResult(err.Error())
		return "", &r
	}
	return text, nil
}

func errorResult(msg string) Result {
	return Result{IsValid: false, Error: msg}
}

// excerpt truncates s to at most limit bytes without splitting a rune.
// OCR output is ASCII-constrained by the character whitelist, but the
// Vision engine is not bound by it.
func excerpt(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
