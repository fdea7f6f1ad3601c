package kyc

import (
	"context"
	"strings"
)

// TextExtractor turns image bytes into normalized upper-case text.
// Implementations must collapse newlines to spaces and upper-case the
// result before returning it, and must report engine faults as
// *ExtractionError.
type TextExtractor interface {
	Extract(ctx context.Context, img []byte) (string, error)
}

// Restricting the recognized character set cuts down noise from document
// backgrounds; identity numbers, names and dates only need these.
const ocrCharWhitelist = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz /-"

func normalizeText(s string) string {
	return strings.ToUpper(strings.ReplaceAll(s, "\n", " "))
}
