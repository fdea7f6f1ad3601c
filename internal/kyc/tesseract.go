package kyc

import (
	"context"

	"github.com/otiai10/gosseract/v2"
)

// TesseractExtractor is the default TextExtractor, backed by a local
// Tesseract install via gosseract. A fresh client is created per call;
// gosseract clients are not safe for concurrent use.
type TesseractExtractor struct{}

func NewTesseractExtractor() *TesseractExtractor {
	return &TesseractExtractor{}
}

func (t *TesseractExtractor) Extract(ctx context.Context, img []byte) (string, error) {
	select {
	case <-ctx.Done():
		return "", &ExtractionError{Err: ctx.Err()}
	default:
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImageFromBytes(img); err != nil {
		return "", &ExtractionError{Err: err}
	}
	if err := client.SetVariable("tessedit_char_whitelist", ocrCharWhitelist); err != nil {
		return "", &ExtractionError{Err: err}
	}
	// Documents are photographed as one block of mixed text, not sparse
	// columns.
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return "", &ExtractionError{Err: err}
	}

	text, err := client.Text()
	if err != nil {
		return "", &ExtractionError{Err: err}
	}
	return normalizeText(text), nil
}
