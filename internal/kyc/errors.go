package kyc

// DownloadError reports a failure to retrieve the document image. The
// remote host being down, a non-success status and a truncated body all
// land here.
type DownloadError struct {
	Err error
}

func (e *DownloadError) Error() string {
	return "Failed to download image: " + e.Err.Error()
}

func (e *DownloadError) Unwrap() error { return e.Err }

// ExtractionError reports an OCR engine fault. A MatchMiss is not an
// ExtractionError: the engine returning empty or garbage text is a
// successful extraction.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return "OCR failed: " + e.Err.Error()
}

func (e *ExtractionError) Unwrap() error { return e.Err }
