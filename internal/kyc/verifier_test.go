package kyc

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	calls int
	data  []byte
	err   error
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

type fakeExtractor struct {
	calls int
	text  string
	err   error
}

func (f *fakeExtractor) Extract(ctx context.Context, img []byte) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

const validAadhaar = "123456789010"

func TestVerifyAadhaarFormatFailure(t *testing.T) {
	fetcher := &fakeFetcher{data: []byte("img")}
	v := NewVerifier(fetcher, &fakeExtractor{text: "ANY"})

	// All of these are 12-digit strings whose checksum does not hold.
	for _, num := range []string{"123456789012", "123456789011", "000000000001"} {
		res := v.VerifyAadhaar(context.Background(), num, "https://x/img.png")
		require.False(t, res.IsValid)
		require.Equal(t, "Invalid Aadhaar number format", res.Error)
		require.Nil(t, res.Details)
	}
	require.Zero(t, fetcher.calls, "format failure must not touch the network")
}

func TestVerifyAadhaarSuccess(t *testing.T) {
	fetcher := &fakeFetcher{data: []byte("img")}
	extractor := &fakeExtractor{text: "NAME JOHN DOE DOB 01-01-1990 " + validAadhaar}
	v := NewVerifier(fetcher, extractor)

	res := v.VerifyAadhaar(context.Background(), validAadhaar, "https://x/img.png")
	require.True(t, res.IsValid)
	require.True(t, res.Verified)
	require.Empty(t, res.Error)
	require.NotNil(t, res.Details)
	require.Equal(t, validAadhaar, res.Details.Number)
	require.True(t, res.Details.FormatValid)
	require.True(t, res.Details.ImageVerified)
	require.Equal(t, 1, fetcher.calls)
	require.Equal(t, 1, extractor.calls)
}

func TestVerifyAadhaarMatchMiss(t *testing.T) {
	v := NewVerifier(&fakeFetcher{data: []byte("img")}, &fakeExtractor{text: "SOMEONE ELSES CARD 999888777666"})

	res := v.VerifyAadhaar(context.Background(), validAadhaar, "https://x/img.png")
	require.False(t, res.IsValid)
	require.False(t, res.Verified)
	require.Empty(t, res.Error, "a miss is a negative result, not an error")
	require.NotNil(t, res.Details, "details must be populated on a completed run")
	require.True(t, res.Details.FormatValid)
	require.False(t, res.Details.ImageVerified)
}

func TestVerifyAadhaarDownloadFailure(t *testing.T) {
	fetcher := &fakeFetcher{err: &DownloadError{Err: errors.New("connection refused")}}
	extractor := &fakeExtractor{text: "ANY"}
	v := NewVerifier(fetcher, extractor)

	res := v.VerifyAadhaar(context.Background(), validAadhaar, "https://x/img.png")
	require.False(t, res.IsValid)
	require.Equal(t, "Failed to download image: connection refused", res.Error)
	require.Nil(t, res.Details)
	require.Zero(t, extractor.calls)
}

func TestVerifyAadhaarExtractionFailure(t *testing.T) {
	v := NewVerifier(
		&fakeFetcher{data: []byte("img")},
		&fakeExtractor{err: &ExtractionError{Err: errors.New("engine crashed")}},
	)

	res := v.VerifyAadhaar(context.Background(), validAadhaar, "https://x/img.png")
	require.False(t, res.IsValid)
	require.Equal(t, "OCR failed: engine crashed", res.Error)
	require.Nil(t, res.Details)
}

func TestVerifyAadhaarIdempotent(t *testing.T) {
	v := NewVerifier(&fakeFetcher{data: []byte("img")}, &fakeExtractor{text: "HEADER " + validAadhaar + " FOOTER"})

	first := v.VerifyAadhaar(context.Background(), validAadhaar, "https://x/img.png")
	second := v.VerifyAadhaar(context.Background(), validAadhaar, "https://x/img.png")
	require.Equal(t, first, second)
}

func TestVerifyAadhaarExcerptCap(t *testing.T) {
	long := strings.Repeat("A", 500) + " " + validAadhaar
	v := NewVerifier(&fakeFetcher{data: []byte("img")}, &fakeExtractor{text: long})

	res := v.VerifyAadhaar(context.Background(), validAadhaar, "https://x/img.png")
	require.True(t, res.IsValid)
	require.Len(t, res.Details.ExtractedText, extractedTextLimit)
	require.Equal(t, long[:extractedTextLimit], res.Details.ExtractedText)
}

func TestVerifyDrivingLicense(t *testing.T) {
	const dl = "MH1220230012345"

	t.Run("format failure", func(t *testing.T) {
		fetcher := &fakeFetcher{data: []byte("img")}
		v := NewVerifier(fetcher, &fakeExtractor{text: "ANY"})

		res := v.VerifyDrivingLicense(context.Background(), dl+"X", "https://x/img.png")
		require.False(t, res.IsValid)
		require.Equal(t, "Invalid DL number format", res.Error)
		require.Nil(t, res.Details)
		require.Zero(t, fetcher.calls)
	})

	t.Run("success with auxiliary fields", func(t *testing.T) {
		text := "NAME JOHN DOE DOB 01-01-1990 " + dl + " VALID 15/06/2020 TO 14/06/2040"
		v := NewVerifier(&fakeFetcher{data: []byte("img")}, &fakeExtractor{text: text})

		res := v.VerifyDrivingLicense(context.Background(), "MH12 2023 0012345", "https://x/img.png")
		require.True(t, res.IsValid)
		require.True(t, res.Verified)
		require.NotNil(t, res.Details)
		require.Equal(t, "MH12 2023 0012345", res.Details.Number)
		require.Contains(t, res.Details.Name, "JOHN DOE")
		require.Equal(t, "01-01-1990", res.Details.DOB)
		require.Equal(t, "15/06/2020", res.Details.ValidFrom)
		require.Equal(t, "14/06/2040", res.Details.ValidTo)
	})

	t.Run("miss keeps parsed fields", func(t *testing.T) {
		text := "RAHUL SHARMA 05-05-1985 KA0119991234567"
		v := NewVerifier(&fakeFetcher{data: []byte("img")}, &fakeExtractor{text: text})

		res := v.VerifyDrivingLicense(context.Background(), dl, "https://x/img.png")
		require.False(t, res.IsValid)
		require.Empty(t, res.Error)
		require.NotNil(t, res.Details)
		require.Equal(t, "RAHUL SHARMA", res.Details.Name)
		require.Equal(t, "05-05-1985", res.Details.DOB)
	})

	t.Run("parser fallback on fault", func(t *testing.T) {
		text := "NAME JOHN DOE DOB 01-01-1990 " + dl
		v := NewVerifier(&fakeFetcher{data: []byte("img")}, &fakeExtractor{text: text})
		v.DLParser = failingParser{}

		res := v.VerifyDrivingLicense(context.Background(), dl, "https://x/img.png")
		require.True(t, res.IsValid)
		require.Equal(t, "NAME JOHN DOE", res.Details.Name, "regex extraction must cover parser faults")
	})
}

type failingParser struct{}

func (failingParser) ParseDLFields(ctx context.Context, text string) (DLFields, error) {
	return DLFields{}, errors.New("quota exceeded")
}

func TestVerifyAadhaarZeroValueHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("img"))
	}))
	defer srv.Close()

	v := NewVerifier(&HTTPFetcher{}, &fakeExtractor{text: "NAME JOHN DOE " + validAadhaar})

	res := v.VerifyAadhaar(context.Background(), validAadhaar, srv.URL)
	require.True(t, res.IsValid)
	require.NotNil(t, res.Details)
}
