package kyc

import (
	"context"

	vision "cloud.google.com/go/vision/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

// VisionExtractor is an alternate TextExtractor backed by the Google
// Vision document-text API, for deployments without a local Tesseract
// install. Select it with OCR_ENGINE=vision.
type VisionExtractor struct {
	CredentialsFile string
}

func NewVisionExtractor(credentialsFile string) *VisionExtractor {
	return &VisionExtractor{CredentialsFile: credentialsFile}
}

func (v *VisionExtractor) Extract(ctx context.Context, img []byte) (string, error) {
	var client *vision.ImageAnnotatorClient
	var err error
	if v.CredentialsFile != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsFile(v.CredentialsFile))
	} else {
		client, err = vision.NewImageAnnotatorClient(ctx)
	}
	if err != nil {
		return "", &ExtractionError{Err: err}
	}
	defer client.Close()

	annotation, err := client.DetectDocumentText(ctx, &visionpb.Image{Content: img}, nil)
	if err != nil {
		return "", &ExtractionError{Err: err}
	}
	if annotation == nil {
		return "", nil
	}
	return normalizeText(annotation.Text), nil
}
