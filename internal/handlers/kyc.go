package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"zoomride/internal/config"
	"zoomride/internal/db"
	"zoomride/internal/kyc"
	"zoomride/internal/middleware"
	"zoomride/internal/models"
)

// Verifier runs the document verification pipeline; injected at startup.
var Verifier *kyc.Verifier

type kycDocument struct {
	Number     string       `json:"number"`
	FrontImage models.Image `json:"frontImage"`
	BackImage  models.Image `json:"backImage"`
}

// UploadKYC: POST /api/auth/kyc (protected)
//
// Stores the submitted documents and runs verification for every document
// that came with a front image URL. A document without an image is stored
// unverified; verification failures never fail the request, they come back
// in the per-document result.
func UploadKYC(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	var body struct {
		DrivingLicense *kycDocument  `json:"drivingLicense"`
		AadhaarCard    *kycDocument  `json:"aadhaarCard"`
		Selfie         *models.Image `json:"selfie"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.DrivingLicense == nil && body.AadhaarCard == nil && body.Selfie == nil {
		writeError(w, http.StatusBadRequest, "no KYC documents provided")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), config.KYCTimeout())
	defer cancel()

	verification := map[string]any{}

	if doc := body.AadhaarCard; doc != nil {
		record := models.DocumentRecord{
			Number:     doc.Number,
			FrontImage: doc.FrontImage,
			BackImage:  doc.BackImage,
		}
		if doc.Number != "" && doc.FrontImage.URL != "" {
			log.Println("verifying aadhaar for user", user.ID)
			res := Verifier.VerifyAadhaar(ctx, doc.Number, doc.FrontImage.URL)
			record.SetVerification(res)
			verification["aadhaar"] = res
		}
		user.AadhaarCard = record
	}

	if doc := body.DrivingLicense; doc != nil {
		record := models.DocumentRecord{
			Number:     doc.Number,
			FrontImage: doc.FrontImage,
			BackImage:  doc.BackImage,
		}
		if doc.Number != "" && doc.FrontImage.URL != "" {
			log.Println("verifying driving license for user", user.ID)
			res := Verifier.VerifyDrivingLicense(ctx, doc.Number, doc.FrontImage.URL)
			if res.Details != nil && res.Details.Name != "" {
				res.Details.NameMatchScore = kyc.HolderNameSimilarity(res.Details.Name, user.Name)
			}
			record.SetVerification(res)
			verification["drivingLicense"] = res
		}
		user.DrivingLicense = record
	}

	if body.Selfie != nil {
		user.Selfie = *body.Selfie
	}

	user.RecomputeKYCStatus()

	if err := db.DB.Save(user).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store KYC documents")
		return
	}

	writeJSONResp(w, http.StatusOK, map[string]any{
		"success":      true,
		"message":      "KYC documents uploaded and verified",
		"data":         user,
		"verification": verification,
	})
}
