package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"zoomride/internal/config"
	"zoomride/internal/models"
)

const (
	maxSingleUpload   = 10 << 20
	maxMultipleUpload = 50 << 20
	maxUploadFiles    = 10
)

var folderNameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// saveUpload writes one uploaded file into the local object store and
// returns its reference. Object ids are uuid-based; the original filename
// only contributes its extension.
func saveUpload(file multipart.File, header *multipart.FileHeader, folder string) (models.Image, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !imageExtensions[ext] {
		return models.Image{}, fmt.Errorf("unsupported file type %q", ext)
	}

	dir := filepath.Join(config.UploadDir(), folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return models.Image{}, err
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return models.Image{}, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		_ = os.Remove(dst.Name())
		return models.Image{}, err
	}

	publicID := folder + "/" + name
	return models.Image{
		PublicID: publicID,
		URL:      config.BaseURL() + "/uploads/" + publicID,
	}, nil
}

// removeStoredObject deletes a stored object by its public id, refusing
// anything that escapes the upload root.
func removeStoredObject(publicID string) error {
	clean := filepath.Clean("/" + publicID)
	path := filepath.Join(config.UploadDir(), clean)
	return os.Remove(path)
}

// formFileLenient prefers the named field but falls back to whatever file
// field the client actually sent; frontends disagree on field names.
func formFileLenient(r *http.Request, name string) (multipart.File, *multipart.FileHeader, error) {
	file, header, err := r.FormFile(name)
	if err == nil {
		return file, header, nil
	}
	if r.MultipartForm == nil || len(r.MultipartForm.File) == 0 {
		return nil, nil, err
	}
	for key := range r.MultipartForm.File {
		if f, h, e := r.FormFile(key); e == nil {
			return f, h, nil
		}
	}
	return nil, nil, err
}

// UploadSingle: POST /api/upload/single (protected)
// multipart/form-data with file field "image"
func UploadSingle(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSingleUpload)
	if err := r.ParseMultipartForm(maxSingleUpload); err != nil {
		writeError(w, http.StatusBadRequest, "failed to parse form or file too large")
		return
	}

	file, header, err := formFileLenient(r, "image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Please upload a file")
		return
	}
	defer file.Close()

	img, err := saveUpload(file, header, "misc")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error uploading image")
		return
	}

	writeJSONResp(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Image uploaded successfully",
		"data":    img,
	})
}

// UploadMultiple: POST /api/upload/multiple (protected)
// multipart/form-data with file field "images", up to 10 files
func UploadMultiple(w http.ResponseWriter, r *http.Request) {
	uploadMany(w, r, "images", "misc")
}

// UploadCarImages: POST /api/upload/car-images (protected)
func UploadCarImages(w http.ResponseWriter, r *http.Request) {
	uploadMany(w, r, "carImages", "cars")
}

func uploadMany(w http.ResponseWriter, r *http.Request, field, folder string) {
	r.Body = http.MaxBytesReader(w, r.Body, maxMultipleUpload)
	if err := r.ParseMultipartForm(maxMultipleUpload); err != nil {
		writeError(w, http.StatusBadRequest, "failed to parse form or files too large")
		return
	}

	var headers []*multipart.FileHeader
	if r.MultipartForm != nil {
		headers = r.MultipartForm.File[field]
		if len(headers) == 0 {
			// Fall back to any field that has files.
			for _, hs := range r.MultipartForm.File {
				if len(hs) > 0 {
					headers = hs
					break
				}
			}
		}
	}
	if len(headers) == 0 {
		writeError(w, http.StatusBadRequest, "Please upload files")
		return
	}
	if len(headers) > maxUploadFiles {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("at most %d files per upload", maxUploadFiles))
		return
	}

	uploaded := make([]models.Image, 0, len(headers))
	for _, h := range headers {
		file, err := h.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read uploaded file")
			return
		}
		img, err := saveUpload(file, h, folder)
		file.Close()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Error uploading images")
			return
		}
		uploaded = append(uploaded, img)
	}

	writeJSONResp(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("%d images uploaded successfully", len(uploaded)),
		"data":    uploaded,
	})
}

// UploadToFolder: POST /api/upload/folder/{folderName} (protected)
func UploadToFolder(w http.ResponseWriter, r *http.Request) {
	folder := chi.URLParam(r, "folderName")
	if !folderNameRe.MatchString(folder) {
		writeError(w, http.StatusBadRequest, "invalid folder name")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxSingleUpload)
	if err := r.ParseMultipartForm(maxSingleUpload); err != nil {
		writeError(w, http.StatusBadRequest, "failed to parse form or file too large")
		return
	}

	file, header, err := formFileLenient(r, "image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Please upload a file")
		return
	}
	defer file.Close()

	img, err := saveUpload(file, header, folder)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error uploading image")
		return
	}

	writeJSONResp(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Image uploaded to %s folder successfully", folder),
		"data":    img,
	})
}

// kycUploadFields are the accepted document slots, one file each.
var kycUploadFields = []string{
	"drivingLicenseFront", "drivingLicenseBack", "aadhaarFront", "aadhaarBack", "selfie",
}

// UploadKYCDocuments: POST /api/upload/kyc (protected)
func UploadKYCDocuments(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxMultipleUpload)
	if err := r.ParseMultipartForm(maxMultipleUpload); err != nil {
		writeError(w, http.StatusBadRequest, "failed to parse form or files too large")
		return
	}

	uploaded := map[string]models.Image{}
	for _, field := range kycUploadFields {
		file, header, err := r.FormFile(field)
		if err != nil {
			continue
		}
		img, err := saveUpload(file, header, "kyc-documents")
		file.Close()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Error uploading KYC documents")
			return
		}
		uploaded[field] = img
	}

	if len(uploaded) == 0 {
		writeError(w, http.StatusBadRequest, "Please upload KYC documents")
		return
	}

	writeJSONResp(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "KYC documents uploaded successfully",
		"data":    uploaded,
	})
}

// DeleteImage: DELETE /api/upload/delete (protected)
func DeleteImage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PublicID string `json:"public_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.PublicID == "" {
		writeError(w, http.StatusBadRequest, "Public ID is required")
		return
	}

	if err := removeStoredObject(body.PublicID); err != nil {
		if os.IsNotExist(err) {
			writeError(w, http.StatusNotFound, "Image not found or already deleted")
			return
		}
		writeError(w, http.StatusInternalServerError, "Error deleting image")
		return
	}

	writeJSONResp(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Image deleted successfully",
	})
}
