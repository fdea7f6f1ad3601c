package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"zoomride/internal/auth"
	"zoomride/internal/db"
	"zoomride/internal/middleware"
	"zoomride/internal/models"
	"zoomride/internal/notify"
)

// Blacklist is injected at startup; Logout needs it to revoke tokens.
var Blacklist *auth.Blacklist

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^[0-9]{10}$`)
)

func sendTokenResponse(w http.ResponseWriter, status int, user *models.User) {
	token, err := auth.SignToken(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	writeJSONResp(w, status, map[string]any{
		"success": true,
		"token":   token,
		"user": map[string]any{
			"id":        user.ID,
			"name":      user.Name,
			"email":     user.Email,
			"phone":     user.Phone,
			"role":      user.Role,
			"kycStatus": user.KYCStatus,
		},
	})
}

// Register: POST /api/auth/register
func Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	body.Email = strings.ToLower(strings.TrimSpace(body.Email))
	switch {
	case strings.TrimSpace(body.Name) == "":
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	case !emailRe.MatchString(body.Email):
		writeError(w, http.StatusBadRequest, "Please include a valid email")
		return
	case !phoneRe.MatchString(body.Phone):
		writeError(w, http.StatusBadRequest, "Please include a valid phone number")
		return
	case len(body.Password) < 6:
		writeError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	role := body.Role
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleUser && role != models.RoleCarOwner {
		writeError(w, http.StatusBadRequest, "invalid role")
		return
	}

	var existing models.User
	err := db.DB.Where("email = ? OR phone = ?", body.Email, body.Phone).First(&existing).Error
	if err == nil {
		writeError(w, http.StatusBadRequest, "User with this email or phone already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	user := models.User{
		Name:      strings.TrimSpace(body.Name),
		Email:     body.Email,
		Phone:     body.Phone,
		Role:      role,
		KYCStatus: models.KYCPending,
		IsActive:  true,
	}
	if err := user.SetPassword(body.Password); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}
	if err := db.DB.Create(&user).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	go notify.SendWelcomeEmail(user.Email, user.Name)

	sendTokenResponse(w, http.StatusCreated, &user)
}

// Login: POST /api/auth/login
func Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var user models.User
	err := db.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(body.Email))).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !user.MatchPassword(body.Password)) {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	if !user.IsActive {
		writeError(w, http.StatusUnauthorized, "Account has been deactivated")
		return
	}

	sendTokenResponse(w, http.StatusOK, &user)
}

// Me: GET /api/auth/me (protected)
func Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}
	writeJSONResp(w, http.StatusOK, map[string]any{"success": true, "data": user})
}

// UpdateProfile: PUT /api/auth/update-profile (protected)
func UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	var body struct {
		Name               string            `json:"name"`
		Email              string            `json:"email"`
		Phone              string            `json:"phone"`
		DateOfBirth        string            `json:"dateOfBirth"`
		PreferredLocations models.StringList `json:"preferredLocations"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if body.Name != "" {
		user.Name = strings.TrimSpace(body.Name)
	}
	if body.Email != "" {
		email := strings.ToLower(strings.TrimSpace(body.Email))
		if !emailRe.MatchString(email) {
			writeError(w, http.StatusBadRequest, "Please include a valid email")
			return
		}
		user.Email = email
	}
	if body.Phone != "" {
		if !phoneRe.MatchString(body.Phone) {
			writeError(w, http.StatusBadRequest, "Please include a valid phone number")
			return
		}
		user.Phone = body.Phone
	}
	if body.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", body.DateOfBirth)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid dateOfBirth (expected YYYY-MM-DD)")
			return
		}
		user.DateOfBirth = &dob
	}
	if body.PreferredLocations != nil {
		user.PreferredLocations = body.PreferredLocations
	}

	if err := db.DB.Save(user).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}
	writeJSONResp(w, http.StatusOK, map[string]any{"success": true, "data": user})
}

// Logout: POST /api/auth/logout (protected)
func Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.BearerToken(r)
	if token != "" && Blacklist != nil {
		if err := Blacklist.Revoke(r.Context(), token); err != nil {
			log.Println("failed to blacklist token:", err)
			writeError(w, http.StatusInternalServerError, "failed to log out")
			return
		}
	}
	writeJSONResp(w, http.StatusOK, map[string]any{"success": true, "message": "Logged out successfully"})
}

// UploadAvatar: POST /api/auth/avatar (protected)
func UploadAvatar(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	var body struct {
		AvatarURL string `json:"avatarUrl"`
		PublicID  string `json:"publicId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.AvatarURL == "" {
		writeError(w, http.StatusBadRequest, "Avatar URL is required")
		return
	}

	// Drop the old stored object, best effort.
	if user.Avatar.PublicID != "" {
		if err := removeStoredObject(user.Avatar.PublicID); err != nil {
			log.Println("error deleting old avatar:", err)
		}
	}

	user.Avatar = models.Image{PublicID: body.PublicID, URL: body.AvatarURL}
	if err := db.DB.Save(user).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "Error updating avatar")
		return
	}

	writeJSONResp(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Avatar updated successfully",
		"data":    map[string]any{"avatar": user.Avatar},
	})
}
