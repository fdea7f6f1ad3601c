package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"zoomride/internal/config"
	"zoomride/internal/db"
	"zoomride/internal/middleware"
	"zoomride/internal/models"
)

// GetBookingQRCode: GET /api/bookings/{id}/qrcode (protected)
// PNG QR code encoding the booking reference, shown at pickup handover.
func GetBookingQRCode(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	bookingID := chi.URLParam(r, "id")

	var booking models.Booking
	err := db.DB.Preload("Car").First(&booking, bookingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "Booking not found")
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	isOwner := booking.Car != nil && booking.Car.OwnerID == user.ID
	if booking.UserID != user.ID && !isOwner && user.Role != models.RoleAdmin {
		writeError(w, http.StatusForbidden, "Not authorized to view this booking")
		return
	}

	data := config.BaseURL() + "/api/bookings/" + bookingID

	png, err := qrcode.Encode(data, qrcode.Medium, 256)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
