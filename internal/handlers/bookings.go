package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"zoomride/internal/db"
	"zoomride/internal/middleware"
	"zoomride/internal/models"
	"zoomride/internal/notify"
)

// GetBookings: GET /api/bookings (protected)
// Admins see everything, everyone else their own bookings.
func GetBookings(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	query := db.DB.Preload("User").Preload("Car")
	if user.Role != models.RoleAdmin {
		query = query.Where("user_id = ?", user.ID)
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSONResp(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(bookings),
		"data":    bookings,
	})
}

// CreateBooking: POST /api/bookings (protected)
func CreateBooking(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	var booking models.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	booking.ID = 0
	booking.UserID = user.ID
	booking.User = nil
	booking.Status = models.BookingPending
	booking.PaymentStatus = "pending"

	switch {
	case booking.CarID == 0:
		writeError(w, http.StatusBadRequest, "car is required")
		return
	case booking.StartDate.IsZero() || booking.EndDate.IsZero():
		writeError(w, http.StatusBadRequest, "startDate and endDate are required")
		return
	case !booking.EndDate.After(booking.StartDate):
		writeError(w, http.StatusBadRequest, "endDate must be after startDate")
		return
	case booking.StartDate.Before(time.Now().Add(-24 * time.Hour)):
		writeError(w, http.StatusBadRequest, "startDate cannot be in the past")
		return
	case booking.PaymentMethod != "" && !contains(models.PaymentMethods, booking.PaymentMethod):
		writeError(w, http.StatusBadRequest, "invalid payment method")
		return
	}

	var car models.Car
	err := db.DB.First(&car, booking.CarID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "Car not found")
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	if !car.Availability || !car.IsVerified {
		writeError(w, http.StatusBadRequest, "Car is not available for booking")
		return
	}

	booking.Car = nil
	booking.SecurityDeposit = car.SecurityDeposit
	if booking.TotalAmount <= 0 {
		// Daily rate times billed days; the BeforeSave hook recomputes
		// the totals from the window either way.
		days := int(booking.EndDate.Sub(booking.StartDate).Hours() / 24)
		if days < 1 {
			days = 1
		}
		booking.TotalAmount = float64(days) * car.Pricing.Daily
	}

	if err := db.DB.Create(&booking).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create booking")
		return
	}
	writeJSONResp(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Booking created successfully",
		"data":    booking,
	})
}

// UpdateBookingStatus: PATCH /api/bookings/{id}/status (protected)
// The car owner confirms/rejects, the booking user cancels, admins do
// anything.
func UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	var body struct {
		Status             string `json:"status"`
		CancellationReason string `json:"cancellationReason"`
		AdminNotes         string `json:"adminNotes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	valid := []string{
		models.BookingConfirmed, models.BookingActive, models.BookingCompleted,
		models.BookingCancelled, models.BookingRejected,
	}
	if !contains(valid, body.Status) {
		writeError(w, http.StatusBadRequest, "invalid status value")
		return
	}

	var booking models.Booking
	err := db.DB.Preload("Car").First(&booking, chi.URLParam(r, "id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "Booking not found")
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	isAdmin := user.Role == models.RoleAdmin
	isOwner := booking.Car != nil && booking.Car.OwnerID == user.ID
	isRenter := booking.UserID == user.ID

	allowed := isAdmin ||
		(isOwner && contains([]string{models.BookingConfirmed, models.BookingRejected, models.BookingActive, models.BookingCompleted}, body.Status)) ||
		(isRenter && body.Status == models.BookingCancelled)
	if !allowed {
		writeError(w, http.StatusForbidden, "Not authorized to update this booking")
		return
	}

	booking.Status = body.Status
	if body.Status == models.BookingCancelled {
		booking.CancellationReason = body.CancellationReason
	}
	if isAdmin && body.AdminNotes != "" {
		booking.AdminNotes = body.AdminNotes
	}

	if err := db.DB.Save(&booking).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update booking")
		return
	}

	go notifyBookingStatus(&booking)

	writeJSONResp(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Booking updated successfully",
		"data":    booking,
	})
}

func notifyBookingStatus(booking *models.Booking) {
	var renter models.User
	if err := db.DB.First(&renter, booking.UserID).Error; err != nil {
		return
	}
	carName := "your car"
	if booking.Car != nil {
		carName = booking.Car.Brand + " " + booking.Car.Model
	}
	notify.SendBookingStatusEmail(renter.Email, renter.Name, carName, booking.Status)
	notify.SendPush(renter.ID, "Booking "+booking.Status, carName+" booking is "+booking.Status)
}
