package handlers

import (
	"net/http"

	"zoomride/internal/db"
	"zoomride/internal/models"
)

// GetDashboardStats: GET /api/admin/dashboard (admin)
func GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	var totalUsers, totalCars, totalBookings, pendingKYCs int64

	counts := []struct {
		query *int64
		run   func(*int64) error
	}{
		{&totalUsers, func(n *int64) error { return db.DB.Model(&models.User{}).Count(n).Error }},
		{&totalCars, func(n *int64) error { return db.DB.Model(&models.Car{}).Count(n).Error }},
		{&totalBookings, func(n *int64) error { return db.DB.Model(&models.Booking{}).Count(n).Error }},
		{&pendingKYCs, func(n *int64) error {
			return db.DB.Model(&models.User{}).Where("kyc_status = ?", models.KYCPending).Count(n).Error
		}},
	}
	for _, c := range counts {
		if err := c.run(c.query); err != nil {
			writeError(w, http.StatusInternalServerError, "database error")
			return
		}
	}

	writeJSONResp(w, http.StatusOK, map[string]any{
		"success": true,
		"data": map[string]any{
			"totalUsers":    totalUsers,
			"totalCars":     totalCars,
			"totalBookings": totalBookings,
			"pendingKYCs":   pendingKYCs,
		},
	})
}
