package handlers

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"zoomride/internal/db"
	"zoomride/internal/middleware"
	"zoomride/internal/models"
)

// Sortable columns for the public listing; anything else falls back to
// creation time.
var carSortColumns = map[string]string{
	"createdAt": "created_at",
	"year":      "year",
	"price":     "pricing_daily",
	"seats":     "seats",
}

// GetCars: GET /api/cars
// Public listing of available verified cars with filters and pagination.
func GetCars(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 || limit > 50 {
		limit = 10
	}

	query := db.DB.Model(&models.Car{}).Where("availability = ? AND is_verified = ?", true, true)

	if city := q.Get("city"); city != "" {
		query = query.Where("location_city ILIKE ?", "%"+city+"%")
	}
	if carType := q.Get("carType"); carType != "" {
		query = query.Where("car_type = ?", carType)
	}
	if fuelType := q.Get("fuelType"); fuelType != "" {
		query = query.Where("fuel_type = ?", fuelType)
	}
	if transmission := q.Get("transmission"); transmission != "" {
		query = query.Where("transmission = ?", transmission)
	}
	if seats := q.Get("seats"); seats != "" {
		if n, err := strconv.Atoi(seats); err == nil {
			query = query.Where("seats >= ?", n)
		}
	}
	if minPrice := q.Get("minPrice"); minPrice != "" {
		if n, err := strconv.Atoi(minPrice); err == nil {
			query = query.Where("pricing_daily >= ?", n)
		}
	}
	if maxPrice := q.Get("maxPrice"); maxPrice != "" {
		if n, err := strconv.Atoi(maxPrice); err == nil {
			query = query.Where("pricing_daily <= ?", n)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	column, ok := carSortColumns[q.Get("sortBy")]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if q.Get("sortOrder") == "asc" {
		direction = "ASC"
	}

	var cars []models.Car
	err := query.Preload("Owner").
		Order(column + " " + direction).
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&cars).Error
	if err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	writeJSONResp(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(cars),
		"total":   total,
		"pagination": map[string]any{
			"page":  page,
			"pages": int(math.Ceil(float64(total) / float64(limit))),
		},
		"data": cars,
	})
}

// SearchCars: GET /api/cars/search
// Multi-value filters, comma separated, plus price sorting.
func SearchCars(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	query := db.DB.Model(&models.Car{}).Where("availability = ? AND is_verified = ?", true, true)

	if city := q.Get("city"); city != "" {
		query = query.Where("location_city ILIKE ?", "%"+city+"%")
	}
	if v := q.Get("fuelType"); v != "" {
		query = query.Where("fuel_type IN ?", strings.Split(v, ","))
	}
	if v := q.Get("segment"); v != "" {
		query = query.Where("car_type IN ?", strings.Split(v, ","))
	}
	if v := q.Get("brand"); v != "" {
		query = query.Where("brand IN ?", strings.Split(v, ","))
	}
	if v := q.Get("transmissionType"); v != "" {
		query = query.Where("transmission IN ?", strings.Split(v, ","))
	}
	if v := q.Get("seatingCapacity"); v != "" {
		seats := []int{}
		for _, s := range strings.Split(v, ",") {
			if n, err := strconv.Atoi(s); err == nil {
				seats = append(seats, n)
			}
		}
		if len(seats) > 0 {
			query = query.Where("seats IN ?", seats)
		}
	}

	switch q.Get("priceSort") {
	case "lowToHigh":
		query = query.Order("pricing_daily ASC")
	case "highToLow":
		query = query.Order("pricing_daily DESC")
	}

	var cars []models.Car
	if err := query.Preload("Owner").Limit(50).Find(&cars).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	writeJSONResp(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(cars),
		"data":    cars,
	})
}

// GetCar: GET /api/cars/{id}
func GetCar(w http.ResponseWriter, r *http.Request) {
	var car models.Car
	err := db.DB.Preload("Owner").First(&car, chi.URLParam(r, "id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "Car not found")
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSONResp(w, http.StatusOK, map[string]any{"success": true, "data": car})
}

// CreateCar: POST /api/cars (protected)
func CreateCar(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	var car models.Car
	if err := json.NewDecoder(r.Body).Decode(&car); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	car.ID = 0
	car.OwnerID = user.ID
	car.Owner = nil
	car.IsVerified = false
	car.VehicleNumber = strings.ToUpper(strings.TrimSpace(car.VehicleNumber))

	if msg := validateCar(&car); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if err := db.DB.Create(&car).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create car")
		return
	}
	writeJSONResp(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Car created successfully",
		"data":    car,
	})
}

func validateCar(car *models.Car) string {
	switch {
	case car.Brand == "":
		return "Brand is required"
	case car.Model == "":
		return "Model is required"
	case car.Year < 1990 || car.Year > time.Now().Year()+1:
		return "Valid year is required"
	case car.VehicleNumber == "":
		return "Vehicle number is required"
	case !contains(models.CarTypes, car.CarType):
		return "Valid car type is required"
	case !contains(models.FuelTypes, car.FuelType):
		return "Valid fuel type is required"
	case !contains(models.Transmissions, car.Transmission):
		return "Valid transmission is required"
	case car.Seats < 2 || car.Seats > 12:
		return "Seats must be between 2 and 12"
	}
	for _, f := range car.Features {
		if !contains(models.CarFeatures, f) {
			return "Unknown feature: " + f
		}
	}
	return ""
}

// UpdateCar: PUT /api/cars/{id} (protected, owner or admin)
func UpdateCar(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	var car models.Car
	err := db.DB.First(&car, chi.URLParam(r, "id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "Car not found")
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	if car.OwnerID != user.ID && user.Role != models.RoleAdmin {
		writeError(w, http.StatusForbidden, "Not authorized to update this car")
		return
	}

	var updated models.Car
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// Identity and ownership never change through this route.
	updated.ID = car.ID
	updated.OwnerID = car.OwnerID
	updated.Owner = nil
	updated.IsVerified = car.IsVerified
	updated.CreatedAt = car.CreatedAt
	updated.VehicleNumber = strings.ToUpper(strings.TrimSpace(updated.VehicleNumber))

	if msg := validateCar(&updated); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if err := db.DB.Save(&updated).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update car")
		return
	}
	writeJSONResp(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Car updated successfully",
		"data":    updated,
	})
}

// DeleteCar: DELETE /api/cars/{id} (protected, owner or admin)
func DeleteCar(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	var car models.Car
	err := db.DB.First(&car, chi.URLParam(r, "id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "Car not found")
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	if car.OwnerID != user.ID && user.Role != models.RoleAdmin {
		writeError(w, http.StatusForbidden, "Not authorized to delete this car")
		return
	}

	if err := db.DB.Delete(&car).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete car")
		return
	}
	writeJSONResp(w, http.StatusOK, map[string]any{"success": true, "message": "Car deleted successfully"})
}

// GetMyCars: GET /api/cars/my/cars (protected)
func GetMyCars(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	var cars []models.Car
	if err := db.DB.Where("owner_id = ?", user.ID).Find(&cars).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSONResp(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(cars),
		"data":    cars,
	})
}

// VerifyCar: PATCH /api/cars/{id}/verify (admin)
func VerifyCar(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Status != "verify" && body.Status != "reject" {
		writeError(w, http.StatusBadRequest, `Invalid status value. Use "verify" or "reject"`)
		return
	}

	var car models.Car
	err := db.DB.First(&car, chi.URLParam(r, "id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "Car not found")
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	car.IsVerified = body.Status == "verify"
	if err := db.DB.Save(&car).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update car")
		return
	}

	word := "verified"
	if body.Status == "reject" {
		word = "rejected"
	}
	writeJSONResp(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Car " + word + " successfully",
		"data":    car,
	})
}
