package router

import (
	"net/http"

	"zoomride/internal/auth"
	"zoomride/internal/config"
	"zoomride/internal/handlers"
	"zoomride/internal/middleware"
	"zoomride/internal/models"

	"github.com/go-chi/chi/v5"
)

func RegisterRouter(bl *auth.Blacklist) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORSMiddleware)
	r.Use(middleware.LoggingMiddleware)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"message":"ZoomRide API is running"}`))
	})

	// public
	r.Post("/api/auth/register", handlers.Register)
	r.Post("/api/auth/login", handlers.Login)
	r.Get("/api/cars", handlers.GetCars)
	r.Get("/api/cars/search", handlers.SearchCars)
	r.Get("/api/cars/{id}", handlers.GetCar)

	// stored uploads are served directly
	fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(config.UploadDir())))
	r.Get("/uploads/*", fs.ServeHTTP)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Protect(bl))

		r.Get("/api/auth/me", handlers.Me)
		r.Put("/api/auth/update-profile", handlers.UpdateProfile)
		r.Post("/api/auth/kyc", handlers.UploadKYC)
		r.Post("/api/auth/logout", handlers.Logout)
		r.Post("/api/auth/avatar", handlers.UploadAvatar)

		r.Post("/api/cars", handlers.CreateCar)
		r.Put("/api/cars/{id}", handlers.UpdateCar)
		r.Delete("/api/cars/{id}", handlers.DeleteCar)
		r.Get("/api/cars/my/cars", handlers.GetMyCars)

		r.Get("/api/bookings", handlers.GetBookings)
		r.Post("/api/bookings", handlers.CreateBooking)
		r.Patch("/api/bookings/{id}/status", handlers.UpdateBookingStatus)
		r.Get("/api/bookings/{id}/qrcode", handlers.GetBookingQRCode)

		r.Post("/api/upload/single", handlers.UploadSingle)
		r.Post("/api/upload/multiple", handlers.UploadMultiple)
		r.Post("/api/upload/folder/{folderName}", handlers.UploadToFolder)
		r.Post("/api/upload/kyc", handlers.UploadKYCDocuments)
		r.Post("/api/upload/car-images", handlers.UploadCarImages)
		r.Delete("/api/upload/delete", handlers.DeleteImage)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authorize(models.RoleAdmin))
			r.Get("/api/admin/dashboard", handlers.GetDashboardStats)
			r.Patch("/api/cars/{id}/verify", handlers.VerifyCar)
		})
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"error":"Route not found"}`))
	})

	return r
}
