package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"zoomride/internal/models"
)

func validTestCar() models.Car {
	return models.Car{
		Brand:         "Maruti",
		Model:         "Swift",
		Year:          2021,
		VehicleNumber: "MH12AB1234",
		CarType:       "Hatchback",
		FuelType:      "Petrol",
		Transmission:  "Manual",
		Seats:         5,
		Features:      models.StringList{"AC", "Bluetooth"},
	}
}

func TestValidateCar(t *testing.T) {
	car := validTestCar()
	require.Empty(t, validateCar(&car))

	cases := []struct {
		name   string
		mutate func(*models.Car)
		want   string
	}{
		{"missing brand", func(c *models.Car) { c.Brand = "" }, "Brand is required"},
		{"missing model", func(c *models.Car) { c.Model = "" }, "Model is required"},
		{"year too old", func(c *models.Car) { c.Year = 1985 }, "Valid year is required"},
		{"year in the future", func(c *models.Car) { c.Year = 2100 }, "Valid year is required"},
		{"missing vehicle number", func(c *models.Car) { c.VehicleNumber = "" }, "Vehicle number is required"},
		{"unknown car type", func(c *models.Car) { c.CarType = "Truck" }, "Valid car type is required"},
		{"unknown fuel type", func(c *models.Car) { c.FuelType = "Steam" }, "Valid fuel type is required"},
		{"unknown transmission", func(c *models.Car) { c.Transmission = "CVT-ish" }, "Valid transmission is required"},
		{"too few seats", func(c *models.Car) { c.Seats = 1 }, "Seats must be between 2 and 12"},
		{"too many seats", func(c *models.Car) { c.Seats = 13 }, "Seats must be between 2 and 12"},
		{"unknown feature", func(c *models.Car) { c.Features = models.StringList{"Jacuzzi"} }, "Unknown feature: Jacuzzi"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			car := validTestCar()
			tc.mutate(&car)
			require.Equal(t, tc.want, validateCar(&car))
		})
	}
}

func TestCarSortColumns(t *testing.T) {
	for key, col := range carSortColumns {
		require.NotEmpty(t, col, "sort key %q maps to empty column", key)
	}
	require.Equal(t, "pricing_daily", carSortColumns["price"])
}
