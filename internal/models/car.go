package models

import "time"

var (
	CarTypes      = []string{"SUV", "Hatchback", "Sedan", "Luxury", "EV", "Convertible", "Minivan"}
	FuelTypes     = []string{"Petrol", "Diesel", "Electric", "Hybrid", "CNG"}
	Transmissions = []string{"Manual", "Automatic"}
	CarFeatures   = []string{"AC", "Bluetooth", "GPS", "Sunroof", "Leather Seats", "Backup Camera", "USB Port", "Keyless Entry"}
)

type Location struct {
	Address string  `json:"address"`
	City    string  `gorm:"index" json:"city"`
	State   string  `json:"state"`
	Pincode string  `json:"pincode"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

type Pricing struct {
	Hourly  float64 `json:"hourly"`
	Daily   float64 `json:"daily"`
	Weekly  float64 `json:"weekly"`
	Monthly float64 `json:"monthly"`
}

type Rating struct {
	Average float64 `gorm:"default:0" json:"average"`
	Count   int     `gorm:"default:0" json:"count"`
}

type CarDocuments struct {
	RCBook               Image `gorm:"embedded;embeddedPrefix:rc_" json:"rcBook"`
	Insurance            Image `gorm:"embedded;embeddedPrefix:insurance_" json:"insurance"`
	PollutionCertificate Image `gorm:"embedded;embeddedPrefix:puc_" json:"pollutionCertificate"`
}

type Car struct {
	ID              uint         `gorm:"primaryKey" json:"id"`
	OwnerID         uint         `gorm:"index;not null" json:"ownerId"`
	Owner           *User        `json:"owner,omitempty"`
	Brand           string       `gorm:"not null" json:"brand"`
	Model           string       `gorm:"not null" json:"model"`
	Year            int          `gorm:"not null" json:"year"`
	VehicleNumber   string       `gorm:"uniqueIndex;not null" json:"vehicleNumber"`
	Color           string       `json:"color"`
	CarType         string       `gorm:"not null" json:"carType"`
	FuelType        string       `gorm:"not null" json:"fuelType"`
	Transmission    string       `gorm:"not null" json:"transmission"`
	Seats           int          `gorm:"not null" json:"seats"`
	Features        StringList   `gorm:"type:text" json:"features"`
	Images          ImageList    `gorm:"type:text" json:"images"`
	Location        Location     `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	Pricing         Pricing      `gorm:"embedded;embeddedPrefix:pricing_" json:"pricing"`
	SecurityDeposit float64      `gorm:"not null" json:"securityDeposit"`
	Availability    bool         `gorm:"default:true" json:"availability"`
	IsVerified      bool         `gorm:"default:false" json:"isVerified"`
	Rating          Rating       `gorm:"embedded;embeddedPrefix:rating_" json:"rating"`
	Documents       CarDocuments `gorm:"embedded" json:"documents"`
	Description     string       `gorm:"size:1000" json:"description"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}
