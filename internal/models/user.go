package models

import (
	"encoding/json"
	"time"

	"golang.org/x/crypto/bcrypt"

	"zoomride/internal/kyc"
)

const (
	RoleUser     = "user"
	RoleCarOwner = "car_owner"
	RoleAdmin    = "admin"

	KYCPending  = "pending"
	KYCVerified = "verified"
	KYCRejected = "rejected"
)

// DocumentRecord is one submitted identity document: the claimed number,
// the uploaded images and the outcome of the last verification run.
type DocumentRecord struct {
	Number              string `json:"number,omitempty"`
	FrontImage          Image  `gorm:"embedded;embeddedPrefix:front_" json:"frontImage"`
	BackImage           Image  `gorm:"embedded;embeddedPrefix:back_" json:"backImage"`
	Verified            bool   `gorm:"default:false" json:"verified"`
	VerificationDetails string `gorm:"type:text" json:"-"`
}

// SetVerification stores a verification result alongside the document.
func (d *DocumentRecord) SetVerification(res kyc.Result) {
	d.Verified = res.IsValid
	b, err := json.Marshal(res)
	if err != nil {
		d.VerificationDetails = ""
		return
	}
	d.VerificationDetails = string(b)
}

type User struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	Name               string         `gorm:"size:50;not null" json:"name"`
	Email              string         `gorm:"uniqueIndex;not null" json:"email"`
	Phone              string         `gorm:"uniqueIndex;not null" json:"phone"`
	Password           string         `gorm:"not null" json:"-"`
	Role               string         `gorm:"default:user" json:"role"`
	Avatar             Image          `gorm:"embedded;embeddedPrefix:avatar_" json:"avatar"`
	DateOfBirth        *time.Time     `json:"dateOfBirth,omitempty"`
	DrivingLicense     DocumentRecord `gorm:"embedded;embeddedPrefix:dl_" json:"drivingLicense"`
	AadhaarCard        DocumentRecord `gorm:"embedded;embeddedPrefix:aadhaar_" json:"aadhaarCard"`
	Selfie             Image          `gorm:"embedded;embeddedPrefix:selfie_" json:"selfie"`
	KYCStatus          string         `gorm:"default:pending" json:"kycStatus"`
	PreferredLocations StringList     `gorm:"type:text" json:"preferredLocations,omitempty"`
	IsActive           bool           `gorm:"default:true" json:"isActive"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
}

func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), 10)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

func (u *User) MatchPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

// RecomputeKYCStatus derives the tri-state KYC status from the submitted
// documents: verified once every submitted document passed verification,
// pending otherwise. Rejection is an admin decision and is never set here.
func (u *User) RecomputeKYCStatus() {
	if u.KYCStatus == KYCRejected {
		return
	}
	submitted := 0
	verified := 0
	for _, doc := range []DocumentRecord{u.DrivingLicense, u.AadhaarCard} {
		if doc.Number == "" {
			continue
		}
		submitted++
		if doc.Verified {
			verified++
		}
	}
	if submitted > 0 && submitted == verified {
		u.KYCStatus = KYCVerified
	} else {
		u.KYCStatus = KYCPending
	}
}
