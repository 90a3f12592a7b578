package models

import "time"

// MaxVerificationAttempts is the number of wrong codes tolerated before a
// verification code is burned.
const MaxVerificationAttempts = 5

// VerificationCodeTTL is how long a code stays redeemable after issuance.
const VerificationCodeTTL = 24 * time.Hour

// VerificationCode is a short-lived 6-digit email verification challenge.
type VerificationCode struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Email     string    `gorm:"not null" json:"email"`
	Code      string    `gorm:"not null" json:"-"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
	Attempts  int       `gorm:"default:0" json:"attempts"`
	Verified  bool      `gorm:"default:false" json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}

// Usable reports whether the code can still be redeemed at the given time.
func (v *VerificationCode) Usable(now time.Time) bool {
	return !v.Verified && v.Attempts < MaxVerificationAttempts && now.Before(v.ExpiresAt)
}
