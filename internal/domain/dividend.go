package domain

import "time"

// Dividend Model
type Dividend struct {
	ID          uint      `gorm:"primaryKey"`           // Primary key
	UserID      uint      `gorm:"index;not null"`       // Foreign key to owning User
	AssetID     uint      `gorm:"index;not null"`       // Foreign key to the paying Asset
	PaymentDate time.Time `gorm:"not null"`             // Date the dividend was paid
	Amount      float64   `gorm:"not null"`             // Cash amount received
	Notes       string    // Free-form notes
	CreatedAt   int64     `gorm:"autoCreateTime:milli"` // Timestamp of creation in milliseconds
}
