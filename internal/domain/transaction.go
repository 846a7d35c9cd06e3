package domain

import "time"

// Transaction types
const (
	TradeBuy  = "buy"  // Purchase of an asset
	TradeSell = "sell" // Sale of an asset
)

// Transaction Model
type Transaction struct {
	ID        uint      `gorm:"primaryKey"`           // Primary key
	UserID    uint      `gorm:"index;not null"`       // Foreign key to owning User
	AssetID   uint      `gorm:"index;not null"`       // Foreign key to the traded Asset
	Type      string    `gorm:"not null"`             // Transaction type: buy or sell
	Quantity  float64   `gorm:"not null"`             // Number of units traded, positive
	UnitPrice float64   `gorm:"not null"`             // Price per unit, positive
	Fees      float64   `gorm:"not null;default:0"`   // Broker fees, >= 0
	Date      time.Time `gorm:"not null"`             // Trade date
	CreatedAt int64     `gorm:"autoCreateTime:milli"` // Timestamp of creation in milliseconds
}
