package domain

import "time"

// Cash movement types
const (
	CashDeposit  = "deposit"  // Capital added to the portfolio
	CashWithdraw = "withdraw" // Capital taken out of the portfolio
)

// CashMovement Model
type CashMovement struct {
	ID        uint      `gorm:"primaryKey"`           // Primary key
	UserID    uint      `gorm:"index;not null"`       // Foreign key to owning User
	Type      string    `gorm:"not null"`             // Movement type: deposit or withdraw
	Amount    float64   `gorm:"not null"`             // Amount moved, positive
	Date      time.Time `gorm:"not null"`             // Date of the movement
	CreatedAt int64     `gorm:"autoCreateTime:milli"` // Timestamp of creation in milliseconds
}
