package domain

// User Model
type User struct {
	ID       uint   `gorm:"primaryKey"`      // Primary key
	Username string `gorm:"unique;not null"` // Unique username
	Password string `gorm:"not null"`        // Hashed password
	// Owned rows; deleting a user cascades to everything they recorded
	Assets        []Asset        `gorm:"constraint:OnDelete:CASCADE;"` // Assets owned by the user
	CashMovements []CashMovement `gorm:"constraint:OnDelete:CASCADE;"` // Cash movements owned by the user
}
