package domain

// Asset categories
const (
	CategoryStock  = "stock"  // Individual stock
	CategoryETF    = "etf"    // Exchange-traded fund
	CategoryCrypto = "crypto" // Cryptocurrency
	CategoryBond   = "bond"   // Bond
	CategoryFund   = "fund"   // Mutual fund
	CategoryCash   = "cash"   // Cash-like instrument
)

// Asset Model
type Asset struct {
	ID       uint   `gorm:"primaryKey"`     // Primary key
	UserID   uint   `gorm:"index;not null"` // Foreign key to owning User
	Ticker   string `gorm:"not null"`       // Ticker symbol, e.g. VWCE
	Name     string `gorm:"not null"`       // Display name
	Category string `gorm:"not null"`       // One of the category constants above
	// Deleting an asset cascades to its trades and dividends
	Transactions []Transaction `gorm:"constraint:OnDelete:CASCADE;"` // Trades referencing this asset
	Dividends    []Dividend    `gorm:"constraint:OnDelete:CASCADE;"` // Dividends referencing this asset
}

// IsValidCategory reports whether c is one of the supported asset categories
func IsValidCategory(c string) bool {
	switch c {
	case CategoryStock, CategoryETF, CategoryCrypto, CategoryBond, CategoryFund, CategoryCash:
		return true
	}
	return false
}
