package models

import "time"

// MarketData mirrors the upstream price record shape. Prices are
// fetched live and proxied, so no route currently writes this table;
// the model is kept for parity with the declared schema.
type MarketData struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Commodity string  `gorm:"size:100;not null" json:"commodity"`
	Price     float64 `gorm:"not null" json:"price"`
	Location  string  `gorm:"size:255" json:"location"`
	Source    string  `gorm:"size:100" json:"source"`
	Timestamp time.Time `json:"timestamp"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
