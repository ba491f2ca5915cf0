package models

import "time"

// ScanResult is the classified outcome of one disease inference.
// Confidence is stored as a 0–1 fraction; percentage inputs are
// normalized before they reach the store.
type ScanResult struct {
	Disease         string   `json:"disease"`
	Confidence      float64  `json:"confidence"`
	Type            string   `gorm:"size:20" json:"type"`
	Severity        string   `gorm:"size:20" json:"severity"`
	Fertilizer      string   `gorm:"size:100" json:"fertilizer"`
	Recommendations []string `gorm:"serializer:json" json:"recommendations"`
}

// Scan is append-only: no update or delete route exists for it.
type Scan struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	// Advisory reference only. Deleting a farm neither cascades here
	// nor is rejected.
	FarmID *uint `json:"farm_id"`

	ImageURL string `gorm:"type:text" json:"imageUrl"`

	Result ScanResult `gorm:"embedded;embeddedPrefix:result_" json:"result"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
