package models

import "time"

// FertilizerPlan is append-only, like Scan.
type FertilizerPlan struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	FarmID *uint `json:"farm_id"`

	Crop string `gorm:"size:100;not null" json:"crop"`

	SoilN float64 `json:"soilN"`
	SoilP float64 `json:"soilP"`
	SoilK float64 `json:"soilK"`

	// Assembled display text, stored and returned verbatim.
	Recommendation string `gorm:"type:text" json:"recommendation"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
