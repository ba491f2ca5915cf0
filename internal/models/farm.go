package models

import "time"

type Farm struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OwnerID uint `gorm:"index;not null" json:"owner_id"`
	Owner   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Name string `gorm:"size:100;not null" json:"name"`

	LocationLat     float64 `json:"lat"`
	LocationLng     float64 `json:"lng"`
	LocationAddress string  `gorm:"size:255" json:"address"`

	AreaInAcres float64 `gorm:"default:0" json:"areaInAcres"`

	Crops []string `gorm:"serializer:json" json:"crops"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
