package entities

import "time"

type Bed struct {
	BedID           uint      `gorm:"primaryKey" json:"bed_id"`
	UserID          string    `gorm:"index" json:"user_id"`
	Name            string    `json:"name"`
	Frequency       Frequency `json:"frequency"`
	InoculantCropID string    `json:"inoculant_crop_id,omitempty"`
	AerialCropID    string    `json:"aerial_crop_id,omitempty"`
	Brix            *float64  `json:"brix,omitempty"` // latest measured reading

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Planting commits a crop to one ground role of a bed.
type Planting struct {
	PlantingID uint   `gorm:"primaryKey" json:"planting_id"`
	BedID      uint   `gorm:"uniqueIndex:idx_bed_role" json:"bed_id"`
	Role       Role   `gorm:"uniqueIndex:idx_bed_role" json:"role"`
	CropID     string `gorm:"index" json:"crop_id"`
	PlantCount int    `json:"plant_count"`

	CreatedAt time.Time
}
