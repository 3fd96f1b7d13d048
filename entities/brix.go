package entities

import "time"

type BrixReading struct {
	ReadingID uint      `gorm:"primaryKey" json:"reading_id"`
	BedID     uint      `gorm:"index" json:"bed_id"`
	Date      time.Time `json:"date"`
	Brix      float64   `json:"brix"`
	Note      string    `json:"note"`
	CreatedAt time.Time
}
