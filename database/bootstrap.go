// database/bootstrap.go
package database

import (
	"fmt"
	"strings"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"conductor/entities"
)

// Open opens the sqlite file at path and migrates the schema.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.AutoMigrate(
		&entities.Crop{},
		&entities.Bed{},
		&entities.Planting{},
		&entities.BrixReading{},
	); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	// run after AutoMigrate so the bed overlay columns exist
	if err := migrateOverlayPlantings(db); err != nil {
		return nil, fmt.Errorf("migrate overlays: %w", err)
	}
	return db, nil
}

// migrateOverlayPlantings moves overlay rows that older databases stored in plantings
// onto the bed's overlay columns. Plantings only hold ground roles.
func migrateOverlayPlantings(db *gorm.DB) error {
	type colInfo struct {
		Cid  int
		Name string
		Type string
		Pk   int
	}
	var cols []colInfo
	if err := db.Raw(`PRAGMA table_info(plantings)`).Scan(&cols).Error; err != nil {
		return fmt.Errorf("table_info: %w", err)
	}
	hasRole := false
	for _, c := range cols {
		if strings.ToLower(c.Name) == "role" {
			hasRole = true
			break
		}
	}
	if !hasRole {
		return nil
	}

	var legacy []entities.Planting
	if err := db.Where("role IN ?", []entities.Role{entities.RoleInoculant, entities.RoleAerial}).Find(&legacy).Error; err != nil {
		return err
	}
	if len(legacy) == 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, p := range legacy {
			col := "inoculant_crop_id"
			if p.Role == entities.RoleAerial {
				col = "aerial_crop_id"
			}
			if err := tx.Model(&entities.Bed{}).
				Where("bed_id = ? AND ("+col+" = '' OR "+col+" IS NULL)", p.BedID).
				Update(col, p.CropID).Error; err != nil {
				return err
			}
			if err := tx.Delete(&entities.Planting{}, p.PlantingID).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
