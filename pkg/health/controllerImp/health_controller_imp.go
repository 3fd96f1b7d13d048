package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"conductor/entities"
)

var appStart = time.Now()

// ZoneCounter reports how many zones are loaded right now.
type ZoneCounter interface{ Len() int }

type HealthCtrl struct {
	db    *gorm.DB
	zones ZoneCounter
}

// NewHealthCtrl reports on db and on the zone table. Zones are counted per request so a
// reloaded zone file shows up.
func NewHealthCtrl(db *gorm.DB, zones ZoneCounter) *HealthCtrl {
	return &HealthCtrl{db: db, zones: zones}
}

type sub struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
	N   *int64 `json:"n,omitempty"`
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	db := sub{OK: true}
	catalog := sub{OK: true}
	if h.db == nil {
		db = sub{Err: "gorm db is nil"}
	} else if sqlDB, err := h.db.DB(); err != nil {
		db = sub{Err: "db.DB(): " + err.Error()}
	} else if err := sqlDB.PingContext(ctx); err != nil {
		db = sub{Err: "ping: " + err.Error()}
	}
	if db.OK {
		var n int64
		if err := h.db.WithContext(ctx).Model(&entities.Crop{}).Count(&n).Error; err != nil {
			catalog = sub{Err: err.Error()}
		} else {
			catalog.N = &n
			// an empty catalog serves requests but proposes nothing
			catalog.OK = n > 0
		}
	} else {
		catalog = sub{Err: "database down"}
	}
	var zones int64
	if h.zones != nil {
		zones = int64(h.zones.Len())
	}

	status := http.StatusOK
	if !db.OK {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, echo.Map{
		"status":     echo.Map{"ok": db.OK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": echo.Map{
			"database": db,
			"catalog":  catalog,
			"zones":    sub{OK: zones > 0, N: &zones},
		},
		"time": time.Now().Format(time.RFC3339),
	})
}
