package entities

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Frequency is the zone a bed is tuned to, in Hz. Zero means missing.
type Frequency int

const (
	Freq396 Frequency = 396
	Freq417 Frequency = 417
	Freq528 Frequency = 528
	Freq639 Frequency = 639
	Freq741 Frequency = 741
	Freq852 Frequency = 852
)

func Frequencies() []Frequency {
	return []Frequency{Freq396, Freq417, Freq528, Freq639, Freq741, Freq852}
}

func (f Frequency) Valid() bool {
	for _, v := range Frequencies() {
		if f == v {
			return true
		}
	}
	return false
}

func (f Frequency) String() string { return strconv.Itoa(int(f)) + " Hz" }

// ParseFrequency accepts "528", "528hz" or "528 Hz".
func ParseFrequency(s string) (Frequency, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimSpace(strings.TrimSuffix(s, "hz"))
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	f := Frequency(n)
	return f, f.Valid()
}

// UnmarshalJSON accepts 528, "528" or "528 Hz". Null and "" decode to zero.
func (f *Frequency) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, ok := ParseFrequency(s)
	if !ok {
		return fmt.Errorf("unknown frequency %s", b)
	}
	*f = v
	return nil
}

// Role is an interval slot in a bed. Root..Seventh are ground roles; Inoculant and
// Aerial are overlay slots. RoleOverlay is only used as a crop's preferred role.
type Role string

const (
	RoleRoot      Role = "root"
	RoleThird     Role = "third"
	RoleFifth     Role = "fifth"
	RoleSeventh   Role = "seventh"
	RoleOverlay   Role = "overlay"
	RoleInoculant Role = "inoculant"
	RoleAerial    Role = "aerial"
)

func GroundRoles() []Role { return []Role{RoleRoot, RoleThird, RoleFifth, RoleSeventh} }

func OverlayRoles() []Role { return []Role{RoleInoculant, RoleAerial} }

func (r Role) IsGround() bool {
	switch r {
	case RoleRoot, RoleThird, RoleFifth, RoleSeventh:
		return true
	}
	return false
}

func (r Role) IsOverlay() bool { return r == RoleInoculant || r == RoleAerial }

// ParseRole normalizes common spellings ("3rd", "Fifth", "fungal").
func ParseRole(s string) (Role, bool) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "root", "1", "1st", "tonic":
		return RoleRoot, true
	case "third", "3", "3rd":
		return RoleThird, true
	case "fifth", "5", "5th":
		return RoleFifth, true
	case "seventh", "7", "7th":
		return RoleSeventh, true
	case "overlay", "overlay-eligible":
		return RoleOverlay, true
	case "inoculant", "fungal", "fungal-network":
		return RoleInoculant, true
	case "aerial", "overstory", "canopy":
		return RoleAerial, true
	}
	return "", false
}

type Category string

const (
	CategoryAnnual    Category = "annual"
	CategoryPerennial Category = "perennial"
	CategoryTree      Category = "tree"
	CategoryShrub     Category = "shrub"
	CategoryVine      Category = "vine"
	CategoryFungal    Category = "fungal"
)

func ParseCategory(s string) (Category, bool) {
	c := Category(strings.TrimSpace(strings.ToLower(s)))
	switch c {
	case CategoryAnnual, CategoryPerennial, CategoryTree, CategoryShrub, CategoryVine, CategoryFungal:
		return c, true
	}
	return "", false
}

type Crop struct {
	CropID       string    `gorm:"primaryKey" json:"crop_id"`
	Ord          int       `gorm:"index" json:"ord"`
	Name         string    `json:"name"`
	Frequency    Frequency `gorm:"index" json:"frequency"`
	Role         Role      `gorm:"index" json:"role"` // preferred role
	Category     Category  `json:"category"`          // annual|perennial|tree|shrub|vine|fungal
	SpacingIn    float64   `json:"spacing_in"`
	ConflictTags []string  `gorm:"serializer:json" json:"conflict_tags,omitempty"` // dimension:value
	Instrument   string    `json:"instrument,omitempty"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
