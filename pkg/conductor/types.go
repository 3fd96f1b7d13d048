// Package conductor assigns crops to the interval roles of a garden bed, gates every
// pick through the conflict detector and scores the resulting voicing.
//
// Everything here is a pure function over values passed in by the caller. Persistence,
// HTTP and logging live in the packages that call it.
package conductor

import "conductor/entities"

// ConflictKind is the dimension a verdict was classified under.
type ConflictKind string

const (
	ConflictNone         ConflictKind = "none"
	ConflictFrequency    ConflictKind = "frequency"
	ConflictNutritional  ConflictKind = "nutritional"
	ConflictStructural   ConflictKind = "structural"
	ConflictPathological ConflictKind = "pathological"
	ConflictVibrational  ConflictKind = "vibrational"
)

type Severity string

const (
	SeverityNone    Severity = "none"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Verdict is the outcome of one CheckConflict call. It is never persisted.
type Verdict struct {
	Blocks        bool         `json:"blocks"`
	Severity      Severity     `json:"severity"`
	Kind          ConflictKind `json:"kind"`
	Message       string       `json:"message"`
	ConflictsWith string       `json:"conflicts_with,omitempty"`
}

// IsConflict reports whether any dimension matched.
func (v Verdict) IsConflict() bool { return v.Kind != ConflictNone }

// NoConflict is the verdict for a clean candidate.
func NoConflict() Verdict {
	return Verdict{Severity: SeverityNone, Kind: ConflictNone}
}

// MixSetting is the per-zone soil mix record supplied by the zone collaborator.
type MixSetting struct {
	Name  string `json:"name"`
	Blend string `json:"blend"`
	Notes string `json:"notes,omitempty"`
}

// Zone is the display metadata for one frequency.
type Zone struct {
	Frequency entities.Frequency `json:"frequency"`
	Label     string             `json:"label"`
	Mix       *MixSetting        `json:"mix,omitempty"`
}

// ZoneLookup resolves zone metadata by frequency. Implementations must be read-only.
type ZoneLookup interface {
	Zone(f entities.Frequency) (Zone, bool)
}

// Slot is one filled role in a proposed chord.
type Slot struct {
	Crop       entities.Crop `json:"crop"`
	PlantCount int           `json:"plant_count"`
}

// ChordAssignment is the generator's proposal for a bed. Nil slots are unfilled.
type ChordAssignment struct {
	Frequency   entities.Frequency `json:"frequency"`
	ZoneLabel   string             `json:"zone_label"`
	MixSetting  *MixSetting        `json:"mix_setting,omitempty"`
	TotalPlants int                `json:"total_plants"`

	Root    *Slot `json:"root,omitempty"`
	Third   *Slot `json:"third,omitempty"`
	Fifth   *Slot `json:"fifth,omitempty"`
	Seventh *Slot `json:"seventh,omitempty"`

	Inoculant *Slot `json:"inoculant,omitempty"`
	Aerial    *Slot `json:"aerial,omitempty"`

	Complete    bool `json:"complete"`
	FullVoicing bool `json:"full_voicing"`
}

// Slot returns the slot for role, or nil.
func (a *ChordAssignment) Slot(role entities.Role) *Slot {
	switch role {
	case entities.RoleRoot:
		return a.Root
	case entities.RoleThird:
		return a.Third
	case entities.RoleFifth:
		return a.Fifth
	case entities.RoleSeventh:
		return a.Seventh
	case entities.RoleInoculant:
		return a.Inoculant
	case entities.RoleAerial:
		return a.Aerial
	}
	return nil
}

func (a *ChordAssignment) setSlot(role entities.Role, s *Slot) {
	switch role {
	case entities.RoleRoot:
		a.Root = s
	case entities.RoleThird:
		a.Third = s
	case entities.RoleFifth:
		a.Fifth = s
	case entities.RoleSeventh:
		a.Seventh = s
	case entities.RoleInoculant:
		a.Inoculant = s
	case entities.RoleAerial:
		a.Aerial = s
	}
}

// GroundFilled counts the filled ground roles.
func (a *ChordAssignment) GroundFilled() int {
	n := 0
	for _, r := range entities.GroundRoles() {
		if a.Slot(r) != nil {
			n++
		}
	}
	return n
}

// OverlaysFilled counts the filled overlay slots.
func (a *ChordAssignment) OverlaysFilled() int {
	n := 0
	for _, r := range entities.OverlayRoles() {
		if a.Slot(r) != nil {
			n++
		}
	}
	return n
}

// Voicing scores the proposal as if it were committed.
func (a *ChordAssignment) Voicing() Voicing {
	return Score(a.GroundFilled(), a.OverlaysFilled())
}

func (a *ChordAssignment) finalize() {
	a.TotalPlants = 0
	for _, r := range entities.GroundRoles() {
		if s := a.Slot(r); s != nil {
			a.TotalPlants += s.PlantCount
		}
	}
	a.Complete = a.GroundFilled() == len(entities.GroundRoles())
	a.FullVoicing = a.Complete && a.OverlaysFilled() == len(entities.OverlayRoles())
}
