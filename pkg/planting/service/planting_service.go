package service

import (
	"errors"

	"conductor/entities"
	"conductor/pkg/conductor"
)

var (
	ErrRoleTaken        = errors.New("role already filled")
	ErrRoleEmpty        = errors.New("role not filled")
	ErrAlreadyPlanted   = errors.New("crop already committed to this bed")
	ErrConflictBlocked  = errors.New("conflict blocks planting")
	ErrOverrideRequired = errors.New("override_required")
	ErrInvalidRole      = errors.New("invalid role")
)

// GateError carries the verdict that stopped an accept.
type GateError struct {
	Err     error
	Verdict conductor.Verdict
}

func (e *GateError) Error() string { return e.Err.Error() + ": " + e.Verdict.Message }
func (e *GateError) Unwrap() error { return e.Err }

type AcceptRequest struct {
	CropID   string `json:"crop_id"`
	Role     string `json:"role"`
	Override bool   `json:"override"`
}

// OverlayRequest replaces the bed's overlays. A nil field keeps the current crop, an
// empty string clears the slot.
type OverlayRequest struct {
	InoculantCropID *string `json:"inoculant_crop_id"`
	AerialCropID    *string `json:"aerial_crop_id"`
	Override        bool    `json:"override"`
}

type Accepted struct {
	Role     entities.Role       `json:"role"`
	Crop     entities.Crop       `json:"crop"`
	Planting *entities.Planting  `json:"planting,omitempty"`
	Verdicts []conductor.Verdict `json:"verdicts"`
}

type VoicingReport struct {
	BedID           uint                     `json:"bed_id"`
	Frequency       entities.Frequency       `json:"frequency"`
	ZoneLabel       string                   `json:"zone_label"`
	Voicing         conductor.Voicing        `json:"voicing"`
	Effects         conductor.DerivedEffects `json:"effects"`
	Plantings       []entities.Planting      `json:"plantings"`
	InoculantCropID string                   `json:"inoculant_crop_id,omitempty"`
	AerialCropID    string                   `json:"aerial_crop_id,omitempty"`
}

type PlantingService interface {
	Candidates(bedID uint, uid string, role string) ([]conductor.Candidate, error)
	Check(bedID uint, uid string, req AcceptRequest) ([]conductor.Verdict, error)
	Accept(bedID uint, uid string, req AcceptRequest) (*Accepted, error)
	Remove(bedID uint, uid string, role string) error
	SetOverlays(bedID uint, uid string, req OverlayRequest) (*entities.Bed, []conductor.Verdict, error)
	Propose(bedID uint, uid string, rootCropID string) (*conductor.ChordAssignment, error)
	Voicing(bedID uint, uid string) (*VoicingReport, error)
}
