package conductor

import (
	"fmt"
	"strings"

	"conductor/entities"
)

// tagKinds maps the prefixes accepted in Crop.ConflictTags to their dimension.
var tagKinds = map[string]ConflictKind{
	"nutritional":  ConflictNutritional,
	"nutrient":     ConflictNutritional,
	"structural":   ConflictStructural,
	"structure":    ConflictStructural,
	"pathological": ConflictPathological,
	"pest":         ConflictPathological,
	"disease":      ConflictPathological,
	"vibrational":  ConflictVibrational,
	"vibration":    ConflictVibrational,
}

type pairCheck struct {
	kind  ConflictKind
	match func(candidate, other entities.Crop) (string, bool)
}

// pairChecks run in priority order after the frequency gate.
var pairChecks = []pairCheck{
	{ConflictNutritional, nutritionalMatch},
	{ConflictStructural, structuralMatch},
	{ConflictPathological, pathologicalMatch},
}

// CheckConflict classifies candidate against the crops already committed to a bed tuned
// to freq, for placement in role. The first matching dimension wins:
// frequency, nutritional, structural, pathological, vibrational.
//
// Only a frequency mismatch without override blocks. Everything else is a warning the
// caller may accept. Missing candidate data is reported as a frequency error.
func CheckConflict(candidate entities.Crop, committed []entities.Crop, freq entities.Frequency, role entities.Role, override bool) Verdict {
	if v, ok := frequencyVerdict(candidate, freq, role, override); ok {
		return v
	}

	for _, pc := range pairChecks {
		for _, other := range committed {
			if other.CropID == candidate.CropID {
				continue
			}
			if msg, ok := pc.match(candidate, other); ok {
				return warning(pc.kind, msg, other.CropID)
			}
		}
	}

	if !fitsRole(candidate, role) {
		return warning(ConflictVibrational,
			fmt.Sprintf("%s prefers the %s role but is placed as %s", label(candidate), candidate.Role, role), "")
	}
	for _, other := range committed {
		if other.CropID == candidate.CropID {
			continue
		}
		if v, ok := sharedTag(candidate, other, ConflictVibrational); ok {
			return warning(ConflictVibrational,
				fmt.Sprintf("%s and %s resonate on %q", label(candidate), label(other), v), other.CropID)
		}
	}

	return NoConflict()
}

// CheckAll runs CheckConflict once per committed crop, which is how the planting surface
// gets exhaustive pairwise verdicts. The frequency verdict, if any, is returned alone.
func CheckAll(candidate entities.Crop, committed []entities.Crop, freq entities.Frequency, role entities.Role, override bool) []Verdict {
	if v, ok := frequencyVerdict(candidate, freq, role, override); ok {
		return []Verdict{v}
	}
	if len(committed) == 0 {
		return []Verdict{CheckConflict(candidate, nil, freq, role, override)}
	}
	out := make([]Verdict, 0, len(committed))
	for _, other := range committed {
		out = append(out, CheckConflict(candidate, []entities.Crop{other}, freq, role, override))
	}
	return out
}

// Worst picks the most severe verdict, keeping the earliest on ties.
func Worst(vs []Verdict) Verdict {
	worst := NoConflict()
	for _, v := range vs {
		if severityRank(v.Severity) > severityRank(worst.Severity) {
			worst = v
		}
	}
	return worst
}

func severityRank(s Severity) int {
	switch s {
	case SeverityError:
		return 2
	case SeverityWarning:
		return 1
	}
	return 0
}

func frequencyVerdict(c entities.Crop, freq entities.Frequency, role entities.Role, override bool) (Verdict, bool) {
	if c.CropID == "" || c.Frequency <= 0 {
		return Verdict{
			Blocks:   true,
			Severity: SeverityError,
			Kind:     ConflictFrequency,
			Message:  fmt.Sprintf("%s has no target frequency", label(c)),
		}, true
	}
	if c.Frequency == freq {
		return Verdict{}, false
	}
	if role.IsOverlay() && zoneAgnostic(c, role) {
		return Verdict{}, false
	}
	msg := fmt.Sprintf("%s is tuned to %s, bed is %s", label(c), c.Frequency, freq)
	if override {
		return Verdict{
			Severity: SeverityWarning,
			Kind:     ConflictFrequency,
			Message:  msg + " (override)",
		}, true
	}
	return Verdict{
		Blocks:   true,
		Severity: SeverityError,
		Kind:     ConflictFrequency,
		Message:  msg,
	}, true
}

func nutritionalMatch(c, other entities.Crop) (string, bool) {
	v, ok := sharedTag(c, other, ConflictNutritional)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%s and %s both draw heavily on %s", label(c), label(other), v), true
}

func structuralMatch(c, other entities.Crop) (string, bool) {
	if c.Category == entities.CategoryTree && other.Category == entities.CategoryTree {
		return fmt.Sprintf("%s and %s are both trees competing for canopy", label(c), label(other)), true
	}
	v, ok := sharedTag(c, other, ConflictStructural)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%s would crowd %s (%s)", label(c), label(other), v), true
}

func pathologicalMatch(c, other entities.Crop) (string, bool) {
	v, ok := sharedTag(c, other, ConflictPathological)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%s and %s share susceptibility to %s", label(c), label(other), v), true
}

func warning(kind ConflictKind, msg, with string) Verdict {
	return Verdict{
		Severity:      SeverityWarning,
		Kind:          kind,
		Message:       msg,
		ConflictsWith: with,
	}
}

// sharedTag returns the first tag value of kind, in a's declaration order, that b also
// declares.
func sharedTag(a, b entities.Crop, kind ConflictKind) (string, bool) {
	theirs := tagValues(b, kind)
	if len(theirs) == 0 {
		return "", false
	}
	for _, t := range a.ConflictTags {
		k, v, ok := parseTag(t)
		if ok && k == kind && theirs[v] {
			return v, true
		}
	}
	return "", false
}

func tagValues(c entities.Crop, kind ConflictKind) map[string]bool {
	var out map[string]bool
	for _, t := range c.ConflictTags {
		k, v, ok := parseTag(t)
		if !ok || k != kind {
			continue
		}
		if out == nil {
			out = map[string]bool{}
		}
		out[v] = true
	}
	return out
}

// parseTag splits "dimension:value". Unknown dimensions are ignored.
func parseTag(tag string) (ConflictKind, string, bool) {
	prefix, value, ok := strings.Cut(tag, ":")
	if !ok {
		return "", "", false
	}
	kind, known := tagKinds[strings.ToLower(strings.TrimSpace(prefix))]
	value = strings.ToLower(strings.TrimSpace(value))
	if !known || value == "" {
		return "", "", false
	}
	return kind, value, true
}

func label(c entities.Crop) string {
	if c.Name != "" {
		return c.Name
	}
	if c.CropID != "" {
		return c.CropID
	}
	return "unknown crop"
}
