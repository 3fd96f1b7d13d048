// Package zone holds the per-frequency display metadata (label and soil mix) that the
// chord generator copies into its proposals.
package zone

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"conductor/entities"
	"conductor/pkg/conductor"
	"conductor/pkg/sheet"
)

// Table is a frequency → zone lookup. Reads are safe while Watch swaps in a reloaded file.
type Table struct {
	mu    sync.RWMutex
	zones map[entities.Frequency]conductor.Zone
}

var _ conductor.ZoneLookup = (*Table)(nil)

func (t *Table) Zone(f entities.Frequency) (conductor.Zone, bool) {
	if t == nil {
		return conductor.Zone{}, false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	z, ok := t.zones[f]
	return z, ok
}

// Len is the number of zones currently loaded.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.zones)
}

// All returns the zones ordered by frequency.
func (t *Table) All() []conductor.Zone {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]conductor.Zone, 0, len(t.zones))
	for _, z := range t.zones {
		out = append(out, z)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Frequency < out[j].Frequency })
	return out
}

func mix(name, blend, notes string) *conductor.MixSetting {
	return &conductor.MixSetting{Name: name, Blend: blend, Notes: notes}
}

// Defaults is the built-in table used when no zone file is configured.
func Defaults() *Table {
	return &Table{zones: map[entities.Frequency]conductor.Zone{
		entities.Freq396: {Frequency: entities.Freq396, Label: "Grounding", Mix: mix("Grounding loam", "3 topsoil : 1 compost : 1 sand", "deep beds for root crops")},
		entities.Freq417: {Frequency: entities.Freq417, Label: "Renewal", Mix: mix("Renewal mulch", "2 compost : 1 leaf mould : 1 topsoil", "")},
		entities.Freq528: {Frequency: entities.Freq528, Label: "Heart", Mix: mix("Heart blend", "2 topsoil : 1 compost : 1 worm castings", "")},
		entities.Freq639: {Frequency: entities.Freq639, Label: "Connection", Mix: mix("Connection blend", "1 topsoil : 1 compost : 1 coir", "")},
		entities.Freq741: {Frequency: entities.Freq741, Label: "Cleansing", Mix: mix("Cleansing grit", "2 topsoil : 1 grit : 1 compost", "sharp drainage")},
		entities.Freq852: {Frequency: entities.Freq852, Label: "Intuition", Mix: mix("Intuition humus", "1 topsoil : 2 compost : 1 biochar", "")},
	}}
}

type fileZone struct {
	Frequency int    `yaml:"frequency"`
	Label     string `yaml:"label"`
	Mix       *struct {
		Name  string `yaml:"name"`
		Blend string `yaml:"blend"`
		Notes string `yaml:"notes"`
	} `yaml:"mix"`
}

type fileTable struct {
	Zones []fileZone `yaml:"zones"`
}

// LoadFile reads zones from a YAML, CSV or XLSX file and lays them over the defaults.
// Rows with an unknown frequency are skipped.
func LoadFile(path string) (*Table, error) {
	t := Defaults()
	if path == "" {
		return t, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		var ft fileTable
		if err := yaml.Unmarshal(data, &ft); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", path, err)
		}
		for _, fz := range ft.Zones {
			z := conductor.Zone{Frequency: entities.Frequency(fz.Frequency), Label: fz.Label}
			if fz.Mix != nil {
				z.Mix = mix(fz.Mix.Name, fz.Mix.Blend, fz.Mix.Notes)
			}
			t.put(z)
		}
		return t, nil
	}

	rows, err := sheet.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return t, nil
	}
	h := sheet.NewHeader(rows[0])
	cFreq := h.Find("frequency", "freq", "hz", "zone")
	cLabel := h.Find("label", "name", "zone_label")
	cMix := h.Find("mix", "mix_name", "mix_setting")
	cBlend := h.Find("blend", "mix_blend", "ratio")
	cNotes := h.Find("notes", "mix_notes", "note")
	if cFreq == -1 {
		return nil, fmt.Errorf("%s missing frequency column. Found headers: %v", path, rows[0])
	}
	for _, row := range rows[1:] {
		f, ok := entities.ParseFrequency(sheet.Cell(row, cFreq))
		if !ok {
			continue
		}
		z := conductor.Zone{Frequency: f, Label: sheet.Cell(row, cLabel)}
		if name := sheet.Cell(row, cMix); name != "" || sheet.Cell(row, cBlend) != "" {
			z.Mix = mix(name, sheet.Cell(row, cBlend), sheet.Cell(row, cNotes))
		}
		t.put(z)
	}
	return t, nil
}

func (t *Table) replace(next *Table) {
	next.mu.RLock()
	zones := next.zones
	next.mu.RUnlock()
	t.mu.Lock()
	t.zones = zones
	t.mu.Unlock()
}

// put is only called while a table is being built.
func (t *Table) put(z conductor.Zone) {
	if !z.Frequency.Valid() {
		return
	}
	prev := t.zones[z.Frequency]
	if z.Label == "" {
		z.Label = prev.Label
	}
	if z.Label == "" {
		z.Label = strconv.Itoa(int(z.Frequency)) + " Hz"
	}
	if z.Mix == nil {
		z.Mix = prev.Mix
	}
	t.zones[z.Frequency] = z
}
