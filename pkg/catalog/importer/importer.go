// Package importer turns crop sheets (CSV, XLSX, YAML or an HTML table) into catalog rows.
// Rows that cannot be read are skipped and logged; they never abort an import.
package importer

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"conductor/entities"
	"conductor/pkg/sheet"
)

// Result is the outcome of one import. Crop.Ord is the position within the source;
// the catalog service rebases it onto the existing catalog.
type Result struct {
	Crops   []entities.Crop `json:"crops"`
	Skipped []string        `json:"skipped,omitempty"`
}

func (r *Result) skip(log *zap.Logger, where, why string) {
	r.Skipped = append(r.Skipped, where+": "+why)
	log.Warn("catalog row skipped", zap.String("row", where), zap.String("reason", why))
}

// record is one crop as written in a source, before validation.
type record struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	Frequency  string   `yaml:"frequency"`
	Role       string   `yaml:"role"`
	Category   string   `yaml:"category"`
	Spacing    string   `yaml:"spacing_in"`
	Tags       []string `yaml:"conflict_tags"`
	Instrument string   `yaml:"instrument"`
}

// NameID is the id given to a row without one. It is derived from the name, so the
// same sheet imported twice updates the same crops.
func NameID(name string) string {
	key := strings.Join(strings.Fields(strings.ToLower(name)), " ")
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("crop:"+key)).String()
}

func (rec record) crop() (entities.Crop, error) {
	c := entities.Crop{
		CropID:     strings.TrimSpace(rec.ID),
		Name:       strings.TrimSpace(rec.Name),
		Instrument: strings.TrimSpace(rec.Instrument),
	}
	if c.Name == "" {
		return c, fmt.Errorf("name is required")
	}
	if c.CropID == "" {
		c.CropID = NameID(c.Name)
	}
	if s := strings.TrimSpace(rec.Frequency); s != "" {
		f, ok := entities.ParseFrequency(s)
		if !ok {
			return c, fmt.Errorf("unknown frequency %q", s)
		}
		c.Frequency = f
	}
	role, ok := entities.ParseRole(rec.Role)
	if !ok {
		return c, fmt.Errorf("unknown role %q", rec.Role)
	}
	if role == entities.RoleInoculant || role == entities.RoleAerial {
		// a crop's preferred role is never a specific overlay slot
		role = entities.RoleOverlay
	}
	c.Role = role
	cat, ok := entities.ParseCategory(rec.Category)
	if !ok {
		return c, fmt.Errorf("unknown category %q", rec.Category)
	}
	c.Category = cat
	if s := strings.TrimSpace(rec.Spacing); s != "" {
		v, err := strconv.ParseFloat(strings.TrimSuffix(strings.ToLower(s), "in"), 64)
		if err != nil || v < 0 {
			return c, fmt.Errorf("bad spacing %q", s)
		}
		c.SpacingIn = v
	}
	for _, t := range rec.Tags {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			c.ConflictTags = append(c.ConflictTags, t)
		}
	}
	return c, nil
}

func splitTags(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == '|' || r == ',' })
}

// FromRows reads a header row followed by crop rows.
func FromRows(rows [][]string, log *zap.Logger) (Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var res Result
	if len(rows) == 0 {
		return res, nil
	}
	h := sheet.NewHeader(rows[0])
	cID := h.Find("crop_id", "id", "cropid")
	cName := h.Find("name", "crop", "crop_name")
	cFreq := h.Find("frequency", "freq", "hz", "target_frequency")
	cRole := h.Find("role", "preferred_role", "interval")
	cCat := h.Find("category", "type", "habit")
	cSpacing := h.Find("spacing_in", "spacing", "spacing_inches")
	cTags := h.Find("conflict_tags", "tags", "conflicts")
	cInst := h.Find("instrument")
	for name, idx := range map[string]int{"name": cName, "role": cRole, "category": cCat} {
		if idx == -1 {
			return res, fmt.Errorf("crop sheet missing %s column. Found headers: %v", name, rows[0])
		}
	}

	for i, row := range rows[1:] {
		if allBlank(row) {
			continue
		}
		rec := record{
			ID:         sheet.Cell(row, cID),
			Name:       sheet.Cell(row, cName),
			Frequency:  sheet.Cell(row, cFreq),
			Role:       sheet.Cell(row, cRole),
			Category:   sheet.Cell(row, cCat),
			Spacing:    sheet.Cell(row, cSpacing),
			Tags:       splitTags(sheet.Cell(row, cTags)),
			Instrument: sheet.Cell(row, cInst),
		}
		c, err := rec.crop()
		if err != nil {
			res.skip(log, fmt.Sprintf("row %d", i+2), err.Error())
			continue
		}
		c.Ord = len(res.Crops)
		res.Crops = append(res.Crops, c)
	}
	return res, nil
}

func allBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// FromYAML reads a `crops:` list.
func FromYAML(data []byte, log *zap.Logger) (Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var doc struct {
		Crops []record `yaml:"crops"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Result{}, fmt.Errorf("unmarshal crops: %w", err)
	}
	var res Result
	for i, rec := range doc.Crops {
		c, err := rec.crop()
		if err != nil {
			res.skip(log, fmt.Sprintf("crops[%d]", i), err.Error())
			continue
		}
		c.Ord = len(res.Crops)
		res.Crops = append(res.Crops, c)
	}
	return res, nil
}

// FromReader dispatches on the file name's extension.
func FromReader(name string, r io.Reader, log *zap.Logger) (Result, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		data, err := io.ReadAll(r)
		if err != nil {
			return Result{}, err
		}
		return FromYAML(data, log)
	case ".csv":
		rows, err := sheet.ReadCSV(r)
		if err != nil {
			return Result{}, err
		}
		return FromRows(rows, log)
	case ".xlsx", ".xlsm":
		rows, err := sheet.ReadXLSX(r)
		if err != nil {
			return Result{}, err
		}
		return FromRows(rows, log)
	case ".html", ".htm":
		return FromHTML(r, log)
	}
	return Result{}, fmt.Errorf("%w: %s", sheet.ErrUnsupported, name)
}

// FromFile opens path and imports it by extension.
func FromFile(path string, log *zap.Logger) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", path, err)
	}
	return FromReader(path, bytes.NewReader(data), log)
}
