package tables

import (
	"context"
	"fmt"
	"log"
	"parcel-delivery-sim/internal/domain"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ManifestRow is one parcel line as it appears in the manifest, after
// weights are normalized to whole units.
type ManifestRow struct {
	ID       int    `validate:"gt=0"`
	Street   string `validate:"required"`
	City     string `validate:"required"`
	State    string `validate:"required,alpha,len=2"`
	Zip      string `validate:"required,numeric"`
	Deadline string `validate:"required"`
	Weight   int    `validate:"gte=0"`
	Notes    string
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// delayedRe matches notes such as
// "Delayed on flight---will not arrive to depot until 9:05 am".
var delayedRe = regexp.MustCompile(`(?i)delayed.*until\s+(\d{1,2}):(\d{2})\s*(am|pm)?`)

// ParseWeight accepts "21", "21 Kilos" or "21kg" and returns 21.
func ParseWeight(s string) (int, error) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, fmt.Errorf("parse weight %q: no leading number", s)
	}
	return strconv.Atoi(s[:end])
}

// ReleaseFromNotes extracts the arrival time of a delayed parcel.
func ReleaseFromNotes(notes string) (domain.TimeOfDay, bool) {
	m := delayedRe.FindStringSubmatch(notes)
	if m == nil {
		return 0, false
	}
	h, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	switch strings.ToLower(m[3]) {
	case "pm":
		if h < 12 {
			h += 12
		}
	case "am":
		if h == 12 {
			h = 0
		}
	}
	if h > 23 || minute > 59 {
		return 0, false
	}
	return domain.At(h, minute, 0), true
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// parseManifestRow builds a validated row or reports why it cannot.
func parseManifestRow(row []string) (ManifestRow, error) {
	if len(row) < 7 {
		return ManifestRow{}, fmt.Errorf("want at least 7 columns, got %d", len(row))
	}

	id, err := strconv.Atoi(cell(row, 0))
	if err != nil {
		return ManifestRow{}, fmt.Errorf("parcel id: %w", err)
	}
	weight, err := ParseWeight(cell(row, 6))
	if err != nil {
		return ManifestRow{}, err
	}

	r := ManifestRow{
		ID:       id,
		Street:   cell(row, 1),
		City:     cell(row, 2),
		State:    cell(row, 3),
		Zip:      cell(row, 4),
		Deadline: cell(row, 5),
		Weight:   weight,
		Notes:    cell(row, 7),
	}
	if err := validate.Struct(r); err != nil {
		return ManifestRow{}, err
	}
	return r, nil
}

// Parcel converts a validated row into a parcel record at the depot.
func (r ManifestRow) Parcel() *domain.Parcel {
	p := &domain.Parcel{
		ID: r.ID,
		Destination: domain.Address{
			Street: r.Street,
			City:   r.City,
			State:  r.State,
			Zip:    r.Zip,
		},
		Deadline: r.Deadline,
		Weight:   r.Weight,
		Notes:    r.Notes,
	}
	if at, ok := ReleaseFromNotes(r.Notes); ok {
		p.ReleaseAt = &at
	}
	return p
}

// ParseManifest turns manifest rows into parcels. A header row is skipped
// when the first cell is not a number. Malformed rows are logged and
// skipped; they never produce a partial parcel.
func ParseManifest(rows [][]string) []*domain.Parcel {
	out := make([]*domain.Parcel, 0, len(rows))
	for i, row := range rows {
		if blank(row) {
			continue
		}
		if i == 0 {
			if _, err := strconv.Atoi(cell(row, 0)); err != nil {
				continue
			}
		}

		r, err := parseManifestRow(row)
		if err != nil {
			log.Printf("op=load_manifest row=%d skipped=true err=%v", i+1, err)
			continue
		}
		out = append(out, r.Parcel())
	}
	return out
}

// FileParcelRepository reads the manifest from a CSV or XLSX file.
type FileParcelRepository struct {
	Path  string
	Sheet string
}

func NewFileParcelRepository(path, sheet string) *FileParcelRepository {
	return &FileParcelRepository{Path: path, Sheet: sheet}
}

func (f *FileParcelRepository) ListParcels(ctx context.Context) ([]*domain.Parcel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := ReadRows(f.Path, f.Sheet)
	if err != nil {
		return nil, fmt.Errorf("list parcels: %w", err)
	}
	return ParseManifest(rows), nil
}
