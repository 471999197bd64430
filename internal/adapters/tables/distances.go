package tables

import (
	"fmt"
	"parcel-delivery-sim/internal/adapters/distance"
	"strconv"
	"strings"
)

// ParseDistanceMatrix converts distance rows into numbers. Blank cells are
// zero; the oracle fills them from the symmetric counterpart. Trailing
// blank rows are dropped.
func ParseDistanceMatrix(rows [][]string) ([][]float64, error) {
	for len(rows) > 0 && blank(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}

	out := make([][]float64, 0, len(rows))
	for i, row := range rows {
		// Trailing empty cells are padding, not data.
		for len(row) > 0 && strings.TrimSpace(row[len(row)-1]) == "" {
			row = row[:len(row)-1]
		}

		vals := make([]float64, len(row))
		for j, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			f, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("parse distances: row %d col %d: %w", i+1, j+1, err)
			}
			vals[j] = f
		}
		out = append(out, vals)
	}
	return out, nil
}

// ParseAddresses reads address rows of the form [index, name, street] or
// [name, street]. The row position is the location index.
func ParseAddresses(rows [][]string) ([]distance.AddressRow, error) {
	out := make([]distance.AddressRow, 0, len(rows))
	for i, row := range rows {
		if blank(row) {
			continue
		}

		var name, street string
		switch {
		case len(row) >= 3:
			name, street = row[1], row[2]
		case len(row) == 2:
			name, street = row[0], row[1]
		default:
			return nil, fmt.Errorf("parse addresses: row %d: want at least 2 columns, got %d", i+1, len(row))
		}

		out = append(out, distance.AddressRow{
			Index:  len(out),
			Name:   strings.TrimSpace(name),
			Street: strings.TrimSpace(street),
		})
	}
	return out, nil
}

// LoadDistanceOracle reads and validates the distance table.
func LoadDistanceOracle(path, sheet string) (*distance.MatrixOracle, error) {
	rows, err := ReadRows(path, sheet)
	if err != nil {
		return nil, err
	}
	m, err := ParseDistanceMatrix(rows)
	if err != nil {
		return nil, fmt.Errorf("load distances %q: %w", path, err)
	}
	o, err := distance.NewMatrixOracle(m)
	if err != nil {
		return nil, fmt.Errorf("load distances %q: %w", path, err)
	}
	return o, nil
}

// LoadAddressIndex reads the address table.
func LoadAddressIndex(path, sheet string) (*distance.AddressIndex, error) {
	rows, err := ReadRows(path, sheet)
	if err != nil {
		return nil, err
	}
	addrs, err := ParseAddresses(rows)
	if err != nil {
		return nil, fmt.Errorf("load addresses %q: %w", path, err)
	}
	return distance.NewAddressIndex(addrs), nil
}
