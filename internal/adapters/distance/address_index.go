package distance

import (
	"fmt"
	"parcel-delivery-sim/internal/domain"
	"strings"

	"golang.org/x/text/cases"
)

// AddressRow is one entry of the address table. Index is the row/column of
// the location in the distance table.
type AddressRow struct {
	Index  int
	Name   string
	Street string
}

// AddressIndex resolves street addresses to location indices.
//
// Resolution prefers an exact (whitespace and case normalized) street match.
// Failing that, the first row in table order whose street contains the
// query wins. Row order therefore decides ambiguous substring matches.
type AddressIndex struct {
	rows  []AddressRow
	exact map[string]int
}

func NewAddressIndex(rows []AddressRow) *AddressIndex {
	idx := &AddressIndex{
		rows:  make([]AddressRow, 0, len(rows)),
		exact: make(map[string]int, len(rows)),
	}
	for _, r := range rows {
		r.Street = normalize(r.Street)
		idx.rows = append(idx.rows, r)
		if _, dup := idx.exact[r.Street]; !dup && r.Street != "" {
			idx.exact[r.Street] = r.Index
		}
	}
	return idx
}

// normalize ensures consistent lookups by collapsing whitespace and case.
// A Caser holds state, so each call gets its own.
func normalize(s string) string {
	return cases.Fold().String(strings.Join(strings.Fields(s), " "))
}

func (a *AddressIndex) Resolve(addr domain.Address) (int, error) {
	q := normalize(addr.Street)
	if q == "" {
		return 0, fmt.Errorf("resolve address: empty street: %w", domain.ErrUnresolvableAddress)
	}

	if i, ok := a.exact[q]; ok {
		return i, nil
	}

	for _, r := range a.rows {
		if strings.Contains(r.Street, q) {
			return r.Index, nil
		}
	}

	return 0, fmt.Errorf("resolve address %q: %w", addr.Street, domain.ErrUnresolvableAddress)
}

func (a *AddressIndex) Len() int { return len(a.rows) }
