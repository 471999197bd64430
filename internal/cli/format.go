package cli

import (
	"fmt"
	"parcel-delivery-sim/internal/domain"
)

// StatusLine renders one parcel as seen at the query time.
func StatusLine(v domain.ParcelView) string {
	p := v.Parcel
	line := fmt.Sprintf(
		"Parcel ID: %d, Address: %s, City: %s, Zip: %s, Deadline: %s, Weight: %d lbs, Status: %s",
		p.ID, v.Destination.Street, v.Destination.City, v.Destination.Zip, p.Deadline, p.Weight, v.Status,
	)
	if v.Status.State != domain.StateAtDepot && p.VehicleID != 0 {
		line += fmt.Sprintf(", Vehicle: %d", p.VehicleID)
	}
	return line
}

func MileageLine(total float64) string {
	return fmt.Sprintf("Total mileage of all vehicles: %.2f miles", total)
}
