package dto

type AddressResponse struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

type ParcelStatusResponse struct {
	ParcelID      int             `json:"parcel_id"`
	Destination   AddressResponse `json:"destination"`
	Deadline      string          `json:"deadline"`
	Weight        int             `json:"weight"`
	Notes         string          `json:"notes,omitempty"`
	VehicleID     int             `json:"vehicle_id,omitempty"`
	Status        string          `json:"status"`
	DepartureTime *string         `json:"departure_time"`
	DeliveryTime  *string         `json:"delivery_time"`
}

type ListParcelStatusResponse struct {
	At      string                 `json:"at"`
	Parcels []ParcelStatusResponse `json:"parcels"`
}
