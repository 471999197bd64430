package dto

type VehicleMileageResponse struct {
	VehicleID int     `json:"vehicle_id"`
	Mileage   float64 `json:"mileage"`
}

type MileageResponse struct {
	TotalMileage float64                  `json:"total_mileage"`
	Vehicles     []VehicleMileageResponse `json:"vehicles"`
}
