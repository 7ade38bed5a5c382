package models

import "mrt/src/types"

// Schedule is an administrator-defined trip template. Bookings reference it
// but keep their own denormalized copy of every field, so deleting a
// Schedule never cascades.
type Schedule struct {
	ID            uint    `gorm:"primarykey" json:"id"`
	TrainName     string  `json:"trainName"`
	From          string  `json:"from"`
	To            string  `json:"to"`
	DepartureTime string  `json:"departureTime"`
	ArrivalTime   string  `json:"arrivalTime"`
	Price         float64 `json:"price"`

	types.Timestamps
}
