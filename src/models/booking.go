package models

import (
	"time"

	"mrt/src/types"
)

// Booking is a passenger's confirmed reservation for one trip. Trip fields
// are a snapshot of the Schedule at booking time. The composite unique index
// over (user_email, from, to, departure_time, arrival_time) is what enforces
// one-booking-per-route-per-passenger under concurrent requests; the
// check-then-act lookup in the create path only exists to produce a friendly
// conflict message.
type Booking struct {
	ID              uint                `gorm:"primarykey" json:"id"`
	TicketID        string              `gorm:"uniqueIndex" json:"ticketId"`
	TrainID         uint                `json:"trainId"`
	TrainName       string              `json:"trainName"`
	From            string              `gorm:"uniqueIndex:idx_passenger_route" json:"from"`
	To              string              `gorm:"uniqueIndex:idx_passenger_route" json:"to"`
	DepartureTime   string              `gorm:"uniqueIndex:idx_passenger_route" json:"departureTime"`
	ArrivalTime     string              `gorm:"uniqueIndex:idx_passenger_route" json:"arrivalTime"`
	Price           float64             `json:"price"`
	UserName        string              `gorm:"default:'Guest User'" json:"userName"`
	UserEmail       string              `gorm:"uniqueIndex:idx_passenger_route" json:"userEmail"`
	PaymentIntentId string              `json:"paymentIntentId"`
	BookingTime     time.Time           `gorm:"autoCreateTime" json:"bookingTime"`
	ExpiryDate      time.Time           `json:"expiryDate"`
	Status          types.BookingStatus `gorm:"default:'Pending'" json:"status"`
}
