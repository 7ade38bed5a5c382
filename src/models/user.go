package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"mrt/src/types"
)

type StringList []string

func (l StringList) Value() (driver.Value, error) {
	b, err := json.Marshal(l)
	return string(b), err
}
func (l *StringList) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return errors.New("type assertion to []byte failed")
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, l)
}

// FavoriteRoute is a denormalized snapshot of a Schedule saved on the user,
// deduplicated by ScheduleID.
type FavoriteRoute struct {
	ScheduleID    uint    `json:"scheduleId"`
	TrainName     string  `json:"trainName"`
	From          string  `json:"from"`
	To            string  `json:"to"`
	DepartureTime string  `json:"departureTime"`
	ArrivalTime   string  `json:"arrivalTime"`
	Price         float64 `json:"price"`
}

type FavoriteRouteList []FavoriteRoute

func (l FavoriteRouteList) Value() (driver.Value, error) {
	b, err := json.Marshal(l)
	return string(b), err
}
func (l *FavoriteRouteList) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return errors.New("type assertion to []byte failed")
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, l)
}

type User struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Name        string `json:"name"`
	Email       string `gorm:"uniqueIndex" json:"email"`
	Password    string `json:"-"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"dateOfBirth"`

	FavoriteStations StringList        `gorm:"type:jsonb;default:'[]'" json:"favoriteStations"`
	FavoriteRoutes   FavoriteRouteList `gorm:"type:jsonb;default:'[]'" json:"favoriteRoutes"`

	IsStudent                 bool                     `json:"isStudent"`
	StudentIdCard             string                   `json:"studentIdCard"`
	StudentSecondDocument     string                   `json:"studentSecondDocument"`
	StudentVerificationStatus types.VerificationStatus `gorm:"default:'none'" json:"studentVerificationStatus"`
	StudentVerificationExpiry *time.Time               `json:"studentVerificationExpiry"`

	WifiSubscriptionActive bool       `json:"wifiSubscriptionActive"`
	WifiSubscriptionExpiry *time.Time `json:"wifiSubscriptionExpiry"`
	WifiId                 string     `json:"wifiId"`
	WifiPassword           string     `json:"-"`

	Notifications []Notification `gorm:"foreignKey:UserEmail;references:Email" json:"notifications,omitempty"`

	types.Timestamps
}
