package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type Metadata map[string]any

// BookingStatus carries two overlapping vocabularies: the automatic payment
// path writes BOOKING_CONFIRMED and treats it as authoritative, while
// Pending/Approved/Rejected belong to the manual admin-approval overlay.
// They are kept distinct on purpose.
type BookingStatus string

const (
	BOOKING_PENDING   BookingStatus = "Pending"
	BOOKING_APPROVED  BookingStatus = "Approved"
	BOOKING_REJECTED  BookingStatus = "Rejected"
	BOOKING_CONFIRMED BookingStatus = "confirmed"
)

type VerificationStatus string

const (
	VERIFICATION_NONE     VerificationStatus = "none"
	VERIFICATION_PENDING  VerificationStatus = "pending"
	VERIFICATION_VERIFIED VerificationStatus = "verified"
	VERIFICATION_REJECTED VerificationStatus = "rejected"
)

type LostItemStatus string

const (
	LOST_ITEM_LOST    LostItemStatus = "lost"
	LOST_ITEM_FOUND   LostItemStatus = "found"
	LOST_ITEM_CLAIMED LostItemStatus = "claimed"
)

type ReportType string

const (
	REPORT_APP     ReportType = "app"
	REPORT_STATION ReportType = "station"
)

type CreateScheduleRequestBody struct {
	TrainName     string   `json:"trainName" binding:"required"`
	From          string   `json:"from" binding:"required"`
	To            string   `json:"to" binding:"required"`
	DepartureTime string   `json:"departureTime" binding:"required,traintime"`
	ArrivalTime   string   `json:"arrivalTime" binding:"required,traintime"`
	Price         *float64 `json:"price" binding:"required,gte=0"`
}

type UpdateScheduleRequestBody struct {
	TrainName     *string  `json:"trainName,omitempty"`
	From          *string  `json:"from,omitempty"`
	To            *string  `json:"to,omitempty"`
	DepartureTime *string  `json:"departureTime,omitempty" binding:"omitempty,traintime"`
	ArrivalTime   *string  `json:"arrivalTime,omitempty" binding:"omitempty,traintime"`
	Price         *float64 `json:"price,omitempty" binding:"omitempty,gte=0"`
}

type CreateBookingRequestBody struct {
	TrainID         uint     `json:"trainId" binding:"required"`
	TrainName       string   `json:"trainName" binding:"required"`
	From            string   `json:"from" binding:"required"`
	To              string   `json:"to" binding:"required"`
	Departure       string   `json:"departure" binding:"required"`
	Arrival         string   `json:"arrival" binding:"required"`
	Price           *float64 `json:"price" binding:"required,gte=0"`
	PassengerName   string   `json:"passengerName" binding:"required"`
	PassengerEmail  string   `json:"passengerEmail" binding:"required,email"`
	PaymentIntentId string   `json:"paymentIntentId,omitempty"`
}

type UpdateBookingRequestBody struct {
	UserName *string        `json:"userName,omitempty"`
	Status   *BookingStatus `json:"status,omitempty" binding:"omitempty,oneof=Pending Approved Rejected confirmed"`
}

type CreatePaymentIntentRequestBody struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type EmailRequestParams struct {
	Email string `uri:"email" binding:"required"`
}

type RegisterUserRequestBody struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	Phone       string `json:"phone" binding:"required"`
	DateOfBirth string `json:"dateOfBirth" binding:"required"`
}

type LoginRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserRequestBody struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone    *string `json:"phone,omitempty"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=6"`
}

type FavoriteStationRequestBody struct {
	Station string `json:"station" binding:"required"`
}

type FavoriteRouteRequestBody struct {
	ScheduleID    uint    `json:"scheduleId" binding:"required"`
	TrainName     string  `json:"trainName" binding:"required"`
	From          string  `json:"from" binding:"required"`
	To            string  `json:"to" binding:"required"`
	DepartureTime string  `json:"departureTime,omitempty"`
	ArrivalTime   string  `json:"arrivalTime,omitempty"`
	Price         float64 `json:"price,omitempty"`
}

type AddNotificationRequestBody struct {
	Email       string `json:"email" binding:"required,email"`
	Title       string `json:"title" binding:"required"`
	Message     string `json:"message" binding:"required"`
	Alternative string `json:"alternative,omitempty"`
}

type BroadcastNotificationRequestBody struct {
	Title       string `json:"title" binding:"required"`
	Message     string `json:"message" binding:"required"`
	Alternative string `json:"alternative,omitempty"`
}

type CreateStaffRequestBody struct {
	Name     string `json:"name" binding:"required"`
	Position string `json:"position" binding:"required"`
	Shift    string `json:"shift" binding:"required"`
	Contact  string `json:"contact" binding:"required"`
}

type UpdateStaffRequestBody struct {
	Name     *string `json:"name,omitempty"`
	Position *string `json:"position,omitempty"`
	Shift    *string `json:"shift,omitempty"`
	Contact  *string `json:"contact,omitempty"`
}

type VerificationQuestion struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
}

type CreateFeedbackRequestBody struct {
	Rating  int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment string `json:"comment,omitempty"`
}

type StudentVerifyActionRequestBody struct {
	Action string `json:"action" binding:"required,oneof=verify reject unverify"`
}

type ActivateWifiRequestBody struct {
	UserID          uint   `json:"userId" binding:"required"`
	PaymentIntentId string `json:"paymentIntentId" binding:"required"`
}

type CreateAdRequestBody struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description,omitempty"`
	ImageUrl    string `json:"imageUrl" binding:"required"`
	Link        string `json:"link,omitempty"`
	Order       int    `json:"order,omitempty"`
	IsActive    *bool  `json:"isActive,omitempty"`
}

type UpdateAdRequestBody struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageUrl    *string `json:"imageUrl,omitempty"`
	Link        *string `json:"link,omitempty"`
	Order       *int    `json:"order,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

type CreateLostItemRequestBody struct {
	Title        string                 `json:"title" binding:"required"`
	Description  string                 `json:"description" binding:"required"`
	ContactName  string                 `json:"contactName" binding:"required"`
	ContactPhone string                 `json:"contactPhone,omitempty"`
	ContactEmail string                 `json:"contactEmail" binding:"required,email"`
	Photos       []string               `json:"photos,omitempty"`
	Questions    []VerificationQuestion `json:"questions" binding:"required,min=1,max=10,dive"`
}

type UpdateLostItemStatusRequestBody struct {
	Status LostItemStatus `json:"status" binding:"required,oneof=lost found claimed"`
}

type VerifyLostItemClaimRequestBody struct {
	Answers []string `json:"answers" binding:"required,min=1"`
}

type CreateReportRequestBody struct {
	Type            ReportType `form:"type" binding:"required,oneof=app station"`
	Subject         string     `form:"subject" binding:"required"`
	Description     string     `form:"description" binding:"required"`
	Rating          *int       `form:"rating" binding:"omitempty,gte=1,lte=5"`
	StationLocation string     `form:"stationLocation"`
}

type AdminLoginRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TicketPayload is the QR payload rendered for a confirmed booking. Field
// names match what gate scanners already parse; scanners re-validate by
// ticketId instead of trusting the embedded status.
type TicketPayload struct {
	TicketID  string        `json:"ticketId"`
	BookingID uint          `json:"bookingId"`
	TrainName string        `json:"trainName"`
	From      string        `json:"from"`
	To        string        `json:"to"`
	Departure string        `json:"departure"`
	Arrival   string        `json:"arrival"`
	Passenger string        `json:"passenger"`
	Email     string        `json:"email"`
	Price     float64       `json:"price"`
	Status    BookingStatus `json:"status"`
	PaymentID string        `json:"paymentId"`
	ExpiresAt time.Time     `json:"expiresAt"`
}
