package utils

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/big"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"mrt/src/config"
	"mrt/src/db"
	"mrt/src/lib"
	"mrt/src/models"
	"mrt/src/types"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/yeqown/go-qrcode"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrDuplicateBooking is returned when a passenger already holds a booking
// for the same route and departure. The message is shown to riders as-is.
var ErrDuplicateBooking = errors.New("You have already booked a ticket for this route at this time. Please choose a different train or time.")

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

const base36Chars = "0123456789abcdefghijklmnopqrstuvwxyz"

func randBase36(n int) string {
	var sb strings.Builder
	max := big.NewInt(int64(len(base36Chars)))
	for range n {
		i, err := rand.Int(rand.Reader, max)
		if err != nil {
			sb.WriteByte(base36Chars[0])
			continue
		}
		sb.WriteByte(base36Chars[i.Int64()])
	}
	return sb.String()
}

// GenerateTicketID builds a ticket number from the booking timestamp and a
// random tail, e.g. TKT-MEWV12AB34-X9K2QP.
func GenerateTicketID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	tail := randBase36(6)
	return fmt.Sprintf("%s-%s-%s", config.TICKET_ID_PREFIX, strings.ToUpper(ts), strings.ToUpper(tail))
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}

func bookingLockKey(email, from, to, departure, arrival string) string {
	return strings.ToLower(fmt.Sprintf("booking-lock:%s:%s:%s:%s:%s", email, from, to, departure, arrival))
}

// CreateBooking issues a confirmed ticket for a paid fare. A short-lived
// redis lock serializes simultaneous requests for the same passenger and
// route; the composite unique index on bookings is the authority when the
// lock is unavailable.
func CreateBooking(ctx context.Context, params *types.CreateBookingRequestBody) (*models.Booking, error) {
	lockKey := bookingLockKey(params.PassengerEmail, params.From, params.To, params.Departure, params.Arrival)
	rd := lib.GetRedisClient()
	if rd != nil {
		ok, err := rd.SetNX(ctx, lockKey, uuid.NewString(), 10*time.Second).Result()
		if err != nil {
			log.Printf("Error acquiring booking lock [%s]: %s\n", lockKey, err.Error())
		} else if !ok {
			return nil, ErrDuplicateBooking
		} else {
			defer rd.Del(context.Background(), lockKey)
		}
	}

	booking := models.Booking{
		TicketID:        GenerateTicketID(),
		TrainID:         params.TrainID,
		TrainName:       params.TrainName,
		From:            params.From,
		To:              params.To,
		DepartureTime:   params.Departure,
		ArrivalTime:     params.Arrival,
		Price:           *params.Price,
		UserName:        params.PassengerName,
		UserEmail:       params.PassengerEmail,
		PaymentIntentId: params.PaymentIntentId,
		BookingTime:     time.Now(),
		ExpiryDate:      time.Now().Add(config.TICKET_VALIDITY),
		Status:          types.BOOKING_CONFIRMED,
	}
	if booking.UserName == "" {
		booking.UserName = "Guest User"
	}

	gdb := db.GetDb()
	err := gdb.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{
				UserEmail:     params.PassengerEmail,
				From:          params.From,
				To:            params.To,
				DepartureTime: params.Departure,
				ArrivalTime:   params.Arrival,
			}).
			Count(&count).
			Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateBooking
		}
		if err := tx.Create(&booking).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateBooking
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateBooking) && params.PaymentIntentId != "" {
			go ReportOrphanedPayment(params.PaymentIntentId, params.PassengerEmail)
		}
		return nil, err
	}
	return &booking, nil
}

// ReportOrphanedPayment flags a captured payment whose booking was rejected
// as a duplicate. Refunds are handled by the operations team, not here.
func ReportOrphanedPayment(paymentIntentId, email string) {
	log.Printf("Orphaned payment [%s] for %s: booking rejected as duplicate\n", paymentIntentId, email)
	opsEmail := os.Getenv("OPS_EMAIL")
	if opsEmail == "" {
		return
	}
	body := fmt.Sprintf("Payment %s by %s was captured but the booking was rejected as a duplicate. Please review and refund if appropriate.", paymentIntentId, email)
	err := lib.SendMail(&lib.SendMailInput{
		From:     os.Getenv("SMTP_FROM"),
		FromName: "Metro Booking",
		To:       []string{opsEmail},
		Subject:  fmt.Sprintf("Orphaned payment %s", paymentIntentId),
		Body:     body,
	})
	if err != nil {
		log.Printf("Error sending orphaned payment alert: %s\n", err.Error())
	}
}

// RenderTicketPayload flattens a booking into the document encoded in the
// ticket QR code.
func RenderTicketPayload(b *models.Booking) types.TicketPayload {
	return types.TicketPayload{
		TicketID:  b.TicketID,
		BookingID: b.ID,
		TrainName: b.TrainName,
		From:      b.From,
		To:        b.To,
		Departure: b.DepartureTime,
		Arrival:   b.ArrivalTime,
		Passenger: b.UserName,
		Email:     b.UserEmail,
		Price:     b.Price,
		Status:    b.Status,
		PaymentID: b.PaymentIntentId,
		ExpiresAt: b.ExpiryDate,
	}
}

// SaveTicketQR writes the ticket QR code image under TEMP_DIR and returns
// its path.
func SaveTicketQR(b *models.Booking) (string, error) {
	payload := RenderTicketPayload(b)
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	qrc, err := qrcode.New(string(raw))
	if err != nil {
		return "", err
	}
	tempdir := os.Getenv("TEMP_DIR")
	if tempdir == "" {
		tempdir = os.TempDir()
	}
	filename := fmt.Sprintf("%s.jpeg", slug.Make(b.TicketID))
	filepath := path.Join(tempdir, filename)
	if err := qrc.Save(filepath); err != nil {
		log.Printf("Could not save qrcode to file [%s]: %s\n", filepath, err.Error())
		return "", err
	}
	return filepath, nil
}

// DedupeBookings drops repeated rows that share a payment intent, keeping
// the earliest. Rows without a payment intent are passed through.
func DedupeBookings(bookings []models.Booking) []models.Booking {
	seen := make(map[string]bool, len(bookings))
	out := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.PaymentIntentId != "" {
			if seen[b.PaymentIntentId] {
				continue
			}
			seen[b.PaymentIntentId] = true
		}
		out = append(out, b)
	}
	return out
}

// PurgeExpiredBookings removes bookings whose tickets lapsed. Run from the
// scheduler.
func PurgeExpiredBookings() {
	gdb := db.GetDb()
	res := gdb.Where("expiry_date < ?", time.Now()).Delete(&models.Booking{})
	if res.Error != nil {
		log.Printf("Error purging expired bookings: %s\n", res.Error.Error())
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("Purged %d expired bookings\n", res.RowsAffected)
	}
}

// GenerateWifiCredentials returns a station WiFi login pair.
func GenerateWifiCredentials() (id string, password string) {
	id = fmt.Sprintf("WIFI_%s", strings.ToUpper(randBase36(8)))
	password = randBase36(12)
	return id, password
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}

// GenerateToken signs a session token for the given subject.
func GenerateToken(email, role string) (string, error) {
	claims := types.Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(72 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	return token.SignedString(jwtKey)
}

// UploadPath builds a collision-safe destination under the uploads
// directory for a client-supplied filename.
func UploadPath(filename string) string {
	ext := path.Ext(filename)
	base := strings.TrimSuffix(filename, ext)
	return path.Join(config.UPLOADS_DIR, fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), slug.Make(base), ext))
}
