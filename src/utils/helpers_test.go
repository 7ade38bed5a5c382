package utils

import (
	"encoding/json"
	"strconv"
	"strings"
	"testing"
	"time"

	"mrt/src/models"
	"mrt/src/types"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func TestGenerateTicketID(t *testing.T) {
	id := GenerateTicketID()
	parts := strings.Split(id, "-")
	assert.Len(t, parts, 3)
	assert.Equal(t, "TKT", parts[0])
	assert.Equal(t, strings.ToUpper(id), id)

	ms, err := strconv.ParseInt(strings.ToLower(parts[1]), 36, 64)
	assert.Nil(t, err)
	issued := time.UnixMilli(ms)
	assert.WithinDuration(t, time.Now(), issued, time.Minute)

	seen := map[string]bool{}
	for range 100 {
		next := GenerateTicketID()
		assert.False(t, seen[next], "ticket IDs must not repeat")
		seen[next] = true
	}
}

func TestRenderTicketPayload(t *testing.T) {
	expiry := time.Now().Add(7 * 24 * time.Hour)
	booking := models.Booking{
		ID:              42,
		TicketID:        "TKT-ABC-DEF",
		TrainName:       "Blue Line Express",
		From:            "Central",
		To:              "Airport",
		DepartureTime:   "08:30",
		ArrivalTime:     "09:10",
		Price:           3.5,
		UserName:        "Ada Passenger",
		UserEmail:       "ada@example.com",
		PaymentIntentId: "pi_123",
		ExpiryDate:      expiry,
		Status:          types.BOOKING_CONFIRMED,
	}
	payload := RenderTicketPayload(&booking)
	raw, err := json.Marshal(payload)
	assert.Nil(t, err)
	sjson := string(raw)

	assert.Equal(t, "TKT-ABC-DEF", gjson.Get(sjson, "ticketId").String())
	assert.Equal(t, int64(42), gjson.Get(sjson, "bookingId").Int())
	assert.Equal(t, "Blue Line Express", gjson.Get(sjson, "trainName").String())
	assert.Equal(t, "Central", gjson.Get(sjson, "from").String())
	assert.Equal(t, "Airport", gjson.Get(sjson, "to").String())
	assert.Equal(t, "08:30", gjson.Get(sjson, "departure").String())
	assert.Equal(t, "09:10", gjson.Get(sjson, "arrival").String())
	assert.Equal(t, "Ada Passenger", gjson.Get(sjson, "passenger").String())
	assert.Equal(t, "ada@example.com", gjson.Get(sjson, "email").String())
	assert.Equal(t, 3.5, gjson.Get(sjson, "price").Float())
	assert.Equal(t, "confirmed", gjson.Get(sjson, "status").String())
	assert.Equal(t, "pi_123", gjson.Get(sjson, "paymentId").String())
	assert.True(t, gjson.Get(sjson, "expiresAt").Exists())
}

func TestDedupeBookings(t *testing.T) {
	bookings := []models.Booking{
		{ID: 1, PaymentIntentId: "pi_1"},
		{ID: 2, PaymentIntentId: "pi_1"},
		{ID: 3, PaymentIntentId: "pi_2"},
		{ID: 4},
		{ID: 5},
	}
	out := DedupeBookings(bookings)
	assert.Len(t, out, 4)
	assert.Equal(t, uint(1), out[0].ID)
	assert.Equal(t, uint(3), out[1].ID)
	assert.Equal(t, uint(4), out[2].ID)
	assert.Equal(t, uint(5), out[3].ID)
}

func TestGenerateWifiCredentials(t *testing.T) {
	id, password := GenerateWifiCredentials()
	assert.True(t, strings.HasPrefix(id, "WIFI_"))
	assert.Len(t, id, len("WIFI_")+8)
	assert.Len(t, password, 12)

	id2, password2 := GenerateWifiCredentials()
	assert.NotEqual(t, id, id2)
	assert.NotEqual(t, password, password2)
}

func TestPasswordHashing(t *testing.T) {
	hashed, err := HashPassword("hunter22")
	assert.Nil(t, err)
	assert.NotEqual(t, "hunter22", hashed)
	assert.True(t, CheckPassword(hashed, "hunter22"))
	assert.False(t, CheckPassword(hashed, "hunter23"))
}

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken("rider@example.com", "user")
	assert.Nil(t, err)
	assert.Equal(t, 3, len(strings.Split(token, ".")))
}

func TestUploadPath(t *testing.T) {
	p := UploadPath("My Photo.JPG")
	assert.True(t, strings.HasPrefix(p, "uploads/"))
	assert.True(t, strings.HasSuffix(p, ".JPG"))
	assert.Contains(t, p, "my-photo")
}
