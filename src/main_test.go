package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"mrt/src/db"
	"mrt/src/models"
	"mrt/src/types"
	"mrt/src/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type TestSuite struct {
	suite.Suite
	DB         *gorm.DB
	Token      string
	AdminToken string
}

var dbi *gorm.DB

func (s *TestSuite) SetupSuite() {
	registerValidators()

	d, err := gorm.Open(sqlite.Open("file:mrttest?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	if err != nil {
		log.Fatalf("error opening test database: %s", err.Error())
	}
	// Single connection keeps concurrent writers serialized instead of
	// tripping sqlite shared-cache table locks.
	inner, err := d.DB()
	if err != nil {
		log.Fatalf("error accessing inner db instance: %s", err.Error())
	}
	inner.SetMaxOpenConns(1)

	db.NewDB(d)
	s.DB = d
	dbi = d

	err = dbi.AutoMigrate(
		&models.User{},
		&models.Schedule{},
		&models.Booking{},
		&models.Notification{},
		&models.Staff{},
		&models.Report{},
		&models.LostItem{},
		&models.Ad{},
		&models.Feedback{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	hashed, err := utils.HashPassword("riderpass")
	if err != nil {
		log.Fatalf("error hashing password: %s", err.Error())
	}
	user := models.User{
		Name:     "Test Rider",
		Email:    "rider@example.com",
		Password: hashed,
		Phone:    "555-0100",
	}
	if err := dbi.Create(&user).Error; err != nil {
		log.Fatalf("Could not create user due to error: %s\n", err.Error())
	}

	token, err := utils.GenerateToken(user.Email, "user")
	if err != nil {
		log.Fatalf("Error generating token: %s\n", err.Error())
	}
	s.Token = token

	adminToken, err := utils.GenerateToken("ops@example.com", "admin")
	if err != nil {
		log.Fatalf("Error generating token: %s\n", err.Error())
	}
	s.AdminToken = adminToken
}

func (s *TestSuite) TearDownSuite() {
	inner, err := s.DB.DB()
	if err != nil {
		log.Printf("Error accessing inner db instance: %s\n", err.Error())
		return
	}
	inner.Close()
}

func newTestRouter() *gin.Engine {
	router := setupRouter()
	publicRoutes(router)
	authorizedRoutes(router)
	adminRoutes(router)
	return router
}

func jsonRequest(method, target, token string, body any) *http.Request {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = strings.NewReader(string(raw))
	}
	req, _ := http.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	return req
}

func bookingBody(email, from, to, departure string) map[string]any {
	return map[string]any{
		"trainId":         1,
		"trainName":       "Blue Line Express",
		"from":            from,
		"to":              to,
		"departure":       departure,
		"arrival":         "09:10",
		"price":           3.5,
		"passengerName":   "Test Rider",
		"passengerEmail":  email,
		"paymentIntentId": fmt.Sprintf("pi_%s_%s_%s", email, from, departure),
	}
}

func (s *TestSuite) TestPingRoute() {
	router := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 200, w.Code)
}

func (s *TestSuite) TestMaintenanceMode() {
	os.Setenv("MAINTENANCE_MODE", "true")
	defer os.Unsetenv("MAINTENANCE_MODE")

	router := setupRouter()
	router = maintenanceModeMiddleware(router)
	publicRoutes(router)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/schedules", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 503, w.Code)
}

func (s *TestSuite) TestAuthRoutes() {
	router := newTestRouter()

	s.Run("Should register a new user and return a token", func() {
		w := httptest.NewRecorder()
		req := jsonRequest("POST", "/api/v1/auth/register", "", map[string]any{
			"name":        "New Rider",
			"email":       "new.rider@example.com",
			"password":    "secret99",
			"phone":       "555-0101",
			"dateOfBirth": "1999-01-01",
		})
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 201, w.Code)
		body, _ := io.ReadAll(w.Body)
		assert.NotEmpty(s.T(), gjson.GetBytes(body, "token").String())
	})

	s.Run("Should reject a duplicate registration", func() {
		w := httptest.NewRecorder()
		req := jsonRequest("POST", "/api/v1/auth/register", "", map[string]any{
			"name":        "New Rider",
			"email":       "new.rider@example.com",
			"password":    "secret99",
			"phone":       "555-0101",
			"dateOfBirth": "1999-01-01",
		})
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should log in with valid credentials", func() {
		w := httptest.NewRecorder()
		req := jsonRequest("POST", "/api/v1/auth/login", "", map[string]any{
			"email":    "rider@example.com",
			"password": "riderpass",
		})
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 200, w.Code)
		body, _ := io.ReadAll(w.Body)
		assert.NotEmpty(s.T(), gjson.GetBytes(body, "token").String())
	})

	s.Run("Should reject an invalid password", func() {
		w := httptest.NewRecorder()
		req := jsonRequest("POST", "/api/v1/auth/login", "", map[string]any{
			"email":    "rider@example.com",
			"password": "wrongpass",
		})
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 401, w.Code)
	})
}

func (s *TestSuite) TestSchedules() {
	router := newTestRouter()

	s.Run("Should create a Schedule with 201 status", func() {
		w := httptest.NewRecorder()
		req := jsonRequest("POST", "/api/v1/admin/schedules", s.AdminToken, map[string]any{
			"trainName":     "Blue Line Express",
			"from":          "Central",
			"to":            "Airport",
			"departureTime": "08:30",
			"arrivalTime":   "09:10",
			"price":         3.5,
		})
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 201, w.Code)
	})

	s.Run("Should reject a Schedule with a malformed departure time", func() {
		w := httptest.NewRecorder()
		req := jsonRequest("POST", "/api/v1/admin/schedules", s.AdminToken, map[string]any{
			"trainName":     "Blue Line Express",
			"from":          "Central",
			"to":            "Airport",
			"departureTime": "25:99",
			"arrivalTime":   "09:10",
			"price":         3.5,
		})
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should deny Schedule creation without an admin token", func() {
		w := httptest.NewRecorder()
		req := jsonRequest("POST", "/api/v1/admin/schedules", s.Token, map[string]any{
			"trainName":     "Blue Line Express",
			"from":          "Central",
			"to":            "Airport",
			"departureTime": "08:30",
			"arrivalTime":   "09:10",
			"price":         3.5,
		})
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 403, w.Code)
	})

	s.Run("Should return list of Schedules with 200 status", func() {
		w := httptest.NewRecorder()
		req := jsonRequest("GET", "/api/v1/schedules", "", nil)
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 200, w.Code)
		body, _ := io.ReadAll(w.Body)
		assert.GreaterOrEqual(s.T(), gjson.GetBytes(body, "count").Int(), int64(1))
	})
}

func (s *TestSuite) TestBookingLifecycle() {
	router := newTestRouter()
	email := "lifecycle@example.com"

	var ticketId string
	s.Run("Should create a Booking and issue a ticket", func() {
		w := httptest.NewRecorder()
		req := jsonRequest("POST", "/api/v1/bookings", "", bookingBody(email, "Central", "Airport", "08:30"))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 201, w.Code)
		body, _ := io.ReadAll(w.Body)
		sjson := string(body)
		ticketId = gjson.Get(sjson, "data.ticketId").String()
		assert.True(s.T(), strings.HasPrefix(ticketId, "TKT-"))
		assert.Equal(s.T(), "confirmed", gjson.Get(sjson, "data.status").String())

		expiry := gjson.Get(sjson, "data.expiryDate").Time()
		assert.WithinDuration(s.T(), time.Now().Add(7*24*time.Hour), expiry, time.Minute)
	})

	s.Run("Should render the ticket payload by ticket number", func() {
		w := httptest.NewRecorder()
		req := jsonRequest("GET", fmt.Sprintf("/api/v1/tickets/%s", ticketId), "", nil)
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 200, w.Code)
		body, _ := io.ReadAll(w.Body)
		sjson := string(body)
		assert.Equal(s.T(), ticketId, gjson.Get(sjson, "data.ticketId").String())
		assert.Equal(s.T(), email, gjson.Get(sjson, "data.email").String())
		assert.Equal(s.T(), "Central", gjson.Get(sjson, "data.from").String())
		assert.Equal(s.T(), "Airport", gjson.Get(sjson, "data.to").String())
	})

	s.Run("Should return a 404 for an unknown ticket", func() {
		w := httptest.NewRecorder()
		req := jsonRequest("GET", "/api/v1/tickets/TKT-NOPE-NOPE", "", nil)
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 404, w.Code)
	})

	s.Run("Should list Bookings for the passenger", func() {
		w := httptest.NewRecorder()
		req := jsonRequest("GET", fmt.Sprintf("/api/v1/bookings/user/%s", email), "", nil)
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 200, w.Code)
		body, _ := io.ReadAll(w.Body)
		assert.Equal(s.T(), int64(1), gjson.GetBytes(body, "count").Int())
	})
}

func (s *TestSuite) TestDuplicateBooking() {
	router := newTestRouter()
	email := "duplicate@example.com"

	w := httptest.NewRecorder()
	req := jsonRequest("POST", "/api/v1/bookings", "", bookingBody(email, "Central", "Airport", "08:30"))
	router.ServeHTTP(w, req)
	assert.Equal(s.T(), 201, w.Code)

	w = httptest.NewRecorder()
	req = jsonRequest("POST", "/api/v1/bookings", "", bookingBody(email, "Central", "Airport", "08:30"))
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 400, w.Code)
	body, _ := io.ReadAll(w.Body)
	assert.Contains(s.T(), gjson.GetBytes(body, "error").String(), "already booked a ticket for this route")

	var count int64
	dbi.Model(&models.Booking{}).Where(&models.Booking{UserEmail: email}).Count(&count)
	assert.Equal(s.T(), int64(1), count)
}

func (s *TestSuite) TestRebookAfterDelete() {
	router := newTestRouter()
	email := "rebook@example.com"

	w := httptest.NewRecorder()
	req := jsonRequest("POST", "/api/v1/bookings", "", bookingBody(email, "Central", "Airport", "08:30"))
	router.ServeHTTP(w, req)
	assert.Equal(s.T(), 201, w.Code)
	body, _ := io.ReadAll(w.Body)
	bookingId := gjson.GetBytes(body, "data.id").Int()

	w = httptest.NewRecorder()
	req = jsonRequest("DELETE", fmt.Sprintf("/api/v1/admin/bookings/%d", bookingId), s.AdminToken, nil)
	router.ServeHTTP(w, req)
	assert.Equal(s.T(), 204, w.Code)

	w = httptest.NewRecorder()
	req = jsonRequest("GET", fmt.Sprintf("/api/v1/bookings/user/%s", email), "", nil)
	router.ServeHTTP(w, req)
	assert.Equal(s.T(), 200, w.Code)
	body, _ = io.ReadAll(w.Body)
	assert.Equal(s.T(), int64(0), gjson.GetBytes(body, "count").Int())

	w = httptest.NewRecorder()
	req = jsonRequest("POST", "/api/v1/bookings", "", bookingBody(email, "Central", "Airport", "08:30"))
	router.ServeHTTP(w, req)
	assert.Equal(s.T(), 201, w.Code)
}

func (s *TestSuite) TestConcurrentDuplicateBooking() {
	router := newTestRouter()
	email := "race@example.com"

	var wg sync.WaitGroup
	codes := make([]int, 2)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := httptest.NewRecorder()
			req := jsonRequest("POST", "/api/v1/bookings", "", bookingBody(email, "Central", "Airport", "08:30"))
			router.ServeHTTP(w, req)
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, code := range codes {
		if code == 201 {
			successes++
		}
	}
	assert.Equal(s.T(), 1, successes, "exactly one of the concurrent bookings must win")

	var count int64
	dbi.Model(&models.Booking{}).Where(&models.Booking{UserEmail: email}).Count(&count)
	assert.Equal(s.T(), int64(1), count)
}

func (s *TestSuite) TestScheduleDeleteKeepsBookings() {
	router := newTestRouter()
	email := "survivor@example.com"

	schedule := models.Schedule{
		TrainName:     "Red Line",
		From:          "Harbor",
		To:            "Museum",
		DepartureTime: "10:00",
		ArrivalTime:   "10:40",
		Price:         2.75,
	}
	assert.Nil(s.T(), dbi.Create(&schedule).Error)

	w := httptest.NewRecorder()
	req := jsonRequest("POST", "/api/v1/bookings", "", bookingBody(email, "Harbor", "Museum", "10:00"))
	router.ServeHTTP(w, req)
	assert.Equal(s.T(), 201, w.Code)
	body, _ := io.ReadAll(w.Body)
	bookingId := gjson.GetBytes(body, "data.id").Int()

	w = httptest.NewRecorder()
	req = jsonRequest("DELETE", fmt.Sprintf("/api/v1/admin/schedules/%d", schedule.ID), s.AdminToken, nil)
	router.ServeHTTP(w, req)
	assert.Equal(s.T(), 204, w.Code)

	w = httptest.NewRecorder()
	req = jsonRequest("GET", fmt.Sprintf("/api/v1/bookings/%d", bookingId), "", nil)
	router.ServeHTTP(w, req)
	assert.Equal(s.T(), 200, w.Code)
	body, _ = io.ReadAll(w.Body)
	assert.Equal(s.T(), "Harbor", gjson.GetBytes(body, "data.from").String())
}

func (s *TestSuite) TestListByUserDeduplicates() {
	router := newTestRouter()
	email := "dedupe@example.com"

	// Two rows sharing a payment intent, as left behind by a double-submit.
	rows := []models.Booking{
		{
			TicketID:        utils.GenerateTicketID(),
			TrainName:       "Blue Line Express",
			From:            "Central",
			To:              "Airport",
			DepartureTime:   "08:30",
			ArrivalTime:     "09:10",
			UserEmail:       email,
			PaymentIntentId: "pi_shared",
			ExpiryDate:      time.Now().Add(24 * time.Hour),
			Status:          types.BOOKING_CONFIRMED,
		},
		{
			TicketID:        utils.GenerateTicketID(),
			TrainName:       "Blue Line Express",
			From:            "Central",
			To:              "Harbor",
			DepartureTime:   "11:30",
			ArrivalTime:     "12:10",
			UserEmail:       email,
			PaymentIntentId: "pi_shared",
			ExpiryDate:      time.Now().Add(24 * time.Hour),
			Status:          types.BOOKING_CONFIRMED,
		},
	}
	for i := range rows {
		assert.Nil(s.T(), dbi.Create(&rows[i]).Error)
	}

	w := httptest.NewRecorder()
	req := jsonRequest("GET", fmt.Sprintf("/api/v1/bookings/user/%s", email), "", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 200, w.Code)
	body, _ := io.ReadAll(w.Body)
	assert.Equal(s.T(), int64(1), gjson.GetBytes(body, "count").Int())
}

func (s *TestSuite) TestLostItems() {
	router := newTestRouter()

	var itemId int64
	s.Run("Should create a LostItem with verification questions", func() {
		w := httptest.NewRecorder()
		req := jsonRequest("POST", "/api/v1/lost-items", "", map[string]any{
			"title":        "Black umbrella",
			"description":  "Left on the Blue Line",
			"contactName":  "Finder",
			"contactEmail": "finder@example.com",
			"questions": []map[string]string{
				{"question": "What is printed on the handle?", "answer": "A duck"},
			},
		})
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 201, w.Code)
		body, _ := io.ReadAll(w.Body)
		itemId = gjson.GetBytes(body, "data.id").Int()
	})

	s.Run("Should hide answers and contact details in the listing", func() {
		w := httptest.NewRecorder()
		req := jsonRequest("GET", "/api/v1/lost-items", "", nil)
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 200, w.Code)
		body, _ := io.ReadAll(w.Body)
		sjson := string(body)
		assert.Empty(s.T(), gjson.Get(sjson, "data.0.contactEmail").String())
		assert.Empty(s.T(), gjson.Get(sjson, "data.0.questions.0.answer").String())
	})

	s.Run("Should reject a claim with a wrong answer", func() {
		w := httptest.NewRecorder()
		req := jsonRequest("POST", fmt.Sprintf("/api/v1/lost-items/%d/verify", itemId), "", map[string]any{
			"answers": []string{"A cat"},
		})
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 403, w.Code)
	})

	s.Run("Should release contact details on a correct claim", func() {
		w := httptest.NewRecorder()
		req := jsonRequest("POST", fmt.Sprintf("/api/v1/lost-items/%d/verify", itemId), "", map[string]any{
			"answers": []string{"  a DUCK "},
		})
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 200, w.Code)
		body, _ := io.ReadAll(w.Body)
		assert.Equal(s.T(), "finder@example.com", gjson.GetBytes(body, "data.contactEmail").String())
	})

	s.Run("Should reject a LostItem without questions", func() {
		w := httptest.NewRecorder()
		req := jsonRequest("POST", "/api/v1/lost-items", "", map[string]any{
			"title":        "Scarf",
			"description":  "Red wool",
			"contactName":  "Finder",
			"contactEmail": "finder@example.com",
			"questions":    []map[string]string{},
		})
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})
}

func (s *TestSuite) TestNotifications() {
	router := newTestRouter()

	s.Run("Should add a Notification for a user", func() {
		w := httptest.NewRecorder()
		req := jsonRequest("POST", "/api/v1/admin/notifications", s.AdminToken, map[string]any{
			"email":   "rider@example.com",
			"title":   "Service change",
			"message": "The Blue Line departs 5 minutes earlier this week.",
		})
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 201, w.Code)
	})

	s.Run("Should list Notifications for the user", func() {
		w := httptest.NewRecorder()
		req := jsonRequest("GET", "/api/v1/notifications/rider@example.com", "", nil)
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 200, w.Code)
		body, _ := io.ReadAll(w.Body)
		assert.GreaterOrEqual(s.T(), gjson.GetBytes(body, "count").Int(), int64(1))
	})

	s.Run("Should broadcast to every registered user", func() {
		var users int64
		dbi.Model(&models.User{}).Count(&users)

		w := httptest.NewRecorder()
		req := jsonRequest("POST", "/api/v1/admin/notifications/broadcast", s.AdminToken, map[string]any{
			"title":   "Maintenance window",
			"message": "Station WiFi will be down tonight.",
		})
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 201, w.Code)
		body, _ := io.ReadAll(w.Body)
		assert.Equal(s.T(), users, gjson.GetBytes(body, "count").Int())
	})
}

func (s *TestSuite) TestStaff() {
	router := newTestRouter()

	w := httptest.NewRecorder()
	req := jsonRequest("POST", "/api/v1/admin/staff", s.AdminToken, map[string]any{
		"name":     "Sam Operator",
		"position": "Station Manager",
		"shift":    "morning",
		"contact":  "555-0199",
	})
	router.ServeHTTP(w, req)
	assert.Equal(s.T(), 201, w.Code)
	body, _ := io.ReadAll(w.Body)
	staffId := gjson.GetBytes(body, "data.id").Int()

	w = httptest.NewRecorder()
	req = jsonRequest("PUT", fmt.Sprintf("/api/v1/admin/staff/%d", staffId), s.AdminToken, map[string]any{
		"shift": "evening",
	})
	router.ServeHTTP(w, req)
	assert.Equal(s.T(), 200, w.Code)
	body, _ = io.ReadAll(w.Body)
	assert.Equal(s.T(), "evening", gjson.GetBytes(body, "data.shift").String())

	w = httptest.NewRecorder()
	req = jsonRequest("DELETE", fmt.Sprintf("/api/v1/admin/staff/%d", staffId), s.AdminToken, nil)
	router.ServeHTTP(w, req)
	assert.Equal(s.T(), 204, w.Code)
}

func (s *TestSuite) TestFeedback() {
	router := newTestRouter()

	s.Run("Should reject an out-of-range rating", func() {
		w := httptest.NewRecorder()
		req := jsonRequest("POST", "/api/v1/feedback", "", map[string]any{
			"rating":  6,
			"comment": "too good",
		})
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should record Feedback and report the average", func() {
		w := httptest.NewRecorder()
		req := jsonRequest("POST", "/api/v1/feedback", "", map[string]any{
			"rating":  4,
			"comment": "clean trains",
		})
		router.ServeHTTP(w, req)
		assert.Equal(s.T(), 201, w.Code)

		w = httptest.NewRecorder()
		req = jsonRequest("GET", "/api/v1/admin/feedback", s.AdminToken, nil)
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 200, w.Code)
		body, _ := io.ReadAll(w.Body)
		assert.Greater(s.T(), gjson.GetBytes(body, "averageRating").Float(), 0.0)
	})
}

func (s *TestSuite) TestWifiActivation() {
	router := newTestRouter()

	var user models.User
	assert.Nil(s.T(), dbi.Where(&models.User{Email: "rider@example.com"}).First(&user).Error)

	w := httptest.NewRecorder()
	req := jsonRequest("POST", "/api/v1/wifi/activate", s.Token, map[string]any{
		"userId":          user.ID,
		"paymentIntentId": "pi_wifi_1",
	})
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 200, w.Code)
	body, _ := io.ReadAll(w.Body)
	assert.True(s.T(), strings.HasPrefix(gjson.GetBytes(body, "data.wifiId").String(), "WIFI_"))

	assert.Nil(s.T(), dbi.Where(&models.User{Email: "rider@example.com"}).First(&user).Error)
	assert.True(s.T(), user.WifiSubscriptionActive)
	assert.NotNil(s.T(), user.WifiSubscriptionExpiry)

	w = httptest.NewRecorder()
	req = jsonRequest("GET", "/api/v1/wifi/status", s.Token, nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 200, w.Code)
	body, _ = io.ReadAll(w.Body)
	assert.True(s.T(), gjson.GetBytes(body, "data.active").Bool())
}

func (s *TestSuite) TestStudentVerification() {
	router := newTestRouter()

	s.Run("Should accept a verification submission", func() {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("studentIdCard", "idcard.png")
		assert.Nil(s.T(), err)
		part.Write([]byte("not-really-a-png"))
		mw.Close()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/students/verify", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.Token))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 200, w.Code)

		var user models.User
		assert.Nil(s.T(), dbi.Where(&models.User{Email: "rider@example.com"}).First(&user).Error)
		assert.Equal(s.T(), types.VERIFICATION_PENDING, user.StudentVerificationStatus)
	})

	s.Run("Should verify the student with a six month expiry", func() {
		var user models.User
		assert.Nil(s.T(), dbi.Where(&models.User{Email: "rider@example.com"}).First(&user).Error)

		w := httptest.NewRecorder()
		req := jsonRequest("PUT", fmt.Sprintf("/api/v1/admin/students/%d/verify", user.ID), s.AdminToken, map[string]any{
			"action": "verify",
		})
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 200, w.Code)

		assert.Nil(s.T(), dbi.Where(&models.User{Email: "rider@example.com"}).First(&user).Error)
		assert.True(s.T(), user.IsStudent)
		assert.Equal(s.T(), types.VERIFICATION_VERIFIED, user.StudentVerificationStatus)
		assert.NotNil(s.T(), user.StudentVerificationExpiry)
	})
}

func TestSuiteRun(t *testing.T) {
	suite.Run(t, new(TestSuite))
}
