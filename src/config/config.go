package config

import (
	"fmt"
	"os"
	"time"
)

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

var API_ENV = os.Getenv("API_ENV")

const TIME_PARSE_FORMAT = "2006-01-02 15:04:05 -07:00"

// Schedule departure and arrival times are stored as wall-clock strings.
const TRAIN_TIME_FORMAT = "15:04"

const TICKET_ID_PREFIX = "TKT"

// A purchased ticket stays valid for a week from booking.
const TICKET_VALIDITY = 7 * 24 * time.Hour

const WIFI_SUBSCRIPTION_VALIDITY = 30 * 24 * time.Hour

// Verified student status has to be renewed twice a year.
const STUDENT_VERIFICATION_VALIDITY = 6 * 30 * 24 * time.Hour

const UPLOADS_DIR = "uploads"
