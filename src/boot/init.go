package boot

import (
	"log"
	"os"
	"time"

	"mrt/src/config"
	"mrt/src/db"
	"mrt/src/lib"
	"mrt/src/models"
	"mrt/src/utils"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
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

	return db
}

func InitDirs() {
	if err := os.MkdirAll(config.UPLOADS_DIR, 0o755); err != nil {
		log.Printf("Could not create uploads directory: %s\n", err.Error())
	}
	tempdir := os.Getenv("TEMP_DIR")
	if tempdir != "" {
		if err := os.MkdirAll(tempdir, 0o755); err != nil {
			log.Printf("Could not create temp directory: %s\n", err.Error())
		}
	}
}

func InitScheduler() {
	id, err := lib.CreateCronJob(utils.PurgeExpiredBookings, 1*time.Hour)
	if err != nil {
		log.Printf("Error scheduling purge job: %s\n", err.Error())
		return
	}
	log.Printf("Job ID: %s\n", *id)
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	err = sched.Shutdown()
	if err != nil {
		log.Println("An error has occurred while shutting stopping Scheduler. Check logs for info")
		return
	}
}
