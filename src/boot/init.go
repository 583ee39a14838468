package boot

import (
	"log"
	"time"

	"hros/src/db"
	"hros/src/lib"
	"hros/src/models"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Department{},
		&models.Employee{},
		&models.RoutingRule{},
		&models.Route{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	j, err := sched.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(ReportOrphanedNotifications),
	)
	if err != nil {
		log.Printf("Error running job: %s\n", err.Error())
		return
	}
	log.Printf("Job ID: %s %s\n", j.Name(), j.ID().String())
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
		log.Println("An error has occurred while stopping Scheduler. Check logs for info")
		return
	}
}

// ReportOrphanedNotifications counts undeliverable notifications so bad
// directory data (no supervisor, no HR contact) shows up in the logs instead
// of going unnoticed.
func ReportOrphanedNotifications() {
	db := db.GetDb()
	var count int64
	err := db.
		Model(&models.Notification{}).
		Where("recipient_id IS NULL").
		Count(&count).
		Error
	if err != nil {
		log.Printf("Error counting orphaned notifications: %s\n", err.Error())
		return
	}
	if count > 0 {
		log.Printf("[routing] %d notifications have no recipient; review directory data\n", count)
	}
}
