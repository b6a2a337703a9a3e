package jobs

import (
	"context"
	"log"
	"time"

	db "ClinicSphere/config/db"
	"ClinicSphere/models"
	"ClinicSphere/services"
	"ClinicSphere/util"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
)

func StartDailyScheduler() {
	c := cron.New()

	// Runs every day at 08:00
	c.AddFunc("0 8 * * *", func() {
		log.Println("Running daily appointment reminder run...")
		RunReminderRun()
	})

	c.Start()
}

/*
* Find every stored-Upcoming appointment happening in the next 24 hours
* Push a reminder notification to the patient behind each one
 */
func RunReminderRun() {
	ctx := context.Background()
	now := time.Now()

	coll := db.OpenCollections(util.AppointmentCollection)
	var appointments []models.Appointment
	if err := db.FindAll(ctx, coll, bson.M{"status": util.StatusUpcoming}, &appointments); err != nil {
		log.Println("Error fetching upcoming appointments:", err)
		return
	}

	for i := range appointments {
		appointment := &appointments[i]
		if !DueWithin(appointment.Date, now, 24*time.Hour) {
			continue
		}
		services.SendAppointmentNotificationToPatient(ctx, appointment, "coming up")
	}
}

/*
* Dates are stored as strings, so the window check parses in process
* Unparseable dates never remind
 */
func DueWithin(date string, now time.Time, window time.Duration) bool {
	parsed, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return false
	}
	return parsed.After(now) && parsed.Before(now.Add(window))
}
