package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/deftec/counseling_platform/database"
	"github.com/deftec/counseling_platform/models"
	"github.com/deftec/counseling_platform/notifications"
)

// SendAppointmentReminders emails both sides of every pending appointment
// scheduled for tomorrow. Runs once a day.
func SendAppointmentReminders() {
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	var upcoming []models.Appointment
	err := database.DB.
		Preload("Student").
		Preload("Counselor").
		Preload("Specialization").
		Where("date = ? AND status = ?", tomorrow, models.AppointmentPending).
		Find(&upcoming).Error
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	for _, appt := range upcoming {
		body := fmt.Sprintf("<h1>Appointment Reminder</h1><p>Your %s session is scheduled for %s at %s.</p>",
			appt.Specialization.Name, appt.DateString(), appt.Time)
		notifications.SendEmail(appt.Student.FullName(), appt.Student.Email, "Appointment Reminder", body)
		notifications.SendEmail(appt.Counselor.FullName(), appt.Counselor.Email, "Appointment Reminder", body)
	}

	if len(upcoming) > 0 {
		log.Printf("Sent reminders for %d appointment(s).", len(upcoming))
	}
}
