package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/Hbollas/LashTechBooking/internal/models"
)

const whenLayout = "Monday, January 2 at 3:04 PM"

// Message is a rendered notification ready for a Notifier.
type Message struct {
	To      string
	Subject string
	Body    string
}

func AppointmentConfirmed(ap models.Appointment, loc *time.Location) Message {
	return Message{
		To:      ap.CustomerEmail,
		Subject: "Your appointment is confirmed",
		Body: greeting(ap) +
			fmt.Sprintf("Your %s appointment on %s is confirmed.\n", serviceName(ap), when(ap, loc)) +
			"\nSee you soon!\n",
	}
}

func AppointmentCancelled(ap models.Appointment, loc *time.Location) Message {
	return Message{
		To:      ap.CustomerEmail,
		Subject: "Your appointment was cancelled",
		Body: greeting(ap) +
			fmt.Sprintf("Your %s appointment on %s has been cancelled.\n", serviceName(ap), when(ap, loc)) +
			"\nYou are welcome to book another time.\n",
	}
}

func greeting(ap models.Appointment) string {
	name := strings.TrimSpace(ap.CustomerName)
	if name == "" {
		return "Hello,\n\n"
	}
	return "Hi " + name + ",\n\n"
}

func serviceName(ap models.Appointment) string {
	if ap.ServiceOffering.Name != "" {
		return ap.ServiceOffering.Name
	}
	return "lash"
}

func when(ap models.Appointment, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return ap.StartUTC.In(loc).Format(whenLayout)
}
