package utils

import (
	"fmt"
	"time"
)

const (
	AppointmentDateLayout = "2006-01-02"
	AppointmentTimeLayout = "15:04"
)

// ParseAppointmentSlot combines the date and time fields of a booking into a
// single instant in the server's local timezone.
func ParseAppointmentSlot(date, clock string) (time.Time, error) {
	slot, err := time.ParseInLocation(
		AppointmentDateLayout+" "+AppointmentTimeLayout,
		fmt.Sprintf("%s %s", date, clock),
		time.Local,
	)
	if err != nil {
		return time.Time{}, err
	}
	return slot, nil
}

func SlotInPast(date, clock string, now time.Time) bool {
	slot, err := ParseAppointmentSlot(date, clock)
	if err != nil {
		return false
	}
	return slot.Before(now)
}
