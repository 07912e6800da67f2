package entity

import (
	"slices"
	"time"
)

type AppointmentStatus string

const (
	StatusPending  AppointmentStatus = "pending"
	StatusApproved AppointmentStatus = "approved"
	StatusDeclined AppointmentStatus = "declined"
	StatusFinished AppointmentStatus = "finished"
)

var transitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:  {StatusApproved, StatusDeclined},
	StatusApproved: {StatusFinished},
}

func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	status := AppointmentStatus(s)
	switch status {
	case StatusPending, StatusApproved, StatusDeclined, StatusFinished:
		return status, nil
	}
	return "", ErrInvalidStatus
}

func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	return slices.Contains(transitions[s], next)
}

func (s AppointmentStatus) Terminal() bool {
	return len(transitions[s]) == 0
}

// OperatorActions lists the statuses the dashboard may offer for an appointment.
// Finishing an appointment is done by the booking system, never from here.
func (s AppointmentStatus) OperatorActions() []AppointmentStatus {
	actions := make([]AppointmentStatus, 0, 2)
	for _, next := range transitions[s] {
		if next != StatusFinished {
			actions = append(actions, next)
		}
	}
	return actions
}

type Appointment struct {
	ID              string            `json:"id" bson:"_id" validate:"required"`
	UserID          string            `json:"userId,omitempty" bson:"user_id,omitempty"`
	UserName        string            `json:"userName" bson:"user_name"`
	UserEmail       string            `json:"userEmail,omitempty" bson:"user_email,omitempty"`
	Doctor          string            `json:"doctor" bson:"doctor"`
	Services        []string          `json:"services" bson:"services"`
	AppointmentDate time.Time         `json:"appointmentDate" bson:"appointment_date"`
	Time            string            `json:"time" bson:"time"`
	Status          AppointmentStatus `json:"status" bson:"status" validate:"required,oneof=pending approved declined finished"`
}

// DateKey groups appointments per calendar day.
func (a *Appointment) DateKey() string {
	if a.AppointmentDate.IsZero() {
		return "-"
	}
	return a.AppointmentDate.Format(time.DateOnly)
}

// AppointmentRow is an appointment with the status changes the operator may apply.
type AppointmentRow struct {
	Appointment
	Actions []AppointmentStatus `json:"actions"`
}
