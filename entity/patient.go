package entity

import "time"

type Patient struct {
	ID          string `json:"id" bson:"_id" validate:"required"`
	Name        string `json:"name" bson:"name"`
	PhoneNumber string `json:"phoneNumber" bson:"phone_number"`
	Address     string `json:"address" bson:"address"`
	Email       string `json:"email" bson:"email"`
}

func (p *Patient) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return "Unnamed"
}

// PatientRow is a patient joined with the date of their most recent appointment.
type PatientRow struct {
	ID                  string     `json:"id"`
	UserName            string     `json:"userName"`
	PhoneNumber         string     `json:"phoneNumber"`
	Address             string     `json:"address"`
	Email               string     `json:"email"`
	LastAppointmentDate *time.Time `json:"lastAppointmentDate,omitempty"`
	LastAppointment     string     `json:"lastAppointment"`
}

func (p *PatientRow) HasAppointment() bool {
	return p.LastAppointmentDate != nil
}
