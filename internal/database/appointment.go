package repository

import (
	"DentEase/entity"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (m *MongoDB) AllAppointments(ctx context.Context) ([]entity.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{"appointment_date", -1}})
	return findAll[entity.Appointment](m, ctx, appointmentsCollection, bson.D{}, opts)
}

func (m *MongoDB) GetAppointment(ctx context.Context, id string) (*entity.Appointment, error) {
	return findOne[entity.Appointment](m, ctx, appointmentsCollection, idFilter(id))
}

// UpdateAppointmentStatus moves an appointment from one status to another. The
// update only matches while the stored status is still from, so a concurrent
// change makes it fail with ErrInvalidStateTransition.
func (m *MongoDB) UpdateAppointmentStatus(ctx context.Context, id string, from, to entity.AppointmentStatus) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	filter := append(idFilter(id), bson.E{Key: "status", Value: from})
	update := bson.D{{"$set", bson.D{{"status", to}}}}
	res, err := m.collection(connection, appointmentsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("mongodb update appointment status: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: appointment %s is no longer %s", entity.ErrInvalidStateTransition, id, from)
	}
	return nil
}
