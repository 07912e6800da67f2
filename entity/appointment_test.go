package entity

import (
	"errors"
	"slices"
	"testing"
)

func TestAppointmentStatusTransitions(t *testing.T) {
	all := []AppointmentStatus{StatusPending, StatusApproved, StatusDeclined, StatusFinished}
	allowed := map[AppointmentStatus][]AppointmentStatus{
		StatusPending:  {StatusApproved, StatusDeclined},
		StatusApproved: {StatusFinished},
	}

	for _, from := range all {
		for _, to := range all {
			want := slices.Contains(allowed[from], to)
			if got := from.CanTransitionTo(to); got != want {
				t.Fatalf("%s -> %s: expected %v, got %v", from, to, want, got)
			}
		}
	}
}

func TestDeclinedCannotBeApproved(t *testing.T) {
	if StatusDeclined.CanTransitionTo(StatusApproved) {
		t.Fatal("declined -> approved must be rejected")
	}
	if !StatusDeclined.Terminal() || !StatusFinished.Terminal() {
		t.Fatal("declined and finished must be terminal")
	}
}

func TestOperatorActionsNeverOfferIllegalTransitions(t *testing.T) {
	cases := map[AppointmentStatus][]AppointmentStatus{
		StatusPending:  {StatusApproved, StatusDeclined},
		StatusApproved: {},
		StatusDeclined: {},
		StatusFinished: {},
	}
	for status, want := range cases {
		got := status.OperatorActions()
		if !slices.Equal(got, want) {
			t.Fatalf("%s: expected actions %v, got %v", status, want, got)
		}
		for _, next := range got {
			if !status.CanTransitionTo(next) {
				t.Fatalf("%s offers illegal action %s", status, next)
			}
		}
	}
}

func TestParseAppointmentStatus(t *testing.T) {
	if s, err := ParseAppointmentStatus("approved"); err != nil || s != StatusApproved {
		t.Fatalf("expected approved, got %q (%v)", s, err)
	}
	if _, err := ParseAppointmentStatus("cancelled"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}
