package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/mindhaven/internal/client/api"
)

var errUnknownAppointment = errors.New("appointment not found")

func (a *App) therapists(ctx context.Context, args []string) error {
	list, err := a.client.ListTherapists(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println("No therapists match.")
		return nil
	}
	for _, t := range list {
		a.printf("[%s] %s", t.Key(), t.Name)
		if t.Title != "" {
			a.printf(", %s", t.Title)
		}
		a.println()
		if len(t.Specialties) > 0 {
			a.printf("    %s\n", strings.Join(t.Specialties, ", "))
		}
		if len(t.Availability) > 0 {
			a.printf("    available: %s\n", strings.Join(t.Availability, ", "))
		}
	}
	return nil
}

// book shows the therapist, then asks for a slot.
func (a *App) book(ctx context.Context, args []string) error {
	id, err := argID(args, "book <therapist id>")
	if err != nil {
		return err
	}
	t, err := a.client.GetTherapist(ctx, id)
	if err != nil {
		return err
	}
	a.printf("Booking with %s\n", t.Name)
	if t.Bio != "" {
		a.println(t.Bio)
	}
	in, err := a.readSlot(id)
	if err != nil {
		return err
	}
	appt, err := a.client.BookAppointment(ctx, in)
	if err != nil {
		return err
	}
	a.printf("Appointment booked for %s at %s (%s).\n", appt.Date, appt.Time, appt.Key())
	return nil
}

func (a *App) appointments(ctx context.Context) error {
	list, err := a.client.ListAppointments(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println("No appointments booked.")
		return nil
	}
	for _, ap := range list {
		a.printf("[%s] %s %s with %s", ap.Key(), ap.Date, ap.Time, ap.TherapistID)
		if ap.Status != "" {
			a.printf("  %s", ap.Status)
		}
		a.println()
	}
	return nil
}

func (a *App) reschedule(ctx context.Context, args []string) error {
	id, err := argID(args, "reschedule <id>")
	if err != nil {
		return err
	}
	list, err := a.client.ListAppointments(ctx)
	if err != nil {
		return err
	}
	therapist := ""
	for _, ap := range list {
		if ap.Key() == id {
			therapist = ap.TherapistID
		}
	}
	if therapist == "" {
		return errUnknownAppointment
	}
	in, err := a.readSlot(therapist)
	if err != nil {
		return err
	}
	appt, err := a.client.UpdateAppointment(ctx, id, in)
	if err != nil {
		return err
	}
	a.printf("Appointment moved to %s at %s.\n", appt.Date, appt.Time)
	return nil
}

func (a *App) cancelAppointment(ctx context.Context, args []string) error {
	id, err := argID(args, "cancel <id>")
	if err != nil {
		return err
	}
	msg, err := a.client.CancelAppointment(ctx, id)
	if err != nil {
		return err
	}
	a.println(orDefault(msg.Message, "Appointment cancelled"))
	return nil
}

func (a *App) readSlot(therapistID string) (api.AppointmentInput, error) {
	in := api.AppointmentInput{TherapistID: therapistID}
	var err error
	if in.Date, err = a.prompt("Date (YYYY-MM-DD)"); err != nil {
		return in, err
	}
	if in.Time, err = a.prompt("Time (e.g. 10:00)"); err != nil {
		return in, err
	}
	if in.Notes, err = a.prompt("Notes (optional)"); err != nil {
		return in, err
	}
	return in, nil
}
