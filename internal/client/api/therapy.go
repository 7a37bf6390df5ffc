package api

import (
	"context"
	"net/http"
	"net/url"
)

// ListTherapists returns therapists, filtered by specialty when non-empty.
func (c *Client) ListTherapists(ctx context.Context, specialty string) ([]Therapist, error) {
	e := endpoint{op: "list therapists", method: http.MethodGet, path: "/therapy/therapists", fallback: "Failed to get therapists"}
	if specialty != "" {
		e.query = url.Values{"specialty": {specialty}}
	}
	return call[[]Therapist](ctx, c, e)
}

func (c *Client) GetTherapist(ctx context.Context, id string) (Therapist, error) {
	e := endpoint{op: "get therapist", method: http.MethodGet, fallback: "Failed to get therapist details"}
	if err := requireID(&e, "id", id, "/therapy/therapists/%s"); err != nil {
		return Therapist{}, err
	}
	return call[Therapist](ctx, c, e)
}

func (c *Client) BookAppointment(ctx context.Context, in AppointmentInput) (Appointment, error) {
	e := endpoint{op: "book appointment", method: http.MethodPost, path: "/therapy/appointment", body: in, fallback: "Failed to book appointment"}
	if err := c.checkInput(e, in); err != nil {
		return Appointment{}, err
	}
	return call[Appointment](ctx, c, e)
}

func (c *Client) ListAppointments(ctx context.Context) ([]Appointment, error) {
	return call[[]Appointment](ctx, c, endpoint{op: "list appointments", method: http.MethodGet, path: "/therapy/appointments", fallback: "Failed to get appointments"})
}

func (c *Client) UpdateAppointment(ctx context.Context, id string, in AppointmentInput) (Appointment, error) {
	e := endpoint{op: "update appointment", method: http.MethodPut, body: in, fallback: "Failed to update appointment"}
	if err := requireID(&e, "id", id, "/therapy/appointment/%s"); err != nil {
		return Appointment{}, err
	}
	if err := c.checkInput(e, in); err != nil {
		return Appointment{}, err
	}
	return call[Appointment](ctx, c, e)
}

func (c *Client) CancelAppointment(ctx context.Context, id string) (Message, error) {
	e := endpoint{op: "cancel appointment", method: http.MethodDelete, fallback: "Failed to cancel appointment"}
	if err := requireID(&e, "id", id, "/therapy/appointment/%s"); err != nil {
		return Message{}, err
	}
	return call[Message](ctx, c, e)
}
