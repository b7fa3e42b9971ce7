package booking

import "github.com/MehnatiMazdor/appointment-ms/internal/models"

// CanTransition reports whether role may move an appointment from
// current to requested. Anything not listed is forbidden, including
// unknown roles and unknown statuses:
//
//	patient: pending -> cancelled
//	admin:   pending -> scheduled
//	doctor:  any known status -> any known status
//
// current must be the freshly read persisted status, never one the
// client supplied.
func CanTransition(role models.Role, current, requested models.AppointmentStatus) bool {
	if !models.ValidStatus(current) || !models.ValidStatus(requested) {
		return false
	}

	switch role {
	case models.RolePatient:
		return current == models.StatusPending && requested == models.StatusCancelled
	case models.RoleAdmin:
		return current == models.StatusPending && requested == models.StatusScheduled
	case models.RoleDoctor:
		return true
	}
	return false
}
