package booking

import (
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/MehnatiMazdor/appointment-ms/internal/models"
)

const (
	maxNameLength  = 100
	maxNotesLength = 200
	phoneDigits    = 11
	phonePrefix    = "03"
)

// Request carries the client-supplied fields of a booking, before any
// server-side data is attached.
type Request struct {
	PatientName     string  `json:"patient_name"`
	Age             float64 `json:"age"`
	Gender          string  `json:"gender"`
	Relation        string  `json:"relation"`
	Phone           string  `json:"phone"`
	AppointmentDate string  `json:"appointment_date"`
	AppointmentTime string  `json:"appointment_time"`
	Notes           string  `json:"notes"`
}

// NormalizePhone strips every non-digit character from raw.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Validate checks a booking request against the calendar and the slot
// list and returns every failure, not just the first. An empty result
// means the request is structurally sound; admission policy is a
// separate step.
func Validate(req Request, cal Calendar, now time.Time) []string {
	var errs []string

	name := strings.TrimSpace(req.PatientName)
	if name == "" {
		errs = append(errs, "Name is required")
	} else if utf8.RuneCountInString(name) > maxNameLength {
		errs = append(errs, "Name cannot exceed 100 characters")
	}

	phone := NormalizePhone(req.Phone)
	switch {
	case phone == "":
		errs = append(errs, "Phone number is required")
	case len(phone) != phoneDigits:
		errs = append(errs, "Phone number must be 11 digits long (e.g., 03xxxxxxxxx).")
	case !strings.HasPrefix(phone, phonePrefix):
		errs = append(errs, "Phone number must start with '03'.")
	}

	if req.Age < 0 {
		errs = append(errs, "Age must be a positive number.")
	} else if req.Age >= 1 && req.Age != math.Trunc(req.Age) {
		// fractional ages only make sense below one year (infants in
		// month-fractions)
		errs = append(errs, "Age must be a whole number for patients one year and older.")
	}

	if !models.ValidGender(models.Gender(req.Gender)) {
		errs = append(errs, "Invalid gender selected.")
	}

	if !models.ValidRelation(models.Relation(req.Relation)) {
		errs = append(errs, "Invalid relation selected.")
	}

	if !cal.DateAvailable(req.AppointmentDate, now) {
		errs = append(errs, "Selected date is not available. Please choose a valid date from the list.")
	}

	if !ValidTimeSlot(req.AppointmentTime) {
		errs = append(errs, "Selected time is not available. Please choose a valid time from the list.")
	}

	// limits count characters, not bytes
	if utf8.RuneCountInString(req.Notes) > maxNotesLength {
		errs = append(errs, "Notes cannot exceed 200 characters")
	}

	return errs
}
