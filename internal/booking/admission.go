package booking

import (
	"fmt"
	"strings"

	"github.com/MehnatiMazdor/appointment-ms/internal/models"
)

// Daily quota limits, counted over pending rows only.
const (
	MaxDailyTotal = 5
	MaxDailySelf  = 1
)

// Machine-readable admission rejection codes.
const (
	CodeDailyTotalLimit = "DAILY_TOTAL_LIMIT_REACHED"
	CodeDailyPolicy     = "DAILY_APPOINTMENT_POLICY_VIOLATION"
)

// PendingAppointment is the slice of an existing pending row the
// admission rules inspect.
type PendingAppointment struct {
	Relation    models.Relation
	PatientName string
}

// AdmissionResult is the outcome of the daily quota check. When
// Admitted is false, Code and Messages describe the rejection.
type AdmissionResult struct {
	Admitted bool
	Code     string
	Messages []string
}

// Admit decides whether a new booking for date may join the owner's
// existing pending appointments on that date. The total cap is
// authoritative and short-circuits; the self and per-relative rules
// are evaluated together so the caller gets every violation at once.
func Admit(relation models.Relation, patientName, date string, existing []PendingAppointment) AdmissionResult {
	if len(existing) >= MaxDailyTotal {
		return AdmissionResult{
			Code: CodeDailyTotalLimit,
			Messages: []string{
				fmt.Sprintf("You have reached the maximum of %d pending appointments for %s.", MaxDailyTotal, date),
			},
		}
	}

	selfCount := 0
	relativeNames := make(map[string]struct{})
	for _, apt := range existing {
		if apt.Relation == models.RelationSelf {
			selfCount++
		} else if apt.PatientName != "" {
			relativeNames[normalizeName(apt.PatientName)] = struct{}{}
		}
	}

	var policyErrors []string
	if relation == models.RelationSelf {
		if selfCount >= MaxDailySelf {
			policyErrors = append(policyErrors,
				fmt.Sprintf("You already have a pending appointment for yourself on %s.", date))
		}
	} else if _, dup := relativeNames[normalizeName(patientName)]; dup {
		policyErrors = append(policyErrors,
			fmt.Sprintf("You already have a pending appointment for '%s' on %s.", patientName, date))
	}

	if len(policyErrors) > 0 {
		return AdmissionResult{Code: CodeDailyPolicy, Messages: policyErrors}
	}
	return AdmissionResult{Admitted: true}
}

// normalizeName is the comparison key for the per-relative uniqueness
// rule: trimmed, case-insensitive.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
