package store

import (
	"errors"
	"math"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MehnatiMazdor/appointment-ms/internal/booking"
	"github.com/MehnatiMazdor/appointment-ms/internal/models"
)

// DefaultPageSize is the listing page size when the client does not
// ask for one.
const DefaultPageSize = 7

// ErrAdmissionRejected marks a create that was blocked by the daily
// quota policy rather than by an infrastructure failure. The
// AdmissionResult returned alongside it carries the code and messages.
var ErrAdmissionRejected = errors.New("appointment rejected by daily admission policy")

// ErrStatusConflict marks a status update whose row changed between
// the authorizing read and the conditional write.
var ErrStatusConflict = errors.New("appointment status changed concurrently")

// AppointmentStore is the query/update gateway the booking engines use
// against persisted appointment rows.
type AppointmentStore struct {
	db *gorm.DB
}

// NewAppointmentStore creates a new AppointmentStore.
func NewAppointmentStore(db *gorm.DB) *AppointmentStore {
	return &AppointmentStore{db: db}
}

// CreateAdmitted runs the daily quota check and the insert in one
// transaction: the owner's existing pending rows for the date are
// locked, the admission rules re-evaluated against them, and the row
// inserted only on acceptance. Two concurrent bookings for the same
// owner and date therefore serialize instead of both passing the
// count.
func (s *AppointmentStore) CreateAdmitted(apt *models.Appointment) (booking.AdmissionResult, error) {
	var result booking.AdmissionResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		q := tx.Where("user_id = ? AND appointment_date = ? AND status = ?",
			apt.UserID, apt.AppointmentDate, models.StatusPending)
		if tx.Dialector.Name() != "sqlite" {
			// sqlite serializes writers on its own and has no FOR UPDATE
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var existing []models.Appointment
		if err := q.Find(&existing).Error; err != nil {
			return err
		}

		pending := make([]booking.PendingAppointment, len(existing))
		for i, row := range existing {
			pending[i] = booking.PendingAppointment{
				Relation:    row.Relation,
				PatientName: row.PatientName,
			}
		}

		result = booking.Admit(apt.Relation, apt.PatientName, apt.AppointmentDate, pending)
		if !result.Admitted {
			return ErrAdmissionRejected
		}

		apt.Status = models.StatusPending
		return tx.Create(apt).Error
	})

	return result, err
}

// GetByID fetches a single appointment row.
func (s *AppointmentStore) GetByID(id string) (*models.Appointment, error) {
	var apt models.Appointment
	if err := s.db.First(&apt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &apt, nil
}

// TransitionStatus performs the single-row conditional update from
// one status to another. RowsAffected distinguishes a lost race from
// a missing row: when the row exists but no longer holds from,
// ErrStatusConflict is returned and nothing is mutated.
func (s *AppointmentStore) TransitionStatus(id string, from, to models.AppointmentStatus) (*models.Appointment, error) {
	res := s.db.Model(&models.Appointment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var apt models.Appointment
		if err := s.db.First(&apt, "id = ?", id).Error; err != nil {
			return nil, err // gorm.ErrRecordNotFound when the row is gone
		}
		return nil, ErrStatusConflict
	}
	return s.GetByID(id)
}

// ListFilter describes one listing request. An empty OwnerID means
// all owners; an empty Status means all statuses; empty FromDate and
// ToDate mean no date scoping.
type ListFilter struct {
	OwnerID  string
	Status   models.AppointmentStatus
	FromDate string
	ToDate   string
	Page     int
	PageSize int
}

// Stats are counts over the date-scoped set, before any status filter
// narrows the visible list.
type Stats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Scheduled int64 `json:"scheduled"`
	Cancelled int64 `json:"cancelled"`
}

// Pagination is the offset-based paging envelope; pages are 1-indexed.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
}

// List returns the page of appointments matching f, plus stats over
// the date-scoped set and the pagination envelope. Rows are ordered by
// ascending appointment_date.
func (s *AppointmentStore) List(f ListFilter) ([]models.Appointment, Stats, Pagination, error) {
	page := f.Page
	if page < 1 {
		page = 1
	}
	pageSize := f.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	scoped := s.db.Model(&models.Appointment{})
	if f.OwnerID != "" {
		scoped = scoped.Where("user_id = ?", f.OwnerID)
	}
	if f.FromDate != "" {
		scoped = scoped.Where("appointment_date >= ?", f.FromDate)
	}
	if f.ToDate != "" {
		scoped = scoped.Where("appointment_date <= ?", f.ToDate)
	}

	stats, err := s.countByStatus(scoped)
	if err != nil {
		return nil, Stats{}, Pagination{}, err
	}

	filtered := scoped
	if f.Status != "" {
		filtered = filtered.Where("status = ?", f.Status)
	}

	var filteredCount int64
	if err := filtered.Session(&gorm.Session{}).Count(&filteredCount).Error; err != nil {
		return nil, Stats{}, Pagination{}, err
	}

	var items []models.Appointment
	err = filtered.Session(&gorm.Session{}).
		Order("appointment_date asc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error
	if err != nil {
		return nil, Stats{}, Pagination{}, err
	}

	pagination := Pagination{
		CurrentPage: page,
		TotalPages:  int(math.Max(1, math.Ceil(float64(filteredCount)/float64(pageSize)))),
		TotalItems:  filteredCount,
	}
	return items, stats, pagination, nil
}

func (s *AppointmentStore) countByStatus(scoped *gorm.DB) (Stats, error) {
	var rows []struct {
		Status models.AppointmentStatus
		N      int64
	}
	err := scoped.Session(&gorm.Session{}).
		Select("status, count(*) as n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return Stats{}, err
	}

	var stats Stats
	for _, row := range rows {
		stats.Total += row.N
		switch row.Status {
		case models.StatusPending:
			stats.Pending = row.N
		case models.StatusScheduled:
			stats.Scheduled = row.N
		case models.StatusCancelled:
			stats.Cancelled = row.N
		}
	}
	return stats, nil
}

// ContactDetails are the prefill fields carried over from an owner's
// most recent self appointment.
type ContactDetails struct {
	PatientName string        `json:"patient_name"`
	Age         float64       `json:"age"`
	Gender      models.Gender `json:"gender"`
	Phone       string        `json:"phone"`
}

// LastSelfContact returns the contact fields of the owner's most
// recent relation=self appointment, or nil when they have none.
func (s *AppointmentStore) LastSelfContact(ownerID string) (*ContactDetails, error) {
	var apt models.Appointment
	err := s.db.
		Where("user_id = ? AND relation = ?", ownerID, models.RelationSelf).
		Order("created_at desc").
		First(&apt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ContactDetails{
		PatientName: apt.PatientName,
		Age:         apt.Age,
		Gender:      apt.Gender,
		Phone:       apt.Phone,
	}, nil
}
