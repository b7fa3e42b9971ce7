package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/MehnatiMazdor/appointment-ms/internal/booking"
	"github.com/MehnatiMazdor/appointment-ms/internal/models"
)

func setupStoreTestDB(t *testing.T) *AppointmentStore {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("connect test db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Appointment{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return NewAppointmentStore(db)
}

func testAppointment(ownerID string, relation models.Relation, name, date string) *models.Appointment {
	return &models.Appointment{
		UserID:          ownerID,
		PatientName:     name,
		Age:             30,
		Gender:          models.GenderMale,
		Relation:        relation,
		Phone:           "03012345678",
		AppointmentDate: date,
		AppointmentTime: "09:30",
	}
}

func TestCreateAdmittedInsertsPending(t *testing.T) {
	s := setupStoreTestDB(t)

	apt := testAppointment("owner-1", models.RelationSelf, "Ali Raza", "2024-06-10")
	res, err := s.CreateAdmitted(apt)
	assert.NoError(t, err)
	assert.True(t, res.Admitted)
	assert.NotEmpty(t, apt.ID)
	assert.Equal(t, models.StatusPending, apt.Status)

	stored, err := s.GetByID(apt.ID)
	assert.NoError(t, err)
	assert.Equal(t, "owner-1", stored.UserID)
	assert.Equal(t, models.StatusPending, stored.Status)
}

func TestCreateAdmittedEnforcesQuota(t *testing.T) {
	s := setupStoreTestDB(t)

	// second self booking on the same date is rejected and not persisted
	_, err := s.CreateAdmitted(testAppointment("owner-1", models.RelationSelf, "Ali Raza", "2024-06-10"))
	assert.NoError(t, err)

	dup := testAppointment("owner-1", models.RelationSelf, "Ali Raza", "2024-06-10")
	res, err := s.CreateAdmitted(dup)
	assert.ErrorIs(t, err, ErrAdmissionRejected)
	assert.False(t, res.Admitted)
	assert.Equal(t, booking.CodeDailyPolicy, res.Code)

	var count int64
	s.db.Model(&models.Appointment{}).Where("user_id = ?", "owner-1").Count(&count)
	assert.Equal(t, int64(1), count)

	// another owner and another date are unaffected
	_, err = s.CreateAdmitted(testAppointment("owner-2", models.RelationSelf, "Bilal", "2024-06-10"))
	assert.NoError(t, err)
	_, err = s.CreateAdmitted(testAppointment("owner-1", models.RelationSelf, "Ali Raza", "2024-06-11"))
	assert.NoError(t, err)
}

func TestCreateAdmittedIgnoresNonPendingRows(t *testing.T) {
	s := setupStoreTestDB(t)

	first := testAppointment("owner-1", models.RelationSelf, "Ali Raza", "2024-06-10")
	_, err := s.CreateAdmitted(first)
	assert.NoError(t, err)

	// cancel it; the quota only counts pending rows, so a new self
	// booking on the date is admitted again
	_, err = s.TransitionStatus(first.ID, models.StatusPending, models.StatusCancelled)
	assert.NoError(t, err)

	res, err := s.CreateAdmitted(testAppointment("owner-1", models.RelationSelf, "Ali Raza", "2024-06-10"))
	assert.NoError(t, err)
	assert.True(t, res.Admitted)
}

func TestCreateAdmittedTotalCap(t *testing.T) {
	s := setupStoreTestDB(t)

	relations := []models.Relation{
		models.RelationSelf, models.RelationFather, models.RelationMother,
		models.RelationSon, models.RelationDaughter,
	}
	names := []string{"Ali Raza", "Akbar", "Nusrat", "Hamza", "Ayesha"}
	for i, r := range relations {
		_, err := s.CreateAdmitted(testAppointment("owner-1", r, names[i], "2024-06-10"))
		assert.NoError(t, err)
	}

	res, err := s.CreateAdmitted(testAppointment("owner-1", models.RelationBrother, "Bilal", "2024-06-10"))
	assert.ErrorIs(t, err, ErrAdmissionRejected)
	assert.Equal(t, booking.CodeDailyTotalLimit, res.Code)
}

func TestTransitionStatusConditionalUpdate(t *testing.T) {
	s := setupStoreTestDB(t)

	apt := testAppointment("owner-1", models.RelationSelf, "Ali Raza", "2024-06-10")
	_, err := s.CreateAdmitted(apt)
	assert.NoError(t, err)

	updated, err := s.TransitionStatus(apt.ID, models.StatusPending, models.StatusScheduled)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusScheduled, updated.Status)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt) || updated.UpdatedAt.Equal(updated.CreatedAt))

	// a second writer holding the stale status loses the race and the
	// row keeps its current value
	_, err = s.TransitionStatus(apt.ID, models.StatusPending, models.StatusCancelled)
	assert.ErrorIs(t, err, ErrStatusConflict)

	current, err := s.GetByID(apt.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusScheduled, current.Status)
}

func TestTransitionStatusMissingRow(t *testing.T) {
	s := setupStoreTestDB(t)

	_, err := s.TransitionStatus("no-such-id", models.StatusPending, models.StatusCancelled)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func seedListFixtures(t *testing.T, s *AppointmentStore) {
	t.Helper()

	rows := []struct {
		owner    string
		date     string
		status   models.AppointmentStatus
		relation models.Relation
		name     string
	}{
		{"owner-1", "2024-06-10", models.StatusPending, models.RelationSelf, "Ali Raza"},
		{"owner-1", "2024-06-11", models.StatusScheduled, models.RelationFather, "Akbar"},
		{"owner-1", "2024-06-12", models.StatusCancelled, models.RelationMother, "Nusrat"},
		{"owner-1", "2024-07-01", models.StatusPending, models.RelationSon, "Hamza"},
		{"owner-2", "2024-06-10", models.StatusPending, models.RelationSelf, "Bilal"},
	}
	for _, r := range rows {
		apt := testAppointment(r.owner, r.relation, r.name, r.date)
		apt.Status = r.status
		if err := s.db.Create(apt).Error; err != nil {
			t.Fatalf("seed appointment: %v", err)
		}
	}
}

func TestListScopesAndStats(t *testing.T) {
	s := setupStoreTestDB(t)
	seedListFixtures(t, s)

	// owner-1, June window: stats cover all statuses in the range even
	// though the visible list is narrowed to pending
	items, stats, pagination, err := s.List(ListFilter{
		OwnerID:  "owner-1",
		Status:   models.StatusPending,
		FromDate: "2024-06-01",
		ToDate:   "2024-06-30",
		Page:     1,
		PageSize: 7,
	})
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "2024-06-10", items[0].AppointmentDate)

	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(1), stats.Pending)
	assert.Equal(t, int64(1), stats.Scheduled)
	assert.Equal(t, int64(1), stats.Cancelled)

	assert.Equal(t, 1, pagination.CurrentPage)
	assert.Equal(t, 1, pagination.TotalPages)
	assert.Equal(t, int64(1), pagination.TotalItems)
}

func TestListWithoutOwnerSeesAllRows(t *testing.T) {
	s := setupStoreTestDB(t)
	seedListFixtures(t, s)

	items, stats, _, err := s.List(ListFilter{Page: 1, PageSize: 10})
	assert.NoError(t, err)
	assert.Len(t, items, 5)
	assert.Equal(t, int64(5), stats.Total)

	// ascending by appointment_date
	for i := 1; i < len(items); i++ {
		assert.LessOrEqual(t, items[i-1].AppointmentDate, items[i].AppointmentDate)
	}
}

func TestListPagination(t *testing.T) {
	s := setupStoreTestDB(t)
	for i := 1; i <= 9; i++ {
		apt := testAppointment("owner-1", models.RelationOther, fmt.Sprintf("Guest %d", i),
			fmt.Sprintf("2024-06-%02d", i))
		if err := s.db.Create(apt).Error; err != nil {
			t.Fatalf("seed appointment: %v", err)
		}
	}

	items, _, pagination, err := s.List(ListFilter{OwnerID: "owner-1", Page: 2, PageSize: 7})
	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 2, pagination.CurrentPage)
	assert.Equal(t, 2, pagination.TotalPages)
	assert.Equal(t, int64(9), pagination.TotalItems)

	// an empty result still reports one page
	items, _, pagination, err = s.List(ListFilter{OwnerID: "owner-3", Page: 1, PageSize: 7})
	assert.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 1, pagination.TotalPages)
	assert.Equal(t, int64(0), pagination.TotalItems)
}

func TestListIsRepeatable(t *testing.T) {
	s := setupStoreTestDB(t)
	seedListFixtures(t, s)

	filter := ListFilter{OwnerID: "owner-1", Page: 1, PageSize: 7}
	first, firstStats, firstPage, err := s.List(filter)
	assert.NoError(t, err)
	second, secondStats, secondPage, err := s.List(filter)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstStats, secondStats)
	assert.Equal(t, firstPage, secondPage)
}

func TestLastSelfContact(t *testing.T) {
	s := setupStoreTestDB(t)

	// nothing yet
	details, err := s.LastSelfContact("owner-1")
	assert.NoError(t, err)
	assert.Nil(t, details)

	older := testAppointment("owner-1", models.RelationSelf, "Ali Raza", "2024-06-10")
	older.Phone = "03011111111"
	assert.NoError(t, s.db.Create(older).Error)

	// relative rows never show up in the prefill
	relative := testAppointment("owner-1", models.RelationFather, "Akbar", "2024-06-10")
	assert.NoError(t, s.db.Create(relative).Error)

	newer := testAppointment("owner-1", models.RelationSelf, "Ali Raza", "2024-06-11")
	newer.Phone = "03022222222"
	newer.CreatedAt = older.CreatedAt.Add(time.Second)
	assert.NoError(t, s.db.Create(newer).Error)

	details, err = s.LastSelfContact("owner-1")
	assert.NoError(t, err)
	if assert.NotNil(t, details) {
		assert.Equal(t, "Ali Raza", details.PatientName)
		assert.Equal(t, "03022222222", details.Phone)
	}
}
