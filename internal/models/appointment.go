package models

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCancelled AppointmentStatus = "cancelled"
)

// ValidStatus reports whether s is one of the known appointment statuses.
func ValidStatus(s AppointmentStatus) bool {
	switch s {
	case StatusPending, StatusScheduled, StatusCancelled:
		return true
	}
	return false
}

// Gender of the person being seen
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// ValidGender reports whether g is one of the known genders.
func ValidGender(g Gender) bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Relation is the family relationship of the patient to the account
// that booked the appointment. RelationSelf marks the account holder
// as the patient.
type Relation string

const (
	RelationSelf     Relation = "self"
	RelationFather   Relation = "father"
	RelationMother   Relation = "mother"
	RelationBrother  Relation = "brother"
	RelationSister   Relation = "sister"
	RelationSon      Relation = "son"
	RelationDaughter Relation = "daughter"
	RelationOther    Relation = "other"
)

// ValidRelation reports whether r is one of the known relations.
func ValidRelation(r Relation) bool {
	switch r {
	case RelationSelf, RelationFather, RelationMother, RelationBrother,
		RelationSister, RelationSon, RelationDaughter, RelationOther:
		return true
	}
	return false
}

// Appointment represents a booked clinic visit. AppointmentDate is
// stored as a plain "YYYY-MM-DD" string so date comparisons never pick
// up a timezone; validity against the booking calendar is checked once
// at creation and never revisited.
type Appointment struct {
	BaseModel
	UserID          string            `gorm:"size:36;index:idx_owner_date_status" json:"userId"`
	PatientName     string            `gorm:"size:100;not null" json:"patient_name"`
	Age             float64           `json:"age"`
	Gender          Gender            `gorm:"size:10" json:"gender"`
	Relation        Relation          `gorm:"size:10;index" json:"relation"`
	Phone           string            `gorm:"size:11" json:"phone"`
	AppointmentDate string            `gorm:"size:10;index:idx_owner_date_status" json:"appointment_date"`
	AppointmentTime string            `gorm:"size:5" json:"appointment_time"`
	Notes           string            `gorm:"size:200" json:"notes"`
	Status          AppointmentStatus `gorm:"size:20;default:'pending';index:idx_owner_date_status" json:"status"`

	// Relations
	Owner User `gorm:"foreignKey:UserID" json:"-"`
}
