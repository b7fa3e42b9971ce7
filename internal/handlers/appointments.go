package handlers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/MehnatiMazdor/appointment-ms/internal/booking"
	"github.com/MehnatiMazdor/appointment-ms/internal/cache"
	"github.com/MehnatiMazdor/appointment-ms/internal/logger"
	"github.com/MehnatiMazdor/appointment-ms/internal/middleware"
	"github.com/MehnatiMazdor/appointment-ms/internal/models"
	"github.com/MehnatiMazdor/appointment-ms/internal/store"
	"github.com/MehnatiMazdor/appointment-ms/internal/utils"
)

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	Store    *store.AppointmentStore
	Cal      booking.Calendar
	Prefill  *cache.PrefillCache
	PageSize int
}

// NewAppointmentHandler creates a new AppointmentHandler. prefill may
// be nil when no cache is configured.
func NewAppointmentHandler(db *gorm.DB, cal booking.Calendar, prefill *cache.PrefillCache, pageSize int) *AppointmentHandler {
	if pageSize < 1 {
		pageSize = store.DefaultPageSize
	}
	return &AppointmentHandler{
		Store:    store.NewAppointmentStore(db),
		Cal:      cal,
		Prefill:  prefill,
		PageSize: pageSize,
	}
}

// CreateAppointment handles booking a new appointment. The route is
// patient-only; the appointment always starts pending and is owned by
// the authenticated requester.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req booking.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	if errs := booking.Validate(req, h.Cal, time.Now()); len(errs) > 0 {
		utils.ValidationFailed(c, errs)
		return
	}

	apt := &models.Appointment{
		UserID:          userID,
		PatientName:     strings.TrimSpace(req.PatientName),
		Age:             req.Age,
		Gender:          models.Gender(req.Gender),
		Relation:        models.Relation(req.Relation),
		Phone:           booking.NormalizePhone(req.Phone),
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		Notes:           req.Notes,
	}

	result, err := h.Store.CreateAdmitted(apt)
	if errors.Is(err, store.ErrAdmissionRejected) {
		logger.WithFields(logrus.Fields{
			"owner": userID,
			"date":  apt.AppointmentDate,
			"code":  result.Code,
		}).Info("appointment rejected by daily policy")
		utils.PolicyRejected(c, result.Code, result.Messages)
		return
	}
	if err != nil {
		logger.WithField("owner", userID).WithError(err).Error("failed to create appointment")
		utils.InternalServerError(c, "Failed to create appointment")
		return
	}

	if apt.Relation == models.RelationSelf {
		h.Prefill.Invalidate(c.Request.Context(), userID)
	}

	utils.Created(c, "Appointment created successfully", apt)
}

// UpdateAppointmentStatusRequest represents the request body for
// updating an appointment's status.
type UpdateAppointmentStatusRequest struct {
	Status models.AppointmentStatus `json:"status" binding:"required"`
}

// UpdateAppointmentStatus handles a status transition. The persisted
// status is read fresh, the role/transition table consulted, and the
// update applied as a single conditional write so a concurrent change
// surfaces as a conflict instead of clobbering.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	id := c.Param("id")

	var req UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	apt, err := h.Store.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.NotFound(c, "Appointment not found")
		return
	}
	if err != nil {
		logger.WithField("appointment", id).WithError(err).Error("failed to load appointment")
		utils.InternalServerError(c, "Failed to load appointment")
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	role, _ := middleware.GetUserRoleFromContext(c)

	// Patients may only touch their own appointments; doctor and admin
	// act clinic-wide.
	if role == models.RolePatient && apt.UserID != userID {
		utils.Forbidden(c, "You are not authorized to update this appointment.")
		return
	}

	if !booking.CanTransition(role, apt.Status, req.Status) {
		utils.Forbidden(c, "You do not have permission to perform this status change.")
		return
	}

	updated, err := h.Store.TransitionStatus(id, apt.Status, req.Status)
	if errors.Is(err, store.ErrStatusConflict) {
		utils.Conflict(c, "Appointment was modified concurrently, please retry")
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.NotFound(c, "Appointment not found")
		return
	}
	if err != nil {
		logger.WithField("appointment", id).WithError(err).Error("failed to update appointment status")
		utils.InternalServerError(c, "Failed to update appointment status")
		return
	}

	utils.Success(c, "Appointment status updated successfully", updated)
}

// GetAppointments handles listing appointments with stats and
// pagination. Patients are scoped to their own rows; doctor and admin
// see everything. Stats cover the whole date-scoped set regardless of
// the status filter.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	role, _ := middleware.GetUserRoleFromContext(c)
	if !models.ValidRole(role) {
		utils.Forbidden(c, "User role not permitted to view appointments.")
		return
	}

	statusParam := models.AppointmentStatus(c.Query("status"))
	if statusParam != "" && !models.ValidStatus(statusParam) {
		utils.BadRequest(c, "Invalid status filter")
		return
	}

	var fromDate, toDate string
	if dateParam := c.Query("date"); dateParam != "" {
		var err error
		fromDate, toDate, err = booking.BucketRange(booking.DateBucket(dateParam), time.Now())
		if err != nil {
			utils.BadRequest(c, "Invalid date filter")
			return
		}
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(h.PageSize)))
	if err != nil || pageSize < 1 {
		pageSize = h.PageSize
	}

	filter := store.ListFilter{
		Status:   statusParam,
		FromDate: fromDate,
		ToDate:   toDate,
		Page:     page,
		PageSize: pageSize,
	}
	if role == models.RolePatient {
		filter.OwnerID = userID
	}

	items, stats, pagination, err := h.Store.List(filter)
	if err != nil {
		logger.WithField("owner", userID).WithError(err).Error("failed to list appointments")
		utils.InternalServerError(c, "Failed to fetch appointments")
		return
	}

	utils.Success(c, "Appointments fetched successfully", gin.H{
		"appointments": items,
		"stats":        stats,
		"pagination":   pagination,
	})
}

// GetLastSelfAppointment returns the contact fields of the requester's
// most recent self appointment, for prefilling the booking form. The
// lookup is cached in Redis when a cache is configured.
func (h *AppointmentHandler) GetLastSelfAppointment(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	ctx := c.Request.Context()
	if details, ok := h.Prefill.Get(ctx, userID); ok {
		utils.Success(c, "Last self appointment fetched successfully", gin.H{"appointment": details})
		return
	}

	details, err := h.Store.LastSelfContact(userID)
	if err != nil {
		logger.WithField("owner", userID).WithError(err).Error("failed to fetch last self appointment")
		utils.InternalServerError(c, "Failed to fetch last self appointment")
		return
	}
	if details != nil {
		h.Prefill.Set(ctx, userID, details)
	}

	utils.Success(c, "Last self appointment fetched successfully", gin.H{"appointment": details})
}

// GetAvailableDates exposes the booking calendar and the slot list so
// the client presents exactly the options the validator accepts.
func (h *AppointmentHandler) GetAvailableDates(c *gin.Context) {
	utils.Success(c, "Available dates fetched successfully", gin.H{
		"dates":      h.Cal.AvailableDates(time.Now()),
		"time_slots": booking.TimeSlots,
	})
}
