package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/goalpulse/reminder-service/internal/api/dto"
	"github.com/goalpulse/reminder-service/internal/api/respond"
	"github.com/goalpulse/reminder-service/internal/config"
	"github.com/goalpulse/reminder-service/internal/model"
	reminderrepo "github.com/goalpulse/reminder-service/internal/repository/reminder"
	remindersvc "github.com/goalpulse/reminder-service/internal/service/reminder"
)

//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/reminder/mock.go -package=mocks

type reminderService interface {
	CreateReminder(context.Context, retry.Strategy, model.Reminder) (uuid.UUID, error)
	GetReminderStatusByID(context.Context, retry.Strategy, uuid.UUID) (model.Status, error)
	GetReminderByID(context.Context, uuid.UUID) (model.Reminder, error)
	GetAllReminders(context.Context) ([]model.Reminder, error)
	Acknowledge(context.Context, uuid.UUID) (int, error)
	CancelReminder(context.Context, retry.Strategy, uuid.UUID) error
}

type Handler struct {
	service   reminderService
	validator *validator.Validate
	cfg       *config.Config
}

func NewHandler(
	s reminderService,
	v *validator.Validate,
	cfg *config.Config,
) *Handler {
	return &Handler{service: s, validator: v, cfg: cfg}
}

func (h *Handler) Create(c *ginext.Context) {
	var req dto.CreateReminderRequest

	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	goalID, _ := uuid.Parse(req.GoalID)
	userID, _ := uuid.Parse(req.UserID)

	rem := model.Reminder{
		GoalID:            goalID,
		UserID:            userID,
		UserEmail:         req.UserEmail,
		UserName:          req.UserName,
		Title:             req.Title,
		Description:       req.Description,
		Channel:           model.Channel(req.Channel),
		SendAt:            req.SendAt,
		Status:            model.StatusPending,
		IsRecurring:       req.IsRecurring,
		RecurringDuration: req.RecurringDuration,
		EndDate:           req.EndDate,
	}

	id, err := h.service.CreateReminder(c.Request.Context(), h.cfg.Retry, rem)
	if err != nil {
		if errors.Is(err, remindersvc.ErrInvalidReminder) {
			zlog.Logger.Warn().Err(err).Msg("rejected invalid reminder")
			respond.Fail(c.Writer, http.StatusBadRequest, err)
			return
		}

		zlog.Logger.Error().Err(err).Str("title", rem.Title).Msg("failed to create reminder")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.Created(c.Writer, id)
}

func (h *Handler) Get(c *ginext.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	rem, err := h.service.GetReminderByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, reminderrepo.ErrReminderNotFound) {
			zlog.Logger.Warn().Str("id", id.String()).Err(err).Msg("reminder not found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("reminder not found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to get reminder")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, rem)
}

func (h *Handler) GetStatus(c *ginext.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	status, err := h.service.GetReminderStatusByID(c.Request.Context(), h.cfg.Retry, id)
	if err != nil {
		if errors.Is(err, reminderrepo.ErrReminderNotFound) {
			zlog.Logger.Warn().Str("id", id.String()).Err(err).Msg("reminder not found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("reminder not found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to get reminder status")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, status)
}

// GetAll is the debug listing of scheduled and terminal reminders.
func (h *Handler) GetAll(c *ginext.Context) {
	reminders, err := h.service.GetAllReminders(c.Request.Context())
	if err != nil {
		if errors.Is(err, reminderrepo.ErrNoRemindersFound) {
			respond.OK(c.Writer, []model.Reminder{})
			return
		}

		zlog.Logger.Error().Err(err).Msg("failed to get reminders")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, reminders)
}

// Acknowledge marks a delivered notification as seen and returns the
// user's new badge count.
func (h *Handler) Acknowledge(c *ginext.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	count, err := h.service.Acknowledge(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, reminderrepo.ErrReminderNotFound) {
			zlog.Logger.Warn().Str("id", id.String()).Err(err).Msg("reminder not found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("reminder not found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to acknowledge reminder")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, map[string]int{"badge_count": count})
}

func (h *Handler) Cancel(c *ginext.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	err := h.service.CancelReminder(c.Request.Context(), h.cfg.Retry, id)
	if err != nil {
		if errors.Is(err, reminderrepo.ErrAlreadyClaimed) {
			zlog.Logger.Warn().Str("id", id.String()).Err(err).Msg("reminder not cancellable")
			respond.Fail(c.Writer, http.StatusConflict, fmt.Errorf("reminder is not pending"))
			return
		}

		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to cancel reminder")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, "reminder cancelled")
}

func (h *Handler) parseID(c *ginext.Context) (uuid.UUID, bool) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("idStr", idStr).Msg("failed to parse id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid id"))
		return uuid.Nil, false
	}

	if id == uuid.Nil {
		zlog.Logger.Warn().Msg("missing id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("missing id"))
		return uuid.Nil, false
	}

	return id, true
}
