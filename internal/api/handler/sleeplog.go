package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jkowalik/sleepstats/internal/api/middleware"
	"github.com/jkowalik/sleepstats/internal/api/response"
	"github.com/jkowalik/sleepstats/internal/domain"
	"github.com/jkowalik/sleepstats/internal/service"
)

// SleepLogHandler handles sleep log endpoints
type SleepLogHandler struct {
	sleepLogService *service.SleepLogService
	statsService    *service.StatsService
	defaultDaysBack int
}

// NewSleepLogHandler creates a new sleep log handler
func NewSleepLogHandler(
	sleepLogService *service.SleepLogService,
	statsService *service.StatsService,
	defaultDaysBack int,
) *SleepLogHandler {
	return &SleepLogHandler{
		sleepLogService: sleepLogService,
		statsService:    statsService,
		defaultDaysBack: defaultDaysBack,
	}
}

// Create handles recording a new sleep session
func (h *SleepLogHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.BadRequest(w, "missing user ID")
		return
	}

	var input domain.SleepLogCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.UnprocessableEntity(w, err.Error())
		return
	}

	sleepLog, err := h.sleepLogService.Create(r.Context(), userID, input)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.Created(w, sleepLog)
}

// List handles listing a user's sleep logs with pagination
func (h *SleepLogHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.BadRequest(w, "missing user ID")
		return
	}

	pagination, err := paginationFromQuery(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	sleepLogs, err := h.sleepLogService.FindAll(r.Context(), userID, pagination)
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	if sleepLogs == nil {
		sleepLogs = []domain.SleepLog{}
	}
	response.OK(w, sleepLogs)
}

// Latest handles getting the most recent sleep log
func (h *SleepLogHandler) Latest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.BadRequest(w, "missing user ID")
		return
	}

	sleepLog, err := h.sleepLogService.FindLatest(r.Context(), userID)
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}
	if sleepLog == nil {
		response.NotFound(w, "sleep log not found")
		return
	}

	response.OK(w, sleepLog)
}

// Get handles getting a sleep log by ID
func (h *SleepLogHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.BadRequest(w, "missing user ID")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "sleepLogID"))
	if err != nil {
		response.BadRequest(w, "invalid sleep log ID")
		return
	}

	sleepLog, err := h.sleepLogService.FindByID(r.Context(), userID, id)
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}
	if sleepLog == nil {
		response.NotFound(w, "sleep log not found")
		return
	}

	response.OK(w, sleepLog)
}

// Update handles replacing a sleep log's bed time, wake time and mood
func (h *SleepLogHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.BadRequest(w, "missing user ID")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "sleepLogID"))
	if err != nil {
		response.BadRequest(w, "invalid sleep log ID")
		return
	}

	var input domain.SleepLogCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.UnprocessableEntity(w, err.Error())
		return
	}

	sleepLog, err := h.sleepLogService.UpdateByID(r.Context(), userID, id, input)
	if err != nil {
		response.DomainError(w, err)
		return
	}
	if sleepLog == nil {
		response.NotFound(w, "sleep log not found")
		return
	}

	response.OK(w, sleepLog)
}

// Delete handles removing a sleep log, returning the deleted record
func (h *SleepLogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.BadRequest(w, "missing user ID")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "sleepLogID"))
	if err != nil {
		response.BadRequest(w, "invalid sleep log ID")
		return
	}

	sleepLog, err := h.sleepLogService.DeleteByID(r.Context(), userID, id)
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}
	if sleepLog == nil {
		response.NotFound(w, "sleep log not found")
		return
	}

	response.OK(w, sleepLog)
}

// Stats handles computing rolling-window sleep statistics
func (h *SleepLogHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.BadRequest(w, "missing user ID")
		return
	}

	daysBack := h.defaultDaysBack
	if raw := r.URL.Query().Get("days-back"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.BadRequest(w, "days-back must be a positive integer")
			return
		}
		daysBack = parsed
	}

	stats, err := h.statsService.CalculateSleepStats(r.Context(), userID, daysBack)
	if err != nil {
		response.DomainError(w, err)
		return
	}
	if stats == nil {
		response.NotFound(w, "no sleep logs in window")
		return
	}

	response.OK(w, stats)
}
