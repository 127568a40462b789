package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jkowalik/sleepstats/internal/api/response"
	"github.com/jkowalik/sleepstats/internal/domain"
	"github.com/jkowalik/sleepstats/internal/service"
)

var validate = validator.New()

// UserHandler handles user endpoints
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create handles user registration
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.UserCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	user, err := h.userService.Create(r.Context(), input)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.Created(w, user)
}

// List handles listing users with pagination. The total row count is
// exposed in the X-Total-Count header.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	pagination, err := paginationFromQuery(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	users, total, err := h.userService.FindAll(r.Context(), pagination)
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	if users == nil {
		users = []domain.User{}
	}
	response.OK(w, users)
}

// Get handles getting a user by ID
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		response.BadRequest(w, "invalid user ID")
		return
	}

	user, err := h.userService.FindByID(r.Context(), id)
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}
	if user == nil {
		response.NotFound(w, "user not found")
		return
	}

	response.OK(w, user)
}

// Update handles replacing a user's name and timezone
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		response.BadRequest(w, "invalid user ID")
		return
	}

	var input domain.UserCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	user, err := h.userService.UpdateByID(r.Context(), id, input)
	if err != nil {
		response.DomainError(w, err)
		return
	}
	if user == nil {
		response.NotFound(w, "user not found")
		return
	}

	response.OK(w, user)
}

// paginationFromQuery reads page / page-size query parameters, falling back
// to the defaults when absent.
func paginationFromQuery(r *http.Request) (domain.Pagination, error) {
	page := domain.DefaultPage
	pageSize := domain.DefaultPageSize

	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return domain.Pagination{}, fmt.Errorf("%w: page must be an integer", domain.ErrValidation)
		}
		page = parsed
	}
	if raw := r.URL.Query().Get("page-size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return domain.Pagination{}, fmt.Errorf("%w: page size must be an integer", domain.ErrValidation)
		}
		pageSize = parsed
	}

	return domain.PaginationFromPageSize(page, pageSize)
}
