package handler

import (
	"strings"
	"time"

	"github.com/appservers/customer-api/internal/core/domain"
)

// --- Request types ---

type createUserRequest struct {
	Name  string  `json:"name"  validate:"required,min=2,max=100"`
	Email string  `json:"email" validate:"required,email"`
	Age   *int    `json:"age"   validate:"omitempty,min=1,max=120"`
	Phone *string `json:"phone" validate:"omitempty,phone_chars"`
}

// normalize trims name and email before validation so the length and format
// checks run against the values that would actually be stored.
func (r *createUserRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
}

// updateUserRequest carries partial-update fields; unknown JSON fields are
// dropped silently by bind.
type updateUserRequest struct {
	Name     *string `json:"name"      validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email"     validate:"omitempty,email"`
	Age      *int    `json:"age"       validate:"omitempty,min=1,max=120"`
	Phone    *string `json:"phone"     validate:"omitempty,phone_chars"`
	IsActive *bool   `json:"is_active"`
}

func (r *updateUserRequest) normalize() {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
	}
	if r.Email != nil {
		email := strings.TrimSpace(*r.Email)
		r.Email = &email
	}
}

// empty reports whether no recognized field was supplied.
func (r *updateUserRequest) empty() bool {
	return r.Name == nil && r.Email == nil && r.Age == nil && r.Phone == nil && r.IsActive == nil
}

// --- Response types ---
// These are intentionally separate from the domain type so the JSON contract
// is not coupled to internal changes.

type userResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       *int      `json:"age,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Age:       u.Age,
		Phone:     u.Phone,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type paginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type listUsersResponse struct {
	Success    bool               `json:"success"`
	Data       []userResponse     `json:"data"`
	Pagination paginationResponse `json:"pagination"`
	Server     string             `json:"server"`
}

// userEnvelope wraps a single record; Message is set on mutations.
type userEnvelope struct {
	Success bool         `json:"success"`
	Data    userResponse `json:"data"`
	Message string       `json:"message,omitempty"`
	Server  string       `json:"server"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Server  string `json:"server"`
}
