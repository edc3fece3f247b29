package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/appservers/customer-api/internal/core/domain"
	"github.com/appservers/customer-api/internal/core/ports"
)

// UserHandler handles HTTP requests for user CRUD operations. Failures are
// returned to the central error handler; nothing is classified inline.
type UserHandler struct {
	service ports.UserService
	server  string
}

func NewUserHandler(service ports.UserService, serverName string) *UserHandler {
	return &UserHandler{service: service, server: serverName}
}

// List handles GET /api/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        page    query     int     false  "Page number (1-based)"
// @Param        limit   query     int     false  "Rows per page (max 100)"
// @Param        search  query     string  false  "Substring match on name or email"
// @Success      200     {object}  listUsersResponse
// @Failure      503     {object}  map[string]any
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	// Unparsable numbers fall back to the service defaults.
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListUsers(c.Request().Context(), ports.ListUsersInput{
		Page:   page,
		Limit:  limit,
		Search: c.QueryParam("search"),
	})
	if err != nil {
		return err
	}

	data := make([]userResponse, 0, len(result.Items))
	for _, u := range result.Items {
		data = append(data, newUserResponse(u))
	}

	return c.JSON(http.StatusOK, listUsersResponse{
		Success: true,
		Data:    data,
		Pagination: paginationResponse{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
		Server: h.server,
	})
}

// Get handles GET /api/users/:id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  userEnvelope
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	u, err := h.service.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userEnvelope{
		Success: true,
		Data:    newUserResponse(u),
		Server:  h.server,
	})
}

// GetByEmail handles GET /api/users/email/:email.
//
// @Summary      Get a user by email
// @Tags         users
// @Produce      json
// @Param        email  path      string  true  "Email address (any case)"
// @Success      200    {object}  userEnvelope
// @Failure      404    {object}  map[string]any
// @Router       /api/users/email/{email} [get]
func (h *UserHandler) GetByEmail(c echo.Context) error {
	u, err := h.service.GetUserByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userEnvelope{
		Success: true,
		Data:    newUserResponse(u),
		Server:  h.server,
	})
}

// Create handles POST /api/users.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "User fields"
// @Success      201   {object}  userEnvelope
// @Failure      400   {object}  map[string]any
// @Router       /api/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		return err
	}

	u, err := h.service.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Name:  req.Name,
		Email: req.Email,
		Age:   req.Age,
		Phone: req.Phone,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, userEnvelope{
		Success: true,
		Data:    newUserResponse(u),
		Message: "user created successfully",
		Server:  h.server,
	})
}

// Update handles PUT /api/users/:id with partial-field semantics.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  userEnvelope
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	req.normalize()
	if req.empty() {
		return &domain.ValidationError{Fields: []domain.FieldError{
			{Field: "body", Message: "at least one field is required"},
		}}
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	u, err := h.service.UpdateUser(c.Request().Context(), id, ports.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Age:      req.Age,
		Phone:    req.Phone,
		IsActive: req.IsActive,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userEnvelope{
		Success: true,
		Data:    newUserResponse(u),
		Message: "user updated successfully",
		Server:  h.server,
	})
}

// Delete handles DELETE /api/users/:id. Hard delete; deleting twice yields 404.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]any
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{
		Success: true,
		Message: "user deleted successfully",
		Server:  h.server,
	})
}

// pathID parses the :id route parameter; anything but a positive integer is
// rejected before any service call.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
