package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/user-service/internal/api/dto"
	"github.com/spec-kit/user-service/internal/service"
)

// UsersHandler exposes the user resource endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// Create handles POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.users.Create(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.FromUser(user))
}

// Get handles GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	user, err := h.users.Get(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(dto.FromUser(user))
}

// List handles GET /users?page=&per_page=.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	var pagination dto.Pagination
	if err := c.QueryParser(&pagination); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid pagination parameters")
	}

	list, err := h.users.List(c.UserContext(), pagination)
	if err != nil {
		return err
	}

	return c.JSON(dto.UserListResponse{
		Users:      dto.FromUsers(list.Users),
		Total:      list.Total,
		Page:       list.Page,
		PerPage:    list.PerPage,
		TotalPages: list.TotalPages,
	})
}

// Update handles PUT /users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.users.Update(c.UserContext(), id, req)
	if err != nil {
		return err
	}

	return c.JSON(dto.FromUser(user))
}

// Delete handles DELETE /users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	if err := h.users.Delete(c.UserContext(), id); err != nil {
		return err
	}

	return c.SendStatus(http.StatusNoContent)
}

// parseUserID validates the path identifier before it reaches the store, so
// a malformed id is a client error rather than a storage failure.
func parseUserID(c *fiber.Ctx) (string, error) {
	raw := c.Params("id")
	if _, err := uuid.Parse(raw); err != nil {
		return "", fiber.NewError(http.StatusBadRequest, "invalid user id")
	}
	return raw, nil
}
