package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/dom/banner-admin/internal/api/render"
	"github.com/dom/banner-admin/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Name     *string `json:"name"`
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		log.Printf("ERROR [user.List]: %v", err)
		render.Error(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = toUserResponse(u)
	}

	render.JSON(w, http.StatusOK, resp)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userService.Create(r.Context(), service.CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			render.Error(w, http.StatusBadRequest, "Email and password are required")
		case errors.Is(err, service.ErrUserExists):
			render.Error(w, http.StatusConflict, "User already exists")
		default:
			log.Printf("ERROR [user.Create]: %v", err)
			render.Error(w, http.StatusInternalServerError, "Failed to create user")
		}
		return
	}

	render.JSON(w, http.StatusCreated, toUserResponse(user))
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.userService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			render.Error(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("ERROR [user.Get] userID=%s: %v", id, err)
		render.Error(w, http.StatusInternalServerError, "Failed to fetch user")
		return
	}

	render.JSON(w, http.StatusOK, toUserResponse(user))
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userService.Update(r.Context(), id, service.UpdateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			render.Error(w, http.StatusNotFound, "User not found")
		case errors.Is(err, service.ErrMissingCredentials):
			render.Error(w, http.StatusBadRequest, "Email and password must not be empty")
		case errors.Is(err, service.ErrUserExists):
			render.Error(w, http.StatusConflict, "User already exists")
		default:
			log.Printf("ERROR [user.Update] userID=%s: %v", id, err)
			render.Error(w, http.StatusInternalServerError, "Failed to update user")
		}
		return
	}

	render.JSON(w, http.StatusOK, toUserResponse(user))
}
