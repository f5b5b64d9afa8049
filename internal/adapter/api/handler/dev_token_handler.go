package handler

import (
	"github.com/labstack/echo/v4"

	"tukarin/internal/domain/entity"
	"tukarin/internal/domain/repository"
	"tukarin/internal/infrastructure/firebase"
	"tukarin/pkg/response"
)

// DevTokenHandler mints test users and custom tokens. Only routed in
// the development environment.
type DevTokenHandler struct {
	firebaseAuth *firebase.FirebaseAuthClient
	userRepo     repository.UserRepository
}

var devTokenHandler *DevTokenHandler

func SetupDevTokenHandler(firebaseAuth *firebase.FirebaseAuthClient, userRepo repository.UserRepository) {
	devTokenHandler = &DevTokenHandler{
		firebaseAuth: firebaseAuth,
		userRepo:     userRepo,
	}
}

func GetDevTokenHandler() *DevTokenHandler {
	return devTokenHandler
}

type createTestUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Username string `json:"username" validate:"required,min=3,max=30"`
}

func (h *DevTokenHandler) CreateTestUser(c echo.Context) error {
	var req createTestUserRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid, err := h.firebaseAuth.CreateUser(c.Request().Context(), req.Email, req.Password, req.Username)
	if err != nil {
		return response.Error(c, err)
	}

	user := &entity.User{
		ID:       uid,
		Email:    req.Email,
		Username: req.Username,
	}
	if err := h.userRepo.Create(c.Request().Context(), user); err != nil {
		return response.Error(c, err)
	}

	token, err := h.firebaseAuth.GenerateToken(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

func (h *DevTokenHandler) GenerateToken(c echo.Context) error {
	token, err := h.firebaseAuth.GenerateToken(c.Request().Context(), c.Param("uid"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"token": token,
	})
}
