package handler

import (
	"net/http"

	"github.com/clockwerk/clockwerk-backend/internal/timesheet/bootstrap"
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/service"
	"github.com/clockwerk/clockwerk-backend/pkg/httputil"
	"github.com/clockwerk/clockwerk-backend/pkg/logger"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	service      *service.AuthService
	bootstrapper *bootstrap.Bootstrapper
	logger       *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(svc *service.AuthService, bs *bootstrap.Bootstrapper, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		service:      svc,
		bootstrapper: bs,
		logger:       log,
	}
}

// Login verifies credentials and issues a token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}
	if err := httputil.Validate(&req); err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	res, err := h.service.Login(r.Context(), &req)
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, res)
}

// Demo creates a throwaway demo account with seeded data
func (h *AuthHandler) Demo(w http.ResponseWriter, r *http.Request) {
	account, err := h.bootstrapper.CreateDemoAccount(r.Context())
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusCreated, account)
}
