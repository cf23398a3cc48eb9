package handler

import (
	"encoding/json"
	"net/http"

	"sagradago/internal/admin/service"
	apperrors "sagradago/pkg/errors"
	httputil "sagradago/pkg/http"
	"sagradago/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type AdminHandler struct {
	service service.AdminService
	log     *logger.Logger
}

func NewAdminHandler(service service.AdminService, log *logger.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log,
	}
}

func (h *AdminHandler) InviteUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if userID := httputil.UserID(r); userID == "" {
		httputil.WriteError(w, apperrors.Unauthorized("Missing user identity"))
		return
	}

	var req service.InviteUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid request body"))
		return
	}

	result, err := h.service.InviteUser(r.Context(), &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, result)
}

func (h *AdminHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/admin/users", h.InviteUser)
}
