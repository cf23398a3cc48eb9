package handler

import (
	"encoding/json"
	"net/http"

	"sagradago/internal/chat/service"
	apperrors "sagradago/pkg/errors"
	httputil "sagradago/pkg/http"
	"sagradago/pkg/logger"
	"sagradago/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type ChatHandler struct {
	service service.ChatService
	log     *logger.Logger
}

func NewChatHandler(service service.ChatService, log *logger.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		log:     log,
	}
}

func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid request body"))
		return
	}

	reply, err := h.service.Ask(r.Context(), &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, reply)
}

func (h *ChatHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/chat", h.Ask)
}
