package handler

import (
	"encoding/json"
	"net/http"

	"sagradago/internal/parish/service"
	apperrors "sagradago/pkg/errors"
	httputil "sagradago/pkg/http"
	"sagradago/pkg/logger"
	"sagradago/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type ParishHandler struct {
	service service.ParishService
	log     *logger.Logger
}

func NewParishHandler(service service.ParishService, log *logger.Logger) *ParishHandler {
	return &ParishHandler{
		service: service,
		log:     log,
	}
}

func (h *ParishHandler) CreateEvent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var event model.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "CreateEvent", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.CreateEvent(r.Context(), &event); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CreateEvent", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, event); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateEvent", "operation", "WriteCreated", "error", err)
	}
}

func (h *ParishHandler) ListEvents(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListEvents", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	events, total, err := h.service.ListUpcomingEvents(r.Context(), limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListEvents", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, events, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "ListEvents", "operation", "WritePaginated", "error", err)
	}
}

func (h *ParishHandler) RecordDonation(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := httputil.UserID(r)
	if userID == "" {
		if writeErr := httputil.WriteError(w, apperrors.Unauthorized("Missing user identity")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "RecordDonation", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	var donation model.Donation
	if err := json.NewDecoder(r.Body).Decode(&donation); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "RecordDonation", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}
	donation.UserID = userID

	if err := h.service.RecordDonation(r.Context(), &donation); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "RecordDonation", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, donation); err != nil {
		h.log.Error("failed to write created response", "handler", "RecordDonation", "operation", "WriteCreated", "error", err)
	}
}

func (h *ParishHandler) ListDonations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := httputil.UserID(r)
	if userID == "" {
		if writeErr := httputil.WriteError(w, apperrors.Unauthorized("Missing user identity")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListDonations", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListDonations", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	donations, err := h.service.ListDonationsForUser(r.Context(), userID, limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListDonations", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, donations); err != nil {
		h.log.Error("failed to write success response", "handler", "ListDonations", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ParishHandler) RegisterVolunteer(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := httputil.UserID(r)
	if userID == "" {
		if writeErr := httputil.WriteError(w, apperrors.Unauthorized("Missing user identity")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "RegisterVolunteer", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	var volunteer model.Volunteer
	if err := json.NewDecoder(r.Body).Decode(&volunteer); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "RegisterVolunteer", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}
	volunteer.UserID = userID

	if err := h.service.RegisterVolunteer(r.Context(), &volunteer); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "RegisterVolunteer", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, volunteer); err != nil {
		h.log.Error("failed to write created response", "handler", "RegisterVolunteer", "operation", "WriteCreated", "error", err)
	}
}

func (h *ParishHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/events", h.CreateEvent)
	router.GET("/api/v1/events", h.ListEvents)
	router.POST("/api/v1/donations", h.RecordDonation)
	router.GET("/api/v1/donations", h.ListDonations)
	router.POST("/api/v1/volunteers", h.RegisterVolunteer)
}
