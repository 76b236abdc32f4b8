package handler

import (
	"encoding/json"
	"net/http"

	"go-course-store/internal/middleware"
	"go-course-store/internal/model"
	"go-course-store/internal/service"
	"go-course-store/pkg/apierror"
)

type PurchaseHandler struct {
	service *service.PurchaseService
}

func NewPurchaseHandler(service *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{service: service}
}

func (h *PurchaseHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized("authentication required"))
		return
	}

	var payload model.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("BAD_REQUEST", "invalid JSON body"))
		return
	}

	purchase, err := h.service.Purchase(r.Context(), username, payload.ItemType, payload.ItemID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.PurchaseConfirmation{
		Message:  "Purchase successful!",
		Purchase: purchase,
	})
}
