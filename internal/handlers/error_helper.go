package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/macgonzales94/Felicita/internal/httperr"
)

var businessErrorStatus = map[string]int{
	"customer_not_found":    http.StatusNotFound,
	"staff_not_found":       http.StatusNotFound,
	"service_not_found":     http.StatusNotFound,
	"reservation_not_found": http.StatusNotFound,
	"review_not_found":      http.StatusNotFound,

	"empty_services":       http.StatusBadRequest,
	"invalid_date_or_time": http.StatusBadRequest,
	"crosses_midnight":     http.StatusBadRequest,
	"invalid_status":       http.StatusBadRequest,
	"empty_comment":        http.StatusBadRequest,
	"invalid_rating":       http.StatusBadRequest,

	"slot_unavailable": http.StatusConflict,
	"time_conflict":    http.StatusConflict,
	"invalid_state":    http.StatusConflict,
}

var businessErrorMessage = map[string]string{
	"customer_not_found":    "Customer not found.",
	"staff_not_found":       "Staff member not found.",
	"service_not_found":     "One of the requested services does not exist.",
	"reservation_not_found": "Reservation not found.",
	"review_not_found":      "Review not found.",

	"empty_services":       "At least one service is required.",
	"invalid_date_or_time": "Invalid date or time.",
	"crosses_midnight":     "The reservation would run past midnight.",
	"invalid_status":       "Unknown reservation status.",
	"empty_comment":        "The review needs a comment.",
	"invalid_rating":       "Rating must be between 1 and 5.",

	"slot_unavailable": "The requested slot is not available.",
	"time_conflict":    "The slot was taken by another booking.",
	"invalid_state":    "The reservation state does not allow this change.",
}

// writeDomainError maps a business error code to its HTTP status and message.
// Anything that is not a business error becomes a 500.
func writeDomainError(c *gin.Context, err error, fallbackMessage string) {
	code, ok := httperr.AsBusiness(err)
	if !ok {
		httperr.Internal(c, "internal_error", fallbackMessage)
		return
	}

	status, known := businessErrorStatus[code]
	if !known {
		status = http.StatusBadRequest
	}
	message, known := businessErrorMessage[code]
	if !known {
		message = fallbackMessage
	}

	httperr.Write(c, status, code, message)
}
