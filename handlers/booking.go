package handlers

import (
	"net/http"

	"lawease/middleware"
	"lawease/models"
	"lawease/services/booking"
	"lawease/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BookingHandler struct {
	BookingService booking.BookingService
}

func NewBookingHandler(bs booking.BookingService) *BookingHandler {
	return &BookingHandler{BookingService: bs}
}

// Create books a slot with a lawyer. The booking starts PENDING.
func (h *BookingHandler) Create(c *gin.Context) {
	var req models.CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.BookingService.Create(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		getLogger(c).Debug("booking rejected",
			zap.String("lawyerID", req.LawyerID),
			zap.String("date", req.Date),
			zap.String("time", req.Time),
			zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.BookingService.Get(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{"booking": b})
}

func (h *BookingHandler) ListMine(c *gin.Context) {
	bookings, err := h.BookingService.ListForClient(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *BookingHandler) ListForLawyer(c *gin.Context) {
	bookings, err := h.BookingService.ListForLawyer(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	var req models.CancelBookingRequest
	// The body is optional.
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	b, err := h.BookingService.Cancel(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"), req.Reason)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{"booking": b})
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req models.UpdateBookingStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.BookingService.UpdateStatus(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"), req.Status, req.Note)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{"booking": b})
}

func (h *BookingHandler) CreatePaymentIntent(c *gin.Context) {
	intent, err := h.BookingService.CreatePaymentIntent(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{"payment_intent": intent})
}
