package api

import (
	"net/http"
	"time"

	"fstore-be/internal/apperror"
	"fstore-be/internal/order"

	"github.com/gin-gonic/gin"
)

func (h *Handler) MakeOrder(c *gin.Context) {
	var dto order.OrderDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondError(c, apperror.Wrap(errInvalidBody, err))
		return
	}

	created, err := h.OrderSvc.MakeOrder(c.Request.Context(), currentUser(c), dto)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, "order placed", created)
}

func (h *Handler) GetOrders(c *gin.Context) {
	orders, err := h.OrderSvc.GetOrders(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, "orders", orders)
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	o, err := h.OrderSvc.GetOrder(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, "order", o)
}

func (h *Handler) UpdateOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var dto order.OrderDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondError(c, apperror.Wrap(errInvalidBody, err))
		return
	}

	updated, err := h.OrderSvc.UpdateOrder(c.Request.Context(), currentUser(c), id, dto)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, "order updated", updated)
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.OrderSvc.DeleteOrder(c.Request.Context(), currentUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, "order deleted", nil)
}

const reportDateLayout = "2006-01-02"

// CustomerReport serves GET /api/reports/customers?start_date=&end_date=.
// Both dates are inclusive calendar days.
func (h *Handler) CustomerReport(c *gin.Context) {
	from, err := time.Parse(reportDateLayout, c.Query("start_date"))
	if err != nil {
		respondError(c, apperror.Wrap(errInvalidDate, err))
		return
	}
	to, err := time.Parse(reportDateLayout, c.Query("end_date"))
	if err != nil {
		respondError(c, apperror.Wrap(errInvalidDate, err))
		return
	}

	report, err := h.OrderSvc.CustomerReport(c.Request.Context(), currentUser(c), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, "customer report", report)
}

func (h *Handler) Feedback(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var dto order.FeedbackDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondError(c, apperror.Wrap(errInvalidBody, err))
		return
	}

	o, err := h.OrderSvc.Feedback(c.Request.Context(), id, dto)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, "feedback saved", o)
}
