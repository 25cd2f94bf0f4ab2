package api

import (
	"net/http"

	"fstore-be/internal/apperror"
	"fstore-be/internal/cart"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetCart(c *gin.Context) {
	carts, err := h.CartSvc.GetCart(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, "cart", cart.ToCartDTOs(carts))
}

func (h *Handler) AddToCart(c *gin.Context) {
	var params cart.AddToCartParams
	if err := c.ShouldBindJSON(&params); err != nil {
		respondError(c, apperror.Wrap(errInvalidBody, err))
		return
	}

	item, err := h.CartSvc.AddToCart(c.Request.Context(), currentUser(c), params)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, "added to cart", cart.ToCartDTO(item))
}

type updateCartRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) UpdateCart(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.Wrap(errInvalidBody, err))
		return
	}

	item, err := h.CartSvc.UpdateQuantity(c.Request.Context(), currentUser(c), id, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	if item == nil {
		respondJSON(c, http.StatusOK, "removed from cart", nil)
		return
	}
	respondJSON(c, http.StatusOK, "cart updated", cart.ToCartDTO(item))
}

func (h *Handler) RemoveFromCart(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.CartSvc.RemoveFromCart(c.Request.Context(), currentUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, "removed from cart", nil)
}
