package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookstore/internal/domain"
)

type checkoutRequest struct {
	PaymentMethod string `json:"paymentMethod"`
	FullName      string `json:"fullName" binding:"required"`
	Address       string `json:"address" binding:"required"`
	City          string `json:"city" binding:"required"`
	PostalCode    string `json:"postalCode"`
	Phone         string `json:"phone"`
}

func checkoutHandler(checkout CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		order, err := checkout.PlaceOrder(c.Request.Context(), sessionKey(c), currentUser(c), domain.ShippingInfo{
			PaymentMethod: req.PaymentMethod,
			FullName:      req.FullName,
			Address:       req.Address,
			City:          req.City,
			PostalCode:    req.PostalCode,
			Phone:         req.Phone,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"order": order})
	}
}
