package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type checkoutRequest struct {
	ShippingAddress string `json:"shippingAddress" binding:"required"`
}

func checkoutHandler(svc checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "shippingAddress is required"})
			return
		}
		order, err := svc.Place(c.Request.Context(), currentUser(c).ID, req.ShippingAddress)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, toOrderResponse(*order, nil))
	}
}

func listOrdersHandler(svc checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.History(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		items := make([]orderResponse, 0, len(orders))
		for _, o := range orders {
			items = append(items, toOrderResponse(o, nil))
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

func getOrderHandler(svc checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, items, err := svc.Get(c.Request.Context(), currentUser(c).ID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toOrderResponse(*order, items))
	}
}
