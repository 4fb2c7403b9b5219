package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/service/catalog"
)

func listProductsHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.List(c.Request.Context(), catalog.ListInput{
			Category: c.Query("category"),
			Sort:     c.Query("sort"),
		})
		if err != nil {
			respondError(c, err)
			return
		}
		items := make([]productResponse, 0, len(products))
		for _, p := range products {
			items = append(items, toProductResponse(p))
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

func getProductHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toProductResponse(*product))
	}
}
