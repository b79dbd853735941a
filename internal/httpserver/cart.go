package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookstore/internal/domain"
)

type addCartItemRequest struct {
	BookID   int64 `json:"bookId" binding:"required"`
	Quantity int   `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type cartResponse struct {
	Items    []domain.CartItem `json:"items"`
	Subtotal string            `json:"subtotal"`
}

func respondCart(c *gin.Context, carts CartService) {
	items, subtotal, err := carts.Get(c.Request.Context(), sessionKey(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if items == nil {
		items = []domain.CartItem{}
	}
	c.JSON(http.StatusOK, cartResponse{Items: items, Subtotal: subtotal.StringFixed(2)})
}

func getCartHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		respondCart(c, carts)
	}
}

// addCartItemHandler snapshots the book's current title and price into the
// new cart line. Repeat adds accumulate quantity but keep the first price.
func addCartItemHandler(carts CartService, books CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		b, err := books.GetBook(c.Request.Context(), req.BookID)
		if err != nil {
			respondError(c, err)
			return
		}
		err = carts.Add(c.Request.Context(), sessionKey(c), domain.CartItem{
			BookID:    b.ID,
			BookTitle: b.Title,
			Quantity:  req.Quantity,
			UnitPrice: b.Price,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		respondCart(c, carts)
	}
}

func updateCartItemHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookID, ok := pathID(c, "bookId")
		if !ok {
			return
		}
		var req updateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		if err := carts.UpdateQuantity(c.Request.Context(), sessionKey(c), bookID, req.Quantity); err != nil {
			respondError(c, err)
			return
		}
		respondCart(c, carts)
	}
}

func removeCartItemHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookID, ok := pathID(c, "bookId")
		if !ok {
			return
		}
		if err := carts.Remove(c.Request.Context(), sessionKey(c), bookID); err != nil {
			respondError(c, err)
			return
		}
		respondCart(c, carts)
	}
}
