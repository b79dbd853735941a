package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	orderrepo "bookstore/internal/repository/order"
	"bookstore/internal/repository/reference"
	"bookstore/internal/service/catalog"
)

func dashboardHandler(users UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := users.Dashboard(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

func createBookHandler(books CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in catalog.BookInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, err)
			return
		}
		b, err := books.CreateBook(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"book": b})
	}
}

func updateBookHandler(books CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var in catalog.BookInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, err)
			return
		}
		b, err := books.UpdateBook(c.Request.Context(), id, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"book": b})
	}
}

func deleteBookHandler(books CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := books.DeleteBook(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type referenceRequest struct {
	Name string `json:"name" binding:"required"`
}

func createReferenceHandler(books CatalogService, kind reference.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req referenceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		ref, err := books.CreateReference(c.Request.Context(), kind, req.Name)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, ref)
	}
}

func renameReferenceHandler(books CatalogService, kind reference.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var req referenceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		ref, err := books.RenameReference(c.Request.Context(), kind, id, req.Name)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, ref)
	}
}

func deleteReferenceHandler(books CatalogService, kind reference.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := books.DeleteReference(c.Request.Context(), kind, id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func listOrdersHandler(orders OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := orders.List(c.Request.Context(), orderrepo.ListInput{
			Query:    c.Query("q"),
			Status:   c.Query("status"),
			Page:     queryInt(c, "page", 1),
			PageSize: queryInt(c, "pageSize", 0),
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func getOrderHandler(orders OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		o, err := orders.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": o})
	}
}

type setStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func setOrderStatusHandler(orders OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var req setStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		if err := orders.SetStatus(c.Request.Context(), id, req.Status); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func listUsersHandler(users UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := users.List(c.Request.Context(), c.Query("q"), queryInt(c, "page", 1), queryInt(c, "pageSize", 0))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func getUserHandler(users UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		u, err := users.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": u})
	}
}

type setAdminRequest struct {
	IsAdmin *bool `json:"isAdmin" binding:"required"`
}

// setAdminHandler changes the target's admin flag and drops the cached
// value so the change takes effect on the target's next admin request.
func setAdminHandler(users UserService, check AdminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var req setAdminRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		if err := users.SetAdmin(c.Request.Context(), currentUser(c).ID, id, *req.IsAdmin); err != nil {
			respondError(c, err)
			return
		}
		check.Invalidate(id)
		c.Status(http.StatusNoContent)
	}
}

func deleteUserHandler(users UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := users.Delete(c.Request.Context(), currentUser(c).ID, id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
