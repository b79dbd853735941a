package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type addReviewRequest struct {
	Rating  int    `json:"rating"`
	Content string `json:"content"`
}

func listReviewsHandler(reviews ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookID, ok := pathID(c, "id")
		if !ok {
			return
		}
		list, err := reviews.ListByBook(c.Request.Context(), bookID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"reviews": list})
	}
}

func addReviewHandler(reviews ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookID, ok := pathID(c, "id")
		if !ok {
			return
		}
		var req addReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		r, err := reviews.AddReview(c.Request.Context(), currentUser(c).ID, bookID, req.Rating, req.Content)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"review": r})
	}
}

func deleteReviewHandler(reviews ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		reviewID, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := reviews.DeleteReview(c.Request.Context(), currentUser(c), reviewID); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func listFavoritesHandler(reviews ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ids, err := reviews.FavoriteBookIDs(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"bookIds": ids})
	}
}

func toggleFavoriteHandler(reviews ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookID, ok := pathID(c, "bookId")
		if !ok {
			return
		}
		on, err := reviews.ToggleFavorite(c.Request.Context(), currentUser(c).ID, bookID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"favorite": on})
	}
}
