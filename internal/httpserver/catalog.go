package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bookstore/internal/repository/reference"
	"bookstore/internal/service/catalog"
)

func searchBooksHandler(books CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		in := catalog.SearchInput{
			Query:    c.Query("q"),
			Page:     queryInt(c, "page", 1),
			PageSize: queryInt(c, "pageSize", 0),
			MinPrice: parsePricePtr(c.Query("minPrice")),
			MaxPrice: parsePricePtr(c.Query("maxPrice")),
		}
		if raw := c.Query("genreId"); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
				in.GenreID = &id
			}
		}

		res, err := books.Search(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func getBookHandler(books CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		b, err := books.GetBook(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"book": b})
	}
}

func listReferencesHandler(books CatalogService, kind reference.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		refs, err := books.ListReferences(c.Request.Context(), kind)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{string(kind): refs})
	}
}
