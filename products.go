package main

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// searchProducts finds catalog products by name substring, case-insensitive.
// GET /api/products/search?q=&limit= (public). Limit defaults to 10, max 50.
func (h *Handler) searchProducts(c *gin.Context) {
	query := c.Query("q")
	limit := 10
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			apiError(c, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	if limit > 50 {
		apiError(c, http.StatusBadRequest, "limit must not exceed 50")
		return
	}

	products, err := queryMany[product](h.db, c,
		`SELECT id, name, calories, proteins, fats, carbs FROM products
		 WHERE name ILIKE @pattern
		 ORDER BY name
		 LIMIT @limit`,
		pgx.NamedArgs{"pattern": "%" + query + "%", "limit": limit})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to search products")
		return
	}
	// Ensure empty array (not null) in JSON
	if products == nil {
		products = []product{}
	}

	c.JSON(http.StatusOK, products)
}

// listProducts returns the catalog one page at a time.
// GET /api/products?page=&limit= (public). Limit defaults to 20, max 100.
func (h *Handler) listProducts(c *gin.Context) {
	limit := 20
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			apiError(c, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	if limit > 100 {
		apiError(c, http.StatusBadRequest, "limit must not exceed 100")
		return
	}
	page := 1
	if s := c.Query("page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			apiError(c, http.StatusBadRequest, "page must be a positive integer")
			return
		}
		page = n
	}
	offset := (page - 1) * limit

	products, err := queryMany[product](h.db, c,
		`SELECT id, name, calories, proteins, fats, carbs FROM products
		 ORDER BY name
		 LIMIT @limit OFFSET @offset`,
		pgx.NamedArgs{"limit": limit, "offset": offset})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch products")
		return
	}
	if products == nil {
		products = []product{}
	}

	var total int
	if err := h.db.QueryRow(c, "SELECT COUNT(*) FROM products").Scan(&total); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to count products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"pagination": gin.H{
			"total": total,
			"page":  page,
			"limit": limit,
			"pages": int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}
