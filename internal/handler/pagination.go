package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PaginationMeta describes one page of a list endpoint.
type PaginationMeta struct {
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
}

// PaginatedResponse wraps one page of items with its metadata.
type PaginatedResponse[T any] struct {
	Data []T            `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// pageParams reads ?page= and ?limit=, falling back to the endpoint's
// default and clamping to its maximum.
func pageParams(c *gin.Context, defaultLimit, maxLimit int) (page, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// Paginate counts the query, fetches one page of it and wraps the results.
func Paginate[T any](db *gorm.DB, page, limit int) (*PaginatedResponse[T], error) {
	var totalItems int64
	if err := db.Model(new(T)).Count(&totalItems).Error; err != nil {
		return nil, err
	}

	var items []T
	if err := db.Offset((page - 1) * limit).Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}

	return &PaginatedResponse[T]{
		Data: items,
		Meta: PaginationMeta{
			TotalItems: totalItems,
			TotalPages: int((totalItems + int64(limit) - 1) / int64(limit)),
			Page:       page,
			PerPage:    limit,
		},
	}, nil
}
