package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskaura-api/internal/constants"
)

// PaginationParams holds the pagination parameters. Page is zero-indexed.
type PaginationParams struct {
	Page   int
	Size   int
	Search string
}

// GetPaginationParams extracts page, size and search from the query string.
// Out of range values fall back to the defaults.
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.FirstPage)))
	if err != nil || page < constants.FirstPage {
		page = constants.FirstPage
	}

	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(constants.DefaultPageSize)))
	if err != nil || size < constants.MinPageSize || size > constants.MaxPageSize {
		size = constants.DefaultPageSize
	}

	return PaginationParams{
		Page:   page,
		Size:   size,
		Search: c.Query("search"),
	}
}

// TotalPages returns the number of pages needed for total items.
func TotalPages(total int64, size int) int {
	if size <= 0 {
		return 0
	}
	pages := int(total) / size
	if int(total)%size > 0 {
		pages++
	}
	return pages
}
