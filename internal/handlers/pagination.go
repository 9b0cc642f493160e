package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

func parsePaginationParams(pageStr, limitStr string) (int64, int64, error) {
	page := int64(1)
	limit := int64(20)

	if pageStr != "" {
		p, err := strconv.ParseInt(pageStr, 10, 64)
		if err != nil || p < 1 {
			return 0, 0, gin.Error{}
		}
		page = p
	}

	if limitStr != "" {
		l, err := strconv.ParseInt(limitStr, 10, 64)
		if err != nil || l < 1 {
			return 0, 0, gin.Error{}
		}
		limit = l
	}

	return page, limit, nil
}

// sanitizeRange clamps offset/limit values from guest order lookups. Out of
// range inputs fall back to defaults instead of failing the request.
func sanitizeRange(start, limit int64) (int64, int64) {
	if start < 0 {
		start = 0
	}
	if limit < 1 {
		limit = 5
	}
	if limit > 50 {
		limit = 50
	}
	return start, limit
}
