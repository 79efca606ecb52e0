package http

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

// TimezoneHeader carries the client's IANA zone; "today" is computed in it.
const TimezoneHeader = "X-Timezone"

const maxListLimit = 500

func requestLocation(c *gin.Context, fallback *time.Location) (*time.Location, error) {
	return domain.ResolveLocation(c.GetHeader(TimezoneHeader), fallback)
}

// listLimit reads ?limit=, where 0 or absent means everything.
func listLimit(c *gin.Context) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > maxListLimit {
		return 0, fmt.Errorf("limit must be an integer between 0 and %d", maxListLimit)
	}
	return n, nil
}
