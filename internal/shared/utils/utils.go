package utils

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
)

var digitsRe = regexp.MustCompile(`^\d+$`)

var ErrInvalidID = errors.New("invalid id")

// ParseID đọc path param :id (chỉ chấp nhận số dương)
func ParseID(c *gin.Context) (int64, error) {
	raw := c.Param("id")
	if !digitsRe.MatchString(raw) {
		return 0, ErrInvalidID
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// ParsePage reads ?page (default 1) for listings with a fixed page size.
func ParsePage(c *gin.Context) (int, error) {
	return queryDigits(c, "page", 1)
}

// ParsePaging reads ?page and ?count. Both must be plain digits when present.
// Clamping is left to the paginator.
func ParsePaging(c *gin.Context, defaultPerPage int) (page, perPage int, err error) {
	page, err = ParsePage(c)
	if err != nil {
		return 0, 0, err
	}
	perPage, err = queryDigits(c, "count", defaultPerPage)
	if err != nil {
		return 0, 0, err
	}
	return page, perPage, nil
}

func queryDigits(c *gin.Context, name string, def int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return def, nil
	}
	if !digitsRe.MatchString(raw) {
		return 0, fmt.Errorf("parameter %q must match \\d+", name)
	}
	n, err := strconv.Atoi(raw)
	if errors.Is(err, strconv.ErrRange) {
		// số quá lớn vẫn hợp lệ: paginator clamp count, page vượt cuối trả trang rỗng
		return math.MaxInt, nil
	}
	if err != nil {
		return 0, fmt.Errorf("parameter %q is not a number", name)
	}
	return n, nil
}
