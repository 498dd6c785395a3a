package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const maxPageSize = 100

// pagination reads the page/page_size query values, clamped so a
// hostile value can neither produce a negative offset nor an unbounded
// limit.
func pagination(c *fiber.Ctx, defaultSize int) (limit, offset int) {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}

	size, _ := strconv.Atoi(c.Query("page_size", strconv.Itoa(defaultSize)))
	if size < 1 {
		size = defaultSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	return size, (page - 1) * size
}
