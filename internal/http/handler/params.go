package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// paramError is a rejected query parameter.
type paramError struct {
	code    string
	message string
}

func (e *paramError) write(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, e.code, e.message)
}

// pagination reads limit and offset. Missing values are 0 and left for the
// service to default; negative or non-numeric values are rejected.
func pagination(c *fiber.Ctx) (limit, offset int, perr *paramError) {
	var err error
	if limit, err = queryInt(c, "limit"); err != nil || limit < 0 {
		return 0, 0, &paramError{"INVALID_LIMIT", "invalid limit"}
	}
	if offset, err = queryInt(c, "offset"); err != nil || offset < 0 {
		return 0, 0, &paramError{"INVALID_OFFSET", "invalid offset"}
	}
	return limit, offset, nil
}

func queryInt(c *fiber.Ctx, key string) (int, error) {
	v := c.Query(key)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

// queryBool parses an optional boolean query parameter; nil means absent.
func queryBool(c *fiber.Ctx, key string) (*bool, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// idParam parses the numeric :id route parameter.
func idParam(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func invalidID(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
}

func invalidBody(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
}
