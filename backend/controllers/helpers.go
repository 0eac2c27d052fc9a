package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// paramID parses a positive numeric path parameter.
func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// stringsOrEmpty keeps array-typed JSON columns from being stored as null.
func stringsOrEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
