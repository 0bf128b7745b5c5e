package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-kardex/internal/domain/entity"
	"github.com/jhoicas/almacen-kardex/internal/domain/inventory"
)

// queryDate lee un parámetro opcional "YYYY-MM-DD". Vacío = nil.
func queryDate(c *fiber.Ctx, key string) (*time.Time, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	d, err := entity.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// queryRange lee from/to como inventory.DateRange. La validación del orden la hace el caso de uso.
func queryRange(c *fiber.Ctx) (inventory.DateRange, error) {
	from, err := queryDate(c, "from")
	if err != nil {
		return inventory.DateRange{}, err
	}
	to, err := queryDate(c, "to")
	if err != nil {
		return inventory.DateRange{}, err
	}
	return inventory.DateRange{From: from, To: to}, nil
}

// queryBool lee un booleano opcional. Vacío = nil.
func queryBool(c *fiber.Ctx, key string) (*bool, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
