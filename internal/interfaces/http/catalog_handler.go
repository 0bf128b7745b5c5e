package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-kardex/internal/application/dto"
	"github.com/jhoicas/almacen-kardex/internal/application/usecase"
)

// CatalogHandler unidades de medida y grupos de productos.
type CatalogHandler struct {
	units  *usecase.UnitUseCase
	groups *usecase.GroupUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(units *usecase.UnitUseCase, groups *usecase.GroupUseCase) *CatalogHandler {
	return &CatalogHandler{units: units, groups: groups}
}

// activeOnly por defecto solo activos; ?include_inactive=true lista todos.
func activeOnly(c *fiber.Ctx) bool {
	return !c.QueryBool("include_inactive", false)
}

// CreateUnit godoc
// @Summary      Crear unidad de medida
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUnitRequest  true  "Nombre y abreviatura"
// @Success      201   {object}  dto.UnitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/units [post]
func (h *CatalogHandler) CreateUnit(c *fiber.Ctx) error {
	var in dto.CreateUnitRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.units.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListUnits godoc
// @Summary      Listar unidades de medida
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        include_inactive  query  bool  false  "Incluir inactivas"
// @Success      200  {array}  dto.UnitResponse
// @Router       /api/units [get]
func (h *CatalogHandler) ListUnits(c *fiber.Ctx) error {
	out, err := h.units.List(c.Context(), activeOnly(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ToggleUnit godoc
// @Summary      Activar o desactivar unidad
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la unidad"
// @Success      200  {object}  dto.UnitResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/units/{id}/toggle [post]
func (h *CatalogHandler) ToggleUnit(c *fiber.Ctx) error {
	out, err := h.units.Toggle(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateGroup godoc
// @Summary      Crear grupo de productos
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateGroupRequest  true  "Nombre y descripción"
// @Success      201   {object}  dto.GroupResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/groups [post]
func (h *CatalogHandler) CreateGroup(c *fiber.Ctx) error {
	var in dto.CreateGroupRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.groups.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListGroups godoc
// @Summary      Listar grupos
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        include_inactive  query  bool  false  "Incluir inactivos"
// @Success      200  {array}  dto.GroupResponse
// @Router       /api/groups [get]
func (h *CatalogHandler) ListGroups(c *fiber.Ctx) error {
	out, err := h.groups.List(c.Context(), activeOnly(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ToggleGroup godoc
// @Summary      Activar o desactivar grupo
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del grupo"
// @Success      200  {object}  dto.GroupResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/groups/{id}/toggle [post]
func (h *CatalogHandler) ToggleGroup(c *fiber.Ctx) error {
	out, err := h.groups.Toggle(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
