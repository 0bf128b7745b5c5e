package http

import (
	"mime"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-kardex/internal/application/dto"
	appinventory "github.com/jhoicas/almacen-kardex/internal/application/inventory"
	"github.com/jhoicas/almacen-kardex/internal/domain/repository"
)

// InventoryHandler movimientos, kardex y reportes de inventario.
type InventoryHandler struct {
	register *appinventory.RegisterMovementUseCase
	stock    *appinventory.StockUseCase
	importer *appinventory.ImportOpeningBalanceUseCase
	pdf      appinventory.ReportPDFGenerator
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	register *appinventory.RegisterMovementUseCase,
	stock *appinventory.StockUseCase,
	importer *appinventory.ImportOpeningBalanceUseCase,
	pdf appinventory.ReportPDFGenerator,
) *InventoryHandler {
	return &InventoryHandler{register: register, stock: stock, importer: importer, pdf: pdf}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento (entrada o salida)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, type, quantity, date"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.register.RegisterMovementFromRequest(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Listar movimientos (más reciente primero)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "ID del producto"
// @Param        from        query  string  false  "Fecha inicial YYYY-MM-DD"
// @Param        to          query  string  false  "Fecha final YYYY-MM-DD"
// @Param        limit       query  int     false  "Máximo de movimientos (0 = todos)"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	window, err := queryRange(c)
	if err != nil {
		return badQuery(c, "from y to deben tener formato YYYY-MM-DD")
	}
	limit := c.QueryInt("limit", 0)
	if limit < 0 {
		limit = 0
	}
	out, err := h.register.ListMovements(c.Context(), repository.MovementFilter{
		ProductID: c.Query("product_id"),
		From:      window.From,
		To:        window.To,
		Limit:     limit,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Stock godoc
// @Summary      Stock actual de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockResponse
// @Router       /api/products/{id}/stock [get]
func (h *InventoryHandler) Stock(c *fiber.Ctx) error {
	out, err := h.stock.Stock(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *InventoryHandler) kardex(c *fiber.Ctx) (*dto.KardexResponse, error) {
	window, err := queryRange(c)
	if err != nil {
		return nil, badQuery(c, "from y to deben tener formato YYYY-MM-DD")
	}
	out, err := h.stock.Kardex(c.Context(), c.Params("id"), window)
	if err != nil {
		return nil, respondError(c, err)
	}
	return out, nil
}

// Kardex godoc
// @Summary      Kardex de un producto con saldo acumulado
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true   "ID del producto"
// @Param        from  query  string  false  "Fecha inicial YYYY-MM-DD"
// @Param        to    query  string  false  "Fecha final YYYY-MM-DD"
// @Success      200  {object}  dto.KardexResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/kardex/{id} [get]
func (h *InventoryHandler) Kardex(c *fiber.Ctx) error {
	out, err := h.kardex(c)
	if out == nil {
		return err
	}
	return c.JSON(out)
}

// KardexPDF godoc
// @Summary      Kardex de un producto en PDF
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Param        id    path   string  true   "ID del producto"
// @Param        from  query  string  false  "Fecha inicial YYYY-MM-DD"
// @Param        to    query  string  false  "Fecha final YYYY-MM-DD"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/kardex/{id}/pdf [get]
func (h *InventoryHandler) KardexPDF(c *fiber.Ctx) error {
	out, err := h.kardex(c)
	if out == nil {
		return err
	}
	pdf, err := h.pdf.GenerateKardexPDF(c.Context(), out)
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, "kardex-"+out.Product.Code+".pdf", pdf)
}

func (h *InventoryHandler) productFilter(c *fiber.Ctx) (repository.ProductFilter, error) {
	active, err := queryBool(c, "active")
	if err != nil {
		return repository.ProductFilter{}, badQuery(c, "active debe ser true o false")
	}
	return repository.ProductFilter{Active: active}, nil
}

// LowStock godoc
// @Summary      Productos con stock en o por debajo del mínimo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "Filtrar por estado (por defecto todos)"
// @Success      200  {array}  dto.LowStockItemDTO
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	filter, err := h.productFilter(c)
	if err != nil {
		return err
	}
	out, err := h.stock.DetectLowStock(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LowStockPDF godoc
// @Summary      Productos con stock bajo en PDF
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Param        active  query  bool  false  "Filtrar por estado (por defecto todos)"
// @Success      200  {file}  binary
// @Router       /api/inventory/low-stock/pdf [get]
func (h *InventoryHandler) LowStockPDF(c *fiber.Ctx) error {
	filter, err := h.productFilter(c)
	if err != nil {
		return err
	}
	items, err := h.stock.DetectLowStock(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	pdf, err := h.pdf.GenerateLowStockPDF(c.Context(), items)
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, "stock-bajo.pdf", pdf)
}

// Summary godoc
// @Summary      Resumen del inventario (productos y stock total)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "Filtrar por estado (por defecto todos)"
// @Success      200  {object}  dto.InventorySummaryDTO
// @Router       /api/inventory/summary [get]
func (h *InventoryHandler) Summary(c *fiber.Ctx) error {
	filter, err := h.productFilter(c)
	if err != nil {
		return err
	}
	out, err := h.stock.InventorySummary(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Import godoc
// @Summary      Importar inventario inicial
// @Description  Crea los productos de las filas válidas y su movimiento de saldo inicial en una sola transacción.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportRequest  true  "Filas a importar"
// @Success      200   {object}  dto.ImportResultDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/import [post]
func (h *InventoryHandler) Import(c *fiber.Ctx) error {
	var in dto.ImportRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if len(in.Rows) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rows no puede estar vacío"})
	}
	out, err := h.importer.Import(c.Context(), GetUserID(c), in.Rows)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// sendPDF el nombre incluye el código del producto; FormatMediaType lo entrecomilla y escapa.
func sendPDF(c *fiber.Ctx, filename string, body []byte) error {
	disposition := mime.FormatMediaType("inline", map[string]string{"filename": filename})
	if disposition == "" {
		disposition = "inline"
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, disposition)
	return c.Send(body)
}
