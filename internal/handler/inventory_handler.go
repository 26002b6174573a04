package handler

import (
	"bytes"

	"go-expiry-tracker/internal/barcode"
	"go-expiry-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	labelWidth  = 300
	labelHeight = 120
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// GetProducts lists inventory rows by expiry date. Only users allowed to
// view all products see rows owned by others.
// GET /api/v1/products?taken_out=
func (h *InventoryHandler) GetProducts(c *fiber.Ctx) error {
	v, err := viewer(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	takenOut, err := optionalBool(c, "taken_out")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "taken_out must be true or false"})
	}

	products, err := h.service.ListProducts(c.UserContext(), v, takenOut)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

// POST /api/v1/products
func (h *InventoryHandler) CreateProduct(c *fiber.Ctx) error {
	v, err := viewer(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req service.AddProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.AddProduct(c.UserContext(), v, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

// PATCH /api/v1/products/:id/taken-out
func (h *InventoryHandler) ToggleTakenOut(c *fiber.Ctx) error {
	v, err := viewer(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	id, err := parseUUID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.service.ToggleTakenOut(c.UserContext(), v, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product updated", "data": product})
}

// DELETE /api/v1/products/:id
func (h *InventoryHandler) DeleteProduct(c *fiber.Ctx) error {
	v, err := viewer(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	id, err := parseUUID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.service.DeleteProduct(c.UserContext(), v, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

// GET /api/v1/catalog
func (h *InventoryHandler) GetCatalog(c *fiber.Ctx) error {
	products, err := h.service.Catalog(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

// POST /api/v1/catalog
func (h *InventoryHandler) CreateCatalogProduct(c *fiber.Ctx) error {
	var req service.CatalogRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.CreateCatalogProduct(c.UserContext(), &req, getUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Catalog product created", "data": product})
}

// PUT /api/v1/catalog/:code
func (h *InventoryHandler) UpdateCatalogProduct(c *fiber.Ctx) error {
	var req service.CatalogRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.UpdateCatalogProduct(c.UserContext(), c.Params("code"), &req, getUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Catalog product updated", "data": product})
}

// DELETE /api/v1/catalog/:code
func (h *InventoryHandler) DeleteCatalogProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteCatalogProduct(c.UserContext(), c.Params("code")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Catalog product deleted"})
}

// GetBarcode renders the label of a catalog product as PNG
// GET /api/v1/catalog/:code/barcode.png
func (h *InventoryHandler) GetBarcode(c *fiber.Ctx) error {
	code, err := barcode.Normalize(c.Params("code"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	product, err := h.service.CatalogProduct(c.UserContext(), code)
	if err != nil {
		return respondError(c, err)
	}

	var buf bytes.Buffer
	if err := barcode.WritePNG(&buf, product.Code, labelWidth, labelHeight); err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(buf.Bytes())
}

// Lookup resolves a scanned code to a product draft
// GET /api/v1/lookup/:code
func (h *InventoryHandler) Lookup(c *fiber.Ctx) error {
	result, err := h.service.Lookup(c.UserContext(), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
