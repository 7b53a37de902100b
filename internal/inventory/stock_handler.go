package inventory

import (
	"sample-stock/internal/ledger"

	"github.com/gofiber/fiber/v2"
)

// GET /api/inventory
func ListStockHandler(stock *ledger.StockLedger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lots, err := stock.List(c.UserContext(), false)
		if err != nil {
			return err
		}
		return c.JSON(lots)
	}
}

// GET /api/inventory/trash
func ListStockTrashHandler(stock *ledger.StockLedger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lots, err := stock.List(c.UserContext(), true)
		if err != nil {
			return err
		}
		return c.JSON(lots)
	}
}

// POST /api/inventory
func CreateStockHandler(stock *ledger.StockLedger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ledger.LotInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		lot, err := stock.Intake(c.UserContext(), body)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(lot)
	}
}

// PUT /api/inventory/:id
func UpdateStockHandler(stock *ledger.StockLedger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return err
		}
		var body ledger.LotEdit
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		lot, err := stock.Edit(c.UserContext(), id, body)
		if err != nil {
			return err
		}
		return c.JSON(lot)
	}
}

// DELETE /api/inventory/:id (çöp kutusuna taşır)
func SoftDeleteStockHandler(stock *ledger.StockLedger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return err
		}
		if err := stock.SoftDelete(c.UserContext(), id); err != nil {
			return err
		}
		return success(c)
	}
}

// POST /api/inventory/restore/:id
func RestoreStockHandler(stock *ledger.StockLedger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return err
		}
		if err := stock.Restore(c.UserContext(), id); err != nil {
			return err
		}
		return success(c)
	}
}

// DELETE /api/inventory/trash/:id
// Kalıcı silme: sevkiyat geçmişi stok bağlantısı olmadan kalır
func HardDeleteStockHandler(stock *ledger.StockLedger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return err
		}
		if err := stock.HardDelete(c.UserContext(), id); err != nil {
			return err
		}
		return success(c)
	}
}
