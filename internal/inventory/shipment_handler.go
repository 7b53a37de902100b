package inventory

import (
	"sample-stock/internal/ledger"

	"github.com/gofiber/fiber/v2"
)

// GET /api/shipments
func ListShipmentsHandler(shipments *ledger.ShipmentLedger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := shipments.List(c.UserContext(), false)
		if err != nil {
			return err
		}
		return c.JSON(list)
	}
}

// GET /api/shipments/trash
func ListShipmentTrashHandler(shipments *ledger.ShipmentLedger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := shipments.List(c.UserContext(), true)
		if err != nil {
			return err
		}
		return c.JSON(list)
	}
}

// POST /api/shipments
// Taslaktaki tüm satırlar tek işlemde düşülür; biri yetersizse hiçbiri kaydedilmez
func ConfirmShipmentHandler(shipments *ledger.ShipmentLedger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ledger.Confirmation
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		created, err := shipments.ConfirmShipment(c.UserContext(), body)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success":   true,
			"shipments": created,
		})
	}
}

// POST /api/shipments/trash/:id
func TrashShipmentHandler(shipments *ledger.ShipmentLedger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return err
		}
		if err := shipments.Trash(c.UserContext(), id); err != nil {
			return err
		}
		return success(c)
	}
}

// DELETE /api/shipments/:id (geri al: stoğa iade, çöp kutusuna düşmez)
func UndoShipmentHandler(shipments *ledger.ShipmentLedger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return err
		}
		if err := shipments.Undo(c.UserContext(), id); err != nil {
			return err
		}
		return success(c)
	}
}

// POST /api/shipments/restore/:id
func RestoreShipmentHandler(shipments *ledger.ShipmentLedger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return err
		}
		if err := shipments.Restore(c.UserContext(), id); err != nil {
			return err
		}
		return success(c)
	}
}

// DELETE /api/shipments/trash/:id
func PurgeShipmentHandler(shipments *ledger.ShipmentLedger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return err
		}
		if err := shipments.PermanentDelete(c.UserContext(), id); err != nil {
			return err
		}
		return success(c)
	}
}
