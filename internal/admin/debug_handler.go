package admin

import (
	"log"

	"sample-stock/internal/database"
	"sample-stock/internal/ledger"
	"sample-stock/internal/models"

	"github.com/gofiber/fiber/v2"
)

// POST /api/debug/reset-db
// Sevkiyat, stok ve kargo kayıtlarını tek işlemde siler; referans tabloları kalır
func ResetDBHandler(store *ledger.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := store.Write(c.UserContext(), func(tx *ledger.Tx) error {
			for _, model := range []any{&models.Shipment{}, &models.StockLot{}, &models.Courier{}} {
				if err := tx.DB().Where("1 = 1").Delete(model).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}

		log.Println("Veritabanı sıfırlandı (debug)")
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Veritabanı sıfırlandı",
		})
	}
}

// GET /api/debug/queries?limit=50
func RecentQueriesHandler(queries *database.QueryLog) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(queries.Recent(c.QueryInt("limit", 0)))
	}
}

// DELETE /api/debug/queries
func ClearQueriesHandler(queries *database.QueryLog) fiber.Handler {
	return func(c *fiber.Ctx) error {
		queries.Clear()
		return c.JSON(fiber.Map{"success": true})
	}
}
