package admin

import (
	"sample-stock/internal/backup"

	"github.com/gofiber/fiber/v2"
)

// GET /api/admin/backups
func ListBackupsHandler(m *backup.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		files, err := m.List()
		if err != nil {
			return err
		}
		return c.JSON(files)
	}
}

// POST /api/admin/backups
func CreateBackupHandler(m *backup.Manager, keep int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		file, err := m.Create(c.UserContext())
		if err != nil {
			return err
		}
		if _, err := m.Prune(keep); err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(file)
	}
}

// POST /api/admin/backups/restore
// Tüm tabloları seçilen yedekle değiştirir
func RestoreBackupHandler(m *backup.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Name string `json:"name"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Yedek adı zorunlu")
		}

		snap, err := m.Restore(c.UserContext(), body.Name)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"success":    true,
			"stock_lots": len(snap.StockLots),
			"shipments":  len(snap.Shipments),
			"created_at": snap.CreatedAt,
		})
	}
}
