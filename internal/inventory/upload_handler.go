package inventory

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// POST /api/upload
// Sevkiyat fotoğrafını kaydeder, sunucuya göre göreli yolu döner
func UploadHandler(dir string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dosya yüklenmedi")
		}

		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Yükleme klasörü oluşturulamadı")
		}

		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.New().String(), ext)
		if err := c.SaveFile(fileHeader, filepath.Join(dir, name)); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dosya kaydedilemedi: "+err.Error())
		}

		return c.JSON(fiber.Map{
			"path": "uploads/" + name,
		})
	}
}
