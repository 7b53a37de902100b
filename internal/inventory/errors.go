package inventory

import (
	"errors"
	"log"
	"strconv"

	"sample-stock/internal/ledger"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps a ledger error kind to its HTTP status.
func StatusFor(kind ledger.Kind) int {
	switch kind {
	case ledger.KindNotFound:
		return fiber.StatusNotFound
	case ledger.KindInsufficientStock:
		return fiber.StatusConflict
	case ledger.KindValidation:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler renders every error as {"error": ..., "kind": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"error": fe.Message,
		})
	}

	var le *ledger.Error
	if errors.As(err, &le) {
		status := StatusFor(le.Kind)
		msg := le.Error()
		if status == fiber.StatusInternalServerError {
			log.Println("Veritabanı hatası:", err)
			msg = "Beklenmeyen sunucu hatası"
		}
		return c.Status(status).JSON(fiber.Map{
			"error": msg,
			"kind":  le.Kind,
		})
	}

	log.Println("Unexpected error:", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Beklenmeyen sunucu hatası",
		"kind":  ledger.KindStore,
	})
}

func idParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
	}
	return uint(id), nil
}

func success(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true})
}
