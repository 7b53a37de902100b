package inventory

import (
	"bytes"
	"strings"

	"sample-stock/internal/ledger"
	"sample-stock/internal/refdata"
	"sample-stock/internal/spreadsheet"

	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type exportRequest struct {
	IDs []uint `json:"ids"` // boşsa tüm aktif kayıtlar
}

// POST /api/import/stock
func ImportStockHandler(importer *spreadsheet.Importer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dosya yüklenemedi: "+err.Error())
		}
		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Sadece .xlsx dosyaları yüklenebilir")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dosya açılamadı: "+err.Error())
		}
		defer file.Close()

		report, err := importer.Import(c.UserContext(), file)
		if err != nil {
			return err
		}
		return c.JSON(report)
	}
}

// POST /api/export/stock-template
func ExportStockHandler(stock *ledger.StockLedger, purposes *refdata.ClientPurposes) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body exportRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&body); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
			}
		}

		lots, err := stock.ListByIDs(c.UserContext(), body.IDs)
		if err != nil {
			return err
		}
		lookup, err := purposes.Lookup(c.UserContext())
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := spreadsheet.WriteStock(&buf, lots, lookup); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası oluşturulamadı")
		}
		return sendWorkbook(c, "Stock_Export.xlsx", buf.Bytes())
	}
}

// POST /api/export/history-template
func ExportHistoryHandler(shipments *ledger.ShipmentLedger, purposes *refdata.ClientPurposes) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body exportRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&body); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
			}
		}

		list, err := shipments.ListByIDs(c.UserContext(), body.IDs)
		if err != nil {
			return err
		}
		lookup, err := purposes.Lookup(c.UserContext())
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := spreadsheet.WriteHistory(&buf, list, lookup); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası oluşturulamadı")
		}
		return sendWorkbook(c, "History_Export.xlsx", buf.Bytes())
	}
}

func sendWorkbook(c *fiber.Ctx, name string, data []byte) error {
	c.Attachment(name)
	c.Set(fiber.HeaderContentType, xlsxContentType)
	return c.Send(data)
}
