package spreadsheet

import (
	"io"

	"sample-stock/internal/models"

	"github.com/xuri/excelize/v2"
)

var (
	stockHeader = []any{"P.O", "Client", "Client P.O", "Product", "Item No", "Batch", "Size",
		"Date In", "Original Qty", "Current Qty", "Shipped", "Purpose", "Note"}
	historyHeader = []any{"Date Sent", "P.O", "Client", "Product", "Size", "Qty",
		"Recipient", "Courier", "Tracking", "Purpose", "Stock Status"}
)

// WriteStock writes lots as an xlsx workbook; purposes maps client -> purpose.
func WriteStock(w io.Writer, lots []models.StockLot, purposes map[string]string) error {
	rows := make([][]any, 0, len(lots))
	for _, l := range lots {
		rows = append(rows, []any{l.PO, l.Client, l.ClientPO, l.Product, l.ItemNo, l.Batch, l.Size,
			l.DateIn, l.OriginalQty, l.CurrentQty, l.Shipped(), purposes[l.Client], l.Note})
	}
	return writeSheet(w, "Stock", stockHeader, rows)
}

// WriteHistory writes shipments as an xlsx workbook. Shipments whose lot was
// purged are marked in the last column.
func WriteHistory(w io.Writer, shipments []models.Shipment, purposes map[string]string) error {
	rows := make([][]any, 0, len(shipments))
	for _, s := range shipments {
		status := ""
		if s.Orphaned() {
			status = "Stok silindi"
		}
		rows = append(rows, []any{s.DateSent, s.PO, s.Client, s.Product, s.Size, s.Qty,
			s.Recipient, s.Courier, s.Tracking, purposes[s.Client], status})
	}
	return writeSheet(w, "History", historyHeader, rows)
}

func writeSheet(w io.Writer, sheet string, header []any, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 16); err != nil {
		return err
	}

	for i, row := range rows {
		start, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, start, &row); err != nil {
			return err
		}
	}
	return f.Write(w)
}
