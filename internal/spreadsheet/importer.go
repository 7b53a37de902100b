package spreadsheet

import (
	"context"
	"io"
	"log"
	"strings"

	"sample-stock/internal/ledger"

	"github.com/xuri/excelize/v2"
)

// More attempted rows than this with zero successes fails the whole import.
const maxSilentFailedRows = 5

type RowResult struct {
	Row     int    `json:"row"` // 1-based sheet row
	PO      string `json:"po"`
	OK      bool   `json:"ok"`
	StockID uint   `json:"stockId,omitempty"`
	Error   string `json:"error,omitempty"`
}

type ImportReport struct {
	Sheet     string      `json:"sheet"`
	Attempted int         `json:"attempted"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
	Rows      []RowResult `json:"rows"`
}

// Importer reads stock lots from the first sheet of an xlsx workbook.
type Importer struct {
	store *ledger.Store
}

func NewImporter(store *ledger.Store) *Importer {
	return &Importer{store: store}
}

func (im *Importer) Import(ctx context.Context, r io.Reader) (*ImportReport, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, ledger.Errorf(ledger.KindValidation, "Excel dosyası okunamadı: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ledger.Errorf(ledger.KindValidation, "Excel dosyasında sheet bulunamadı")
	}
	sheet := sheets[0]

	// Ham değerler: tarih hücreleri seri numarası olarak gelir
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, ledger.Errorf(ledger.KindValidation, "Sheet okunamadı: %v", err)
	}
	if len(rows) == 0 {
		return nil, ledger.Errorf(ledger.KindValidation, "Excel dosyası boş")
	}

	cols := mapHeader(rows[0])
	if _, ok := cols["po"]; !ok {
		return nil, ledger.Errorf(ledger.KindValidation, "Başlık satırında P.O kolonu bulunamadı")
	}

	report := &ImportReport{Sheet: sheet, Rows: make([]RowResult, 0, len(rows)-1)}
	err = im.store.Write(ctx, func(tx *ledger.Tx) error {
		for i := 1; i < len(rows); i++ {
			row := rows[i]
			if blank(row) {
				continue
			}
			report.Attempted++
			res := RowResult{Row: i + 1, PO: cell(row, cols, "po")}

			in, perr := lotFromRow(row, cols)
			if perr == nil {
				perr = tx.Nested(func(tx *ledger.Tx) error {
					lot, err := tx.Intake(in)
					if err != nil {
						return err
					}
					res.StockID = lot.ID
					return nil
				})
			}
			if perr != nil {
				res.Error = perr.Error()
				report.Failed++
			} else {
				res.OK = true
				report.Succeeded++
			}
			report.Rows = append(report.Rows, res)
		}

		if report.Attempted > maxSilentFailedRows && report.Succeeded == 0 {
			return ledger.Errorf(ledger.KindValidation,
				"İçe aktarma başarısız: %d satırın hiçbiri aktarılamadı, kolonları kontrol edin", report.Attempted)
		}
		return nil
	})
	if err != nil {
		return report, err
	}

	log.Printf("Stok içe aktarma: %d/%d satır aktarıldı (%s)", report.Succeeded, report.Attempted, sheet)
	return report, nil
}

func lotFromRow(row []string, cols map[string]int) (ledger.LotInput, error) {
	in := ledger.LotInput{
		PO:       cell(row, cols, "po"),
		Client:   cell(row, cols, "client"),
		ClientPO: cell(row, cols, "client_po"),
		Product:  cell(row, cols, "product"),
		ItemNo:   cell(row, cols, "item_no"),
		Batch:    cell(row, cols, "batch"),
		Note:     cell(row, cols, "note"),
		Size:     cell(row, cols, "size"),
	}

	date, ok := normalizeDate(cell(row, cols, "date"))
	if !ok {
		return in, ledger.Errorf(ledger.KindValidation, "Tarih anlaşılamadı: %s", cell(row, cols, "date"))
	}
	in.Date = date

	qty, ok := parseQty(cell(row, cols, "qty"))
	if !ok {
		return in, ledger.Errorf(ledger.KindValidation, "Miktar sayı olmalı: %s", cell(row, cols, "qty"))
	}
	in.Qty = qty
	return in, nil
}

func cell(row []string, cols map[string]int, field string) string {
	i, ok := cols[field]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
