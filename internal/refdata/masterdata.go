package refdata

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"sample-stock/internal/ledger"
	"sample-stock/internal/models"
)

// A batch larger than this with no usable row is treated as a wrong column mapping.
const maxSilentEmptyBatch = 5

// MasterRow is one ERP row as sent by the client. Values may arrive as numbers.
type MasterRow struct {
	UsingPO     string `json:"using_po"`
	Client      string `json:"client"`
	ClientPO    string `json:"client_po"`
	ProductName string `json:"product_name"`
	ProductCode string `json:"product_code"`
	QualityNote string `json:"quality_note"`
}

func (r *MasterRow) UnmarshalJSON(b []byte) error {
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	*r = MasterRow{
		UsingPO:     pick(m, "using_po"),
		Client:      pick(m, "client"),
		ClientPO:    pick(m, "client_po"),
		ProductName: pick(m, "product_name"),
		ProductCode: pick(m, "product_code"),
		QualityNote: pick(m, "quality_note"),
	}
	return nil
}

// CLFRow accepts both the spreadsheet headers and the snake_case keys.
type CLFRow struct {
	TTXPO    string `json:"ttx_po"`
	Batch    string `json:"batch"`
	ClientPO string `json:"client_po"`
}

func (r *CLFRow) UnmarshalJSON(b []byte) error {
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	*r = CLFRow{
		TTXPO:    pick(m, "TTX单号", "ttx_po"),
		Batch:    pick(m, "批次", "batch"),
		ClientPO: pick(m, "PO", "client_po"),
	}
	return nil
}

// pick returns the first non-empty value among keys, trimmed.
func pick(m map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		var s string
		switch t := v.(type) {
		case string:
			s = t
		case float64:
			s = strconv.FormatFloat(t, 'f', -1, 64)
		default:
			s = fmt.Sprint(t)
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

type SyncReport struct {
	Received int `json:"received"`
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

type MasterData struct {
	store *ledger.Store
}

func NewMasterData(store *ledger.Store) *MasterData {
	return &MasterData{store: store}
}

func (d *MasterData) List(ctx context.Context) ([]models.MasterRecord, error) {
	rows := make([]models.MasterRecord, 0)
	if err := d.store.Read(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, ledger.StoreErr(err)
	}
	return rows, nil
}

// Sync inserts one chunk of master rows. clear empties the table first, in the
// same transaction, so a failed first chunk leaves the old data in place.
func (d *MasterData) Sync(ctx context.Context, rows []MasterRow, clear bool) (SyncReport, error) {
	report := SyncReport{Received: len(rows)}
	err := d.store.Write(ctx, func(tx *ledger.Tx) error {
		report = SyncReport{Received: len(rows)}
		if clear {
			if err := tx.DB().Where("1 = 1").Delete(&models.MasterRecord{}).Error; err != nil {
				return err
			}
			log.Println("master_records temizlendi")
		}

		for i, row := range rows {
			if row.UsingPO == "" {
				report.Skipped++
				continue
			}
			rec := models.MasterRecord{
				UsingPO:     row.UsingPO,
				Client:      row.Client,
				ClientPO:    row.ClientPO,
				ProductName: row.ProductName,
				ProductCode: row.ProductCode,
				QualityNote: row.QualityNote,
			}
			if err := tx.Nested(func(tx *ledger.Tx) error { return tx.DB().Create(&rec).Error }); err != nil {
				report.Failed++
				log.Printf("Ana veri satırı %d aktarılamadı: %v", i, err)
				continue
			}
			report.Inserted++
		}

		if report.Failed > 0 {
			log.Printf("Ana veri uyarısı: %d satır hatalı, %d satır atlandı", report.Failed, report.Skipped)
		}
		if report.Received > maxSilentEmptyBatch && report.Inserted == 0 {
			return ledger.Errorf(ledger.KindValidation,
				"Aktarım başarısız: %d satırlık grupta geçerli kayıt yok, kolon eşlemesini kontrol edin", report.Received)
		}
		return nil
	})
	if err != nil {
		return report, err
	}
	return report, nil
}

type CLFData struct {
	store *ledger.Store
}

func NewCLFData(store *ledger.Store) *CLFData {
	return &CLFData{store: store}
}

func (d *CLFData) List(ctx context.Context) ([]models.CLFRecord, error) {
	rows := make([]models.CLFRecord, 0)
	if err := d.store.Read(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, ledger.StoreErr(err)
	}
	return rows, nil
}

// Replace swaps the whole CLF table for rows.
func (d *CLFData) Replace(ctx context.Context, rows []CLFRow) (int, error) {
	err := d.store.Write(ctx, func(tx *ledger.Tx) error {
		if err := tx.DB().Where("1 = 1").Delete(&models.CLFRecord{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		recs := make([]models.CLFRecord, 0, len(rows))
		for _, r := range rows {
			recs = append(recs, models.CLFRecord{TTXPO: r.TTXPO, Batch: r.Batch, ClientPO: r.ClientPO})
		}
		return tx.DB().CreateInBatches(recs, 500).Error
	})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}
