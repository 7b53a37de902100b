package spreadsheet

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/xuri/excelize/v2"
)

// headerAliases maps a normalized header cell to the import field it fills.
var headerAliases = map[string]string{
	"po": "po", "ttxpo": "po", "ttx单号": "po", "usingpo": "po",
	"client": "client", "customer": "client", "客户": "client",
	"clientpo": "client_po", "customerpo": "client_po",
	"product": "product", "productname": "product", "品名": "product",
	"itemno": "item_no", "item": "item_no", "productcode": "item_no",
	"batch": "batch", "批次": "batch",
	"note": "note", "notes": "note", "remark": "note", "备注": "note",
	"date": "date", "datein": "date", "日期": "date",
	"size": "size", "尺码": "size",
	"qty": "qty", "quantity": "qty", "数量": "qty",
}

func normalizeHeader(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsSpace(r) || r == '.' || r == '_' || r == '-' || r == '#' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// mapHeader returns field -> column index for the recognised header cells.
func mapHeader(row []string) map[string]int {
	cols := make(map[string]int, len(row))
	for i, cell := range row {
		field, ok := headerAliases[normalizeHeader(cell)]
		if !ok {
			continue
		}
		if _, dup := cols[field]; !dup {
			cols[field] = i
		}
	}
	return cols
}

var dateLayouts = []string{"2006-01-02", "2006/01/02", "02.01.2006", "2006-1-2", "2006/1/2", "2.1.2006"}

// normalizeDate accepts ISO text, common local layouts and excel serial numbers.
func normalizeDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", true
	}
	if len(raw) > 10 {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t.Format("2006-01-02"), true
		}
		raw = raw[:10]
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil && serial > 0 {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// parseQty accepts integer cells, including excel's "12.0" style.
func parseQty(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, true
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n, n >= math.MinInt32 && n <= math.MaxInt32
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
