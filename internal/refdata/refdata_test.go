package refdata

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"sample-stock/internal/database"
	"sample-stock/internal/ledger"
)

func setupTestStore(t *testing.T) *ledger.Store {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := database.Open(database.Options{Driver: database.DriverSQLite, DSN: "file:" + name + "?mode=memory&cache=shared"})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return ledger.NewStore(db)
}

func TestCouriersEnsureIsIdempotent(t *testing.T) {
	couriers := NewCouriers(setupTestStore(t))
	ctx := context.Background()

	first, err := couriers.Ensure(ctx, " SF Express ")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	again, err := couriers.Ensure(ctx, "SF Express")
	if err != nil {
		t.Fatalf("ensure again: %v", err)
	}
	if first.ID != again.ID {
		t.Fatalf("expected same row, got %d and %d", first.ID, again.ID)
	}
	if _, err := couriers.Ensure(ctx, "DHL"); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	list, err := couriers.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Name != "DHL" || list[1].Name != "SF Express" {
		t.Fatalf("expected [DHL SF Express] got %+v", list)
	}
}

func TestCouriersEnsureRejectsEmptyName(t *testing.T) {
	couriers := NewCouriers(setupTestStore(t))
	if _, err := couriers.Ensure(context.Background(), "   "); !errors.Is(err, ledger.ErrValidation) {
		t.Fatalf("expected validation got %v", err)
	}
}

func TestClientPurposeUpsert(t *testing.T) {
	purposes := NewClientPurposes(setupTestStore(t))
	ctx := context.Background()

	if _, err := purposes.Upsert(ctx, "Zara", "Sezon numunesi"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	updated, err := purposes.Upsert(ctx, "Zara", "Renk onayı")
	if err != nil {
		t.Fatalf("upsert again: %v", err)
	}
	if updated.Purpose != "Renk onayı" {
		t.Fatalf("expected updated purpose got %q", updated.Purpose)
	}

	all, _ := purposes.List(ctx)
	if len(all) != 1 {
		t.Fatalf("expected one row per client, got %d", len(all))
	}
	lookup, err := purposes.Lookup(ctx)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if lookup["Zara"] != "Renk onayı" {
		t.Fatalf("unexpected lookup %v", lookup)
	}
	if _, err := purposes.Get(ctx, "H&M"); !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("expected not found got %v", err)
	}
}

func decodeMaster(t *testing.T, raw string) []MasterRow {
	t.Helper()
	var rows []MasterRow
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rows
}

func TestMasterSyncSkipsRowsWithoutPO(t *testing.T) {
	master := NewMasterData(setupTestStore(t))
	ctx := context.Background()

	rows := decodeMaster(t, `[
		{"using_po": " TTX-1 ", "client": "Zara", "product_code": 4711},
		{"client": "no po"},
		{"using_po": "TTX-2"}
	]`)
	report, err := master.Sync(ctx, rows, true)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if report.Inserted != 2 || report.Skipped != 1 || report.Received != 3 {
		t.Fatalf("unexpected report %+v", report)
	}

	list, _ := master.List(ctx)
	if len(list) != 2 || list[0].UsingPO != "TTX-1" || list[0].ProductCode != "4711" {
		t.Fatalf("unexpected rows %+v", list)
	}
}

func TestMasterSyncAppendsUnlessCleared(t *testing.T) {
	master := NewMasterData(setupTestStore(t))
	ctx := context.Background()

	if _, err := master.Sync(ctx, []MasterRow{{UsingPO: "A"}}, true); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if _, err := master.Sync(ctx, []MasterRow{{UsingPO: "B"}}, false); err != nil {
		t.Fatalf("sync: %v", err)
	}
	list, _ := master.List(ctx)
	if len(list) != 2 {
		t.Fatalf("expected appended chunk, got %d rows", len(list))
	}
	if _, err := master.Sync(ctx, []MasterRow{{UsingPO: "C"}}, true); err != nil {
		t.Fatalf("sync: %v", err)
	}
	list, _ = master.List(ctx)
	if len(list) != 1 || list[0].UsingPO != "C" {
		t.Fatalf("expected cleared table, got %+v", list)
	}
}

func TestMasterSyncFailsLargeEmptyBatch(t *testing.T) {
	master := NewMasterData(setupTestStore(t))
	ctx := context.Background()
	if _, err := master.Sync(ctx, []MasterRow{{UsingPO: "KEEP"}}, true); err != nil {
		t.Fatalf("seed: %v", err)
	}

	bad := make([]MasterRow, 6)
	if _, err := master.Sync(ctx, bad, true); !errors.Is(err, ledger.ErrValidation) {
		t.Fatalf("expected validation got %v", err)
	}
	list, _ := master.List(ctx)
	if len(list) != 1 || list[0].UsingPO != "KEEP" {
		t.Fatalf("failed batch must roll back the clear, got %+v", list)
	}

	// small empty batches are accepted
	if _, err := master.Sync(ctx, make([]MasterRow, 5), false); err != nil {
		t.Fatalf("expected small empty batch to pass, got %v", err)
	}
}

func TestCLFReplace(t *testing.T) {
	clf := NewCLFData(setupTestStore(t))
	ctx := context.Background()

	var rows []CLFRow
	raw := `[{"TTX单号": "TTX-9", "批次": "B1", "PO": "C-1"}, {"ttx_po": "TTX-10", "batch": 7}]`
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	n, err := clf.Replace(ctx, rows)
	if err != nil || n != 2 {
		t.Fatalf("replace: n=%d err=%v", n, err)
	}
	list, _ := clf.List(ctx)
	if len(list) != 2 || list[0].TTXPO != "TTX-9" || list[0].ClientPO != "C-1" || list[1].Batch != "7" {
		t.Fatalf("unexpected rows %+v", list)
	}

	if _, err := clf.Replace(ctx, []CLFRow{{TTXPO: "TTX-11"}}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	list, _ = clf.List(ctx)
	if len(list) != 1 || list[0].TTXPO != "TTX-11" {
		t.Fatalf("expected replaced table, got %+v", list)
	}
}
