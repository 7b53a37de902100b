package ledger

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"sample-stock/internal/database"
	"sample-stock/internal/models"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	// Use a unique in-memory database per test to avoid cross-test collisions.
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := database.Open(database.Options{Driver: database.DriverSQLite, DSN: "file:" + name + "?mode=memory&cache=shared"})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return NewStore(db)
}

func intake(t *testing.T, l *StockLedger, po string, qty int) *models.StockLot {
	t.Helper()
	lot, err := l.Intake(context.Background(), LotInput{PO: po, Client: "Zara", Product: "Denim", Size: "M", Date: "2025-03-01", Qty: qty})
	if err != nil {
		t.Fatalf("intake: %v", err)
	}
	return lot
}

func currentQty(t *testing.T, l *StockLedger, id uint) int {
	t.Helper()
	lot, err := l.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get lot: %v", err)
	}
	return lot.CurrentQty
}

func ship(t *testing.T, l *ShipmentLedger, lot *models.StockLot, qty int) models.Shipment {
	t.Helper()
	out, err := l.ConfirmShipment(context.Background(), Confirmation{
		DateSent: "2025-03-05",
		Items:    []LineItem{{StockID: lot.ID, Qty: qty, PO: lot.PO, Recipient: "Ayşe", Courier: "SF"}},
	})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 shipment got %d", len(out))
	}
	return out[0]
}

func TestIntakeSetsBothQuantities(t *testing.T) {
	stock := NewStockLedger(setupTestStore(t))
	lot := intake(t, stock, "PO-1", 50)
	if lot.ID == 0 {
		t.Fatalf("expected id")
	}
	if lot.OriginalQty != 50 || lot.CurrentQty != 50 {
		t.Fatalf("expected 50/50 got %d/%d", lot.OriginalQty, lot.CurrentQty)
	}
	if lot.Lifecycle != models.LifecycleActive {
		t.Fatalf("expected active got %s", lot.Lifecycle)
	}
}

func TestIntakeRequiresPO(t *testing.T) {
	stock := NewStockLedger(setupTestStore(t))
	_, err := stock.Intake(context.Background(), LotInput{PO: "  ", Qty: 3})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error got %v", err)
	}
	if KindOf(err) != KindValidation {
		t.Fatalf("expected kind validation got %s", KindOf(err))
	}
}

func TestConfirmShipmentDebits(t *testing.T) {
	s := setupTestStore(t)
	stock, shipments := NewStockLedger(s), NewShipmentLedger(s)

	for _, tc := range []struct{ q, s int }{{50, 20}, {10, 10}, {7, 1}} {
		lot := intake(t, stock, "PO-D", tc.q)
		ship(t, shipments, lot, tc.s)
		if got := currentQty(t, stock, lot.ID); got != tc.q-tc.s {
			t.Fatalf("Q=%d S=%d: expected %d got %d", tc.q, tc.s, tc.q-tc.s, got)
		}
	}
}

func TestConfirmShipmentDefaultsQtyToOne(t *testing.T) {
	s := setupTestStore(t)
	stock, shipments := NewStockLedger(s), NewShipmentLedger(s)
	lot := intake(t, stock, "PO-1", 5)

	sh := ship(t, shipments, lot, 0)
	if sh.Qty != 1 {
		t.Fatalf("expected qty 1 got %d", sh.Qty)
	}
	if got := currentQty(t, stock, lot.ID); got != 4 {
		t.Fatalf("expected 4 got %d", got)
	}
}

func TestConfirmShipmentInsufficientStock(t *testing.T) {
	s := setupTestStore(t)
	stock, shipments := NewStockLedger(s), NewShipmentLedger(s)
	lot := intake(t, stock, "PO-LOW", 3)

	_, err := shipments.ConfirmShipment(context.Background(), Confirmation{
		Items: []LineItem{{StockID: lot.ID, Qty: 4, PO: "PO-LOW"}},
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock got %v", err)
	}
	if !strings.Contains(err.Error(), "PO-LOW") {
		t.Fatalf("expected error to name the P.O, got %q", err.Error())
	}
	if got := currentQty(t, stock, lot.ID); got != 3 {
		t.Fatalf("expected unchanged 3 got %d", got)
	}
}

func TestConfirmShipmentIsAllOrNothing(t *testing.T) {
	s := setupTestStore(t)
	stock, shipments := NewStockLedger(s), NewShipmentLedger(s)
	a := intake(t, stock, "PO-A", 10)
	b := intake(t, stock, "PO-B", 2)

	_, err := shipments.ConfirmShipment(context.Background(), Confirmation{
		DateSent: "2025-03-05",
		Items: []LineItem{
			{StockID: a.ID, Qty: 5, PO: "PO-A"},
			{StockID: b.ID, Qty: 3, PO: "PO-B"},
		},
	})
	if !errors.Is(err, ErrInsufficientStock) || !strings.Contains(err.Error(), "PO-B") {
		t.Fatalf("expected insufficient stock for PO-B got %v", err)
	}
	if got := currentQty(t, stock, a.ID); got != 10 {
		t.Fatalf("first line debit survived: expected 10 got %d", got)
	}
	list, err := shipments.List(context.Background(), false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no shipments got %d", len(list))
	}
}

func TestConfirmShipmentValidation(t *testing.T) {
	shipments := NewShipmentLedger(setupTestStore(t))
	if _, err := shipments.ConfirmShipment(context.Background(), Confirmation{}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation for empty batch got %v", err)
	}
	_, err := shipments.ConfirmShipment(context.Background(), Confirmation{DateSent: "05/03/2025", Items: []LineItem{{StockID: 1}}})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation for bad date got %v", err)
	}
}

func TestTrashRestoreScenario(t *testing.T) {
	s := setupTestStore(t)
	stock, shipments := NewStockLedger(s), NewShipmentLedger(s)
	ctx := context.Background()

	lot := intake(t, stock, "PO-1", 50)
	sh := ship(t, shipments, lot, 20)
	if got := currentQty(t, stock, lot.ID); got != 30 {
		t.Fatalf("after confirm expected 30 got %d", got)
	}

	if err := shipments.Trash(ctx, sh.ID); err != nil {
		t.Fatalf("trash: %v", err)
	}
	if got := currentQty(t, stock, lot.ID); got != 50 {
		t.Fatalf("after trash expected 50 got %d", got)
	}
	trash, _ := shipments.List(ctx, true)
	if len(trash) != 1 || trash[0].DeletedAt == nil {
		t.Fatalf("expected shipment in trash, got %+v", trash)
	}

	if err := shipments.Restore(ctx, sh.ID); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if got := currentQty(t, stock, lot.ID); got != 30 {
		t.Fatalf("after restore expected 30 got %d", got)
	}
	active, _ := shipments.List(ctx, false)
	if len(active) != 1 || active[0].DeletedAt != nil {
		t.Fatalf("expected restored shipment active, got %+v", active)
	}
}

func TestTrashAndRestoreAreNotRepeatable(t *testing.T) {
	s := setupTestStore(t)
	stock, shipments := NewStockLedger(s), NewShipmentLedger(s)
	ctx := context.Background()
	lot := intake(t, stock, "PO-1", 10)
	sh := ship(t, shipments, lot, 4)

	if err := shipments.Restore(ctx, sh.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("restore of active shipment: expected not found got %v", err)
	}
	if err := shipments.Trash(ctx, sh.ID); err != nil {
		t.Fatalf("trash: %v", err)
	}
	if err := shipments.Trash(ctx, sh.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second trash: expected not found got %v", err)
	}
	if got := currentQty(t, stock, lot.ID); got != 10 {
		t.Fatalf("expected single credit, got %d", got)
	}
}

func TestCreateTrashRestoreTrashBalances(t *testing.T) {
	s := setupTestStore(t)
	stock, shipments := NewStockLedger(s), NewShipmentLedger(s)
	ctx := context.Background()
	lot := intake(t, stock, "PO-1", 10)
	sh := ship(t, shipments, lot, 6)

	for i := 0; i < 3; i++ {
		if err := shipments.Trash(ctx, sh.ID); err != nil {
			t.Fatalf("trash %d: %v", i, err)
		}
		if err := shipments.Restore(ctx, sh.ID); err != nil {
			t.Fatalf("restore %d: %v", i, err)
		}
	}
	if got := currentQty(t, stock, lot.ID); got != 4 {
		t.Fatalf("expected 4 got %d", got)
	}
	if err := shipments.Trash(ctx, sh.ID); err != nil {
		t.Fatalf("trash: %v", err)
	}
	if err := shipments.PermanentDelete(ctx, sh.ID); err != nil {
		t.Fatalf("purge: %v", err)
	}
	if got := currentQty(t, stock, lot.ID); got != 10 {
		t.Fatalf("purge must not change quantity: expected 10 got %d", got)
	}
}

func TestUndoCreditsAndRemoves(t *testing.T) {
	s := setupTestStore(t)
	stock, shipments := NewStockLedger(s), NewShipmentLedger(s)
	ctx := context.Background()
	lot := intake(t, stock, "PO-1", 50)
	sh := ship(t, shipments, lot, 20)

	if err := shipments.Undo(ctx, sh.ID); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if got := currentQty(t, stock, lot.ID); got != 50 {
		t.Fatalf("expected 50 got %d", got)
	}
	trash, _ := shipments.List(ctx, true)
	active, _ := shipments.List(ctx, false)
	if len(trash) != 0 || len(active) != 0 {
		t.Fatalf("undo must not leave a trash entry: trash=%d active=%d", len(trash), len(active))
	}
	if err := shipments.Undo(ctx, sh.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second undo: expected not found got %v", err)
	}
}

func TestUndoTrashedShipment(t *testing.T) {
	s := setupTestStore(t)
	stock, shipments := NewStockLedger(s), NewShipmentLedger(s)
	ctx := context.Background()
	lot := intake(t, stock, "PO-1", 50)
	sh := ship(t, shipments, lot, 20)

	if err := shipments.Trash(ctx, sh.ID); err != nil {
		t.Fatalf("trash: %v", err)
	}
	if err := shipments.Undo(ctx, sh.ID); err != nil {
		t.Fatalf("undo trashed: %v", err)
	}
	// Çöpe atarken iade edildi, ikinci kez eklenmemeli
	if got := currentQty(t, stock, lot.ID); got != 50 {
		t.Fatalf("expected 50 got %d", got)
	}
	if trash, _ := shipments.List(ctx, true); len(trash) != 0 {
		t.Fatalf("expected trash to be empty got %d", len(trash))
	}
	if err := shipments.Undo(ctx, sh.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second undo: expected not found got %v", err)
	}
}

func TestConfirmShipmentSkipsTrashedLot(t *testing.T) {
	s := setupTestStore(t)
	stock, shipments := NewStockLedger(s), NewShipmentLedger(s)
	ctx := context.Background()
	lot := intake(t, stock, "PO-1", 50)

	if err := stock.SoftDelete(ctx, lot.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	_, err := shipments.ConfirmShipment(ctx, Confirmation{
		DateSent: "2025-03-05",
		Items:    []LineItem{{StockID: lot.ID, Qty: 5, PO: lot.PO}},
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock got %v", err)
	}
	if got := currentQty(t, stock, lot.ID); got != 50 {
		t.Fatalf("expected 50 got %d", got)
	}
}

func TestPermanentDeleteRequiresTrash(t *testing.T) {
	s := setupTestStore(t)
	stock, shipments := NewStockLedger(s), NewShipmentLedger(s)
	lot := intake(t, stock, "PO-1", 5)
	sh := ship(t, shipments, lot, 2)

	if err := shipments.PermanentDelete(context.Background(), sh.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found got %v", err)
	}
	if got := currentQty(t, stock, lot.ID); got != 3 {
		t.Fatalf("expected 3 got %d", got)
	}
}

func TestEditPreservesShippedAmount(t *testing.T) {
	s := setupTestStore(t)
	stock, shipments := NewStockLedger(s), NewShipmentLedger(s)
	ctx := context.Background()
	lot := intake(t, stock, "PO-1", 100)
	ship(t, shipments, lot, 40)

	newQty, note := 120, "sayım düzeltmesi"
	edited, err := stock.Edit(ctx, lot.ID, LotEdit{OriginalQty: &newQty, Note: &note})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if edited.OriginalQty != 120 || edited.CurrentQty != 80 {
		t.Fatalf("expected 120/80 got %d/%d", edited.OriginalQty, edited.CurrentQty)
	}
	if edited.Shipped() != 40 {
		t.Fatalf("expected 40 shipped got %d", edited.Shipped())
	}
	if edited.Note != note {
		t.Fatalf("expected note %q got %q", note, edited.Note)
	}
	if edited.Product != "Denim" {
		t.Fatalf("untouched fields must survive, product=%q", edited.Product)
	}
}

func TestEditRejectsQuantityBelowShipped(t *testing.T) {
	s := setupTestStore(t)
	stock, shipments := NewStockLedger(s), NewShipmentLedger(s)
	lot := intake(t, stock, "PO-1", 100)
	ship(t, shipments, lot, 40)

	newQty := 30
	if _, err := stock.Edit(context.Background(), lot.ID, LotEdit{OriginalQty: &newQty}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation got %v", err)
	}
	if got := currentQty(t, stock, lot.ID); got != 60 {
		t.Fatalf("expected 60 got %d", got)
	}
}

func TestEditUnknownLot(t *testing.T) {
	stock := NewStockLedger(setupTestStore(t))
	q := 1
	if _, err := stock.Edit(context.Background(), 999, LotEdit{OriginalQty: &q}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found got %v", err)
	}
}

func TestSoftDeleteAndRestoreLot(t *testing.T) {
	s := setupTestStore(t)
	stock, shipments := NewStockLedger(s), NewShipmentLedger(s)
	ctx := context.Background()
	lot := intake(t, stock, "PO-1", 10)
	sh := ship(t, shipments, lot, 3)

	if err := stock.SoftDelete(ctx, lot.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	active, _ := stock.List(ctx, false)
	trash, _ := stock.List(ctx, true)
	if len(active) != 0 || len(trash) != 1 {
		t.Fatalf("expected lot in trash only: active=%d trash=%d", len(active), len(trash))
	}
	if trash[0].CurrentQty != 7 {
		t.Fatalf("soft delete must not touch qty, got %d", trash[0].CurrentQty)
	}
	got, _ := shipments.Get(ctx, sh.ID)
	if got.Lifecycle != models.LifecycleActive {
		t.Fatalf("soft delete must not cascade to shipments")
	}

	if err := stock.Restore(ctx, lot.ID); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if err := stock.Restore(ctx, lot.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("restore of active lot: expected not found got %v", err)
	}
	active, _ = stock.List(ctx, false)
	if len(active) != 1 || active[0].DeletedAt != nil {
		t.Fatalf("expected restored lot active")
	}
}

func TestHardDeleteOrphansShipments(t *testing.T) {
	s := setupTestStore(t)
	stock, shipments := NewStockLedger(s), NewShipmentLedger(s)
	ctx := context.Background()
	lot := intake(t, stock, "PO-1", 10)
	ship(t, shipments, lot, 3)
	ship(t, shipments, lot, 2)

	if err := stock.HardDelete(ctx, lot.ID); err != nil {
		t.Fatalf("hard delete: %v", err)
	}
	if _, err := stock.Get(ctx, lot.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected lot gone got %v", err)
	}
	list, err := shipments.List(ctx, false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 orphaned shipments got %d", len(list))
	}
	for _, sh := range list {
		if !sh.Orphaned() || sh.PO != "PO-1" || sh.Recipient != "Ayşe" {
			t.Fatalf("expected orphan with history intact, got %+v", sh)
		}
	}
	if err := stock.HardDelete(ctx, lot.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second hard delete: expected not found got %v", err)
	}
}

func TestOrphanedShipmentTransitionsAreQuantityNoOps(t *testing.T) {
	s := setupTestStore(t)
	stock, shipments := NewStockLedger(s), NewShipmentLedger(s)
	ctx := context.Background()
	lot := intake(t, stock, "PO-1", 10)
	a := ship(t, shipments, lot, 3)
	b := ship(t, shipments, lot, 2)
	if err := stock.HardDelete(ctx, lot.ID); err != nil {
		t.Fatalf("hard delete: %v", err)
	}

	if err := shipments.Trash(ctx, a.ID); err != nil {
		t.Fatalf("trash orphan: %v", err)
	}
	if err := shipments.Restore(ctx, a.ID); err != nil {
		t.Fatalf("restore orphan: %v", err)
	}
	if err := shipments.Undo(ctx, b.ID); err != nil {
		t.Fatalf("undo orphan: %v", err)
	}
}

func TestListOrdering(t *testing.T) {
	s := setupTestStore(t)
	stock, shipments := NewStockLedger(s), NewShipmentLedger(s)
	ctx := context.Background()
	first := intake(t, stock, "PO-1", 10)
	second := intake(t, stock, "PO-2", 10)

	lots, _ := stock.List(ctx, false)
	if len(lots) != 2 || lots[0].ID != second.ID {
		t.Fatalf("expected newest lot first, got %+v", lots)
	}

	for _, d := range []string{"2025-01-10", "2025-03-01", "2025-02-15"} {
		if _, err := shipments.ConfirmShipment(ctx, Confirmation{DateSent: d, Items: []LineItem{{StockID: first.ID, Qty: 1, PO: "PO-1"}}}); err != nil {
			t.Fatalf("confirm: %v", err)
		}
	}
	list, _ := shipments.List(ctx, false)
	if list[0].DateSent != "2025-03-01" || list[2].DateSent != "2025-01-10" {
		t.Fatalf("expected ship-date descending, got %s %s %s", list[0].DateSent, list[1].DateSent, list[2].DateSent)
	}

	if err := stock.SoftDelete(ctx, first.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	if err := stock.SoftDelete(ctx, second.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	trash, _ := stock.List(ctx, true)
	if len(trash) != 2 || trash[0].ID != second.ID {
		t.Fatalf("expected last deleted first in trash")
	}
}

func TestConcurrentConfirmExactlyOneWins(t *testing.T) {
	s := setupTestStore(t)
	stock, shipments := NewStockLedger(s), NewShipmentLedger(s)
	lot := intake(t, stock, "PO-RACE", 10)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = shipments.ConfirmShipment(context.Background(), Confirmation{
				Items: []LineItem{{StockID: lot.ID, Qty: 8, PO: "PO-RACE"}},
			})
		}(i)
	}
	wg.Wait()

	ok, short := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrInsufficientStock):
			short++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || short != 1 {
		t.Fatalf("expected one success and one insufficient, got ok=%d short=%d", ok, short)
	}
	if got := currentQty(t, stock, lot.ID); got != 2 {
		t.Fatalf("expected 2 got %d", got)
	}
}

func TestNestedRollsBackOnlyInnerWork(t *testing.T) {
	s := setupTestStore(t)
	stock := NewStockLedger(s)
	ctx := context.Background()

	err := s.Write(ctx, func(tx *Tx) error {
		if _, err := tx.Intake(LotInput{PO: "PO-KEEP", Qty: 1}); err != nil {
			return err
		}
		inner := tx.Nested(func(tx *Tx) error {
			if _, err := tx.Intake(LotInput{PO: "PO-DROP", Qty: 1}); err != nil {
				return err
			}
			return invalid("boom")
		})
		if !errors.Is(inner, ErrValidation) {
			t.Fatalf("expected inner validation error got %v", inner)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	lots, _ := stock.List(ctx, false)
	if len(lots) != 1 || lots[0].PO != "PO-KEEP" {
		t.Fatalf("expected only PO-KEEP, got %+v", lots)
	}
}

func TestKindOf(t *testing.T) {
	if KindOf(nil) != "" {
		t.Fatalf("nil must have no kind")
	}
	if KindOf(errors.New("disk full")) != KindStore {
		t.Fatalf("foreign errors are store errors")
	}
	wrapped := StoreErr(errors.New("disk full"))
	if !errors.Is(wrapped, ErrStore) {
		t.Fatalf("expected store kind")
	}
	if StoreErr(notFound("x")) == nil || KindOf(StoreErr(notFound("x"))) != KindNotFound {
		t.Fatalf("ledger errors must pass through StoreErr")
	}
}
