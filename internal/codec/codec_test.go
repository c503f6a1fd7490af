package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"thonex/internal/kvstore"
	"thonex/internal/ledger"
	"thonex/internal/log"
	"thonex/internal/notify"
)

func fixedClock() time.Time {
	return time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
}

func newLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	store := kvstore.New(kvstore.NewMemoryBackend(), log.Discard())
	return ledger.Open(store, ledger.DefaultSeed(), ledger.WithClock(fixedClock))
}

func populate(t *testing.T, led *ledger.Ledger) {
	t.Helper()
	if _, err := led.AddTransaction(ledger.TransactionPayload{
		Type: ledger.TypeExpense, Amount: 5000, CategoryID: "cat_food", Date: "2024-01-05", Note: "lunch",
	}); err != nil {
		t.Fatalf("add transaction: %v", err)
	}
	led.SetBudget(ledger.BudgetInput{Month: "2024-01", CategoryID: "cat_food", Limit: 9000})
}

func TestExportShape(t *testing.T) {
	led := newLedger(t)
	populate(t, led)

	cdc := New(WithClock(fixedClock))
	snap := cdc.Export(led)

	if snap.ExportedAt == "" {
		t.Fatal("expected export timestamp")
	}
	if len(snap.Transactions) != 1 || len(snap.Budgets) != 1 || len(snap.Categories) != 9 {
		t.Fatalf("expected structural copy, got %d/%d/%d", len(snap.Transactions), len(snap.Budgets), len(snap.Categories))
	}
}

func TestImportExportRoundTrip(t *testing.T) {
	src := newLedger(t)
	populate(t, src)
	cdc := New(WithClock(fixedClock))

	var buf bytes.Buffer
	if err := cdc.EncodeJSON(cdc.Export(src), &buf); err != nil {
		t.Fatalf("encode: %v", err)
	}

	dst := newLedger(t)
	if err := cdc.ImportJSON(dst, buf.Bytes()); err != nil {
		t.Fatalf("import: %v", err)
	}

	if !reflect.DeepEqual(src.Transactions(), dst.Transactions()) {
		t.Fatal("transactions changed across round trip")
	}
	if !reflect.DeepEqual(src.Categories(), dst.Categories()) {
		t.Fatal("categories changed across round trip")
	}
	if !reflect.DeepEqual(src.Budgets(), dst.Budgets()) {
		t.Fatal("budgets changed across round trip")
	}
	// Settings were already complete, so the defaults merge is a no-op.
	if src.Settings() != dst.Settings() {
		t.Fatalf("settings changed across round trip: %+v vs %+v", src.Settings(), dst.Settings())
	}
}

func TestImportRejectsBadPayloads(t *testing.T) {
	cases := []struct {
		name string
		data string
		want error
	}{
		{"not json", "not json at all", ErrInvalidSnapshot},
		{"top-level array", `[1,2,3]`, ErrInvalidSnapshot},
		{"missing transactions", `{"categories":[],"budgets":[],"settings":{}}`, ErrMissingData},
		{"missing settings", `{"transactions":[],"categories":[],"budgets":[]}`, ErrMissingData},
		{"transactions not an array", `{"transactions":{},"categories":[],"budgets":[],"settings":{}}`, ErrMissingData},
		{"settings not an object", `{"transactions":[],"categories":[],"budgets":[],"settings":[]}`, ErrMissingData},
		{"malformed transaction entries", `{"transactions":[{"amount":"NaN"}],"categories":[],"budgets":[],"settings":{}}`, ErrInvalidSnapshot},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			led := newLedger(t)
			populate(t, led)
			before := led.Transactions()

			banner := notify.NewCenter()
			cdc := New(WithNotifier(banner))
			err := cdc.ImportJSON(led, []byte(tc.data))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			// Hard rejection: no partial import visible.
			if !reflect.DeepEqual(before, led.Transactions()) {
				t.Fatal("rejected import must leave the ledger unchanged")
			}
			if n := banner.Current(); n == nil || n.Tone != notify.ToneWarning {
				t.Fatal("expected warning notification")
			}
		})
	}
}

func TestImportMergesSettingsOverDefaults(t *testing.T) {
	led := newLedger(t)
	cdc := New()

	data := `{
		"transactions": [],
		"categories": [{"id":"cat_uncategorized","name":"Uncategorized","color":"#6b7280","icon":""}],
		"budgets": [],
		"settings": {"currency":"USD","dataVersion":2}
	}`
	if err := cdc.ImportJSON(led, []byte(data)); err != nil {
		t.Fatalf("import: %v", err)
	}

	s := led.Settings()
	if s.Currency != "USD" {
		t.Fatalf("expected imported currency, got %q", s.Currency)
	}
	// Fields absent from the snapshot keep their defaults.
	if s.Theme != "light" || s.StartOfWeek != "monday" || s.DateFormat != "yyyy-mm-dd" {
		t.Fatalf("expected defaults for missing fields, got %+v", s)
	}
}

func TestImportReplacesAllSlices(t *testing.T) {
	led := newLedger(t)
	populate(t, led)
	cdc := New()

	snap := Snapshot{
		ExportedAt:   "2024-02-01T00:00:00Z",
		Transactions: []ledger.Transaction{{ID: "x1", Type: ledger.TypeIncome, Amount: 7, CategoryID: "cat_salary", Date: "2024-02-01"}},
		Categories:   []ledger.Category{{ID: "cat_uncategorized", Name: "Uncategorized", Color: "#6b7280"}},
		Budgets:      []ledger.Budget{},
		Settings:     ledger.DefaultSettings(),
	}
	raw, _ := json.Marshal(snap)
	if err := cdc.ImportJSON(led, raw); err != nil {
		t.Fatalf("import: %v", err)
	}

	if txns := led.Transactions(); len(txns) != 1 || txns[0].ID != "x1" {
		t.Fatalf("expected transactions replaced, got %+v", txns)
	}
	if len(led.Budgets()) != 0 {
		t.Fatal("expected budgets replaced with the empty set")
	}
	if len(led.Categories()) != 1 {
		t.Fatal("expected categories replaced")
	}
}
