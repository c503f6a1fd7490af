// Package codec moves whole-ledger snapshots across the import/export
// boundary: a portable JSON document, plus an XLSX workbook for
// spreadsheet use.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"thonex/internal/dates"
	"thonex/internal/ledger"
	"thonex/internal/log"
	"thonex/internal/notify"
)

var (
	// ErrInvalidSnapshot: the payload is not a JSON object at all.
	ErrInvalidSnapshot = errors.New("invalid snapshot format")
	// ErrMissingData: a required top-level slice is absent or has the
	// wrong shape.
	ErrMissingData = errors.New("snapshot is missing required data")
)

// Snapshot is the portable export document: a structural copy of the
// four slices plus the export timestamp.
type Snapshot struct {
	ExportedAt   string               `json:"exportedAt"`
	Transactions []ledger.Transaction `json:"transactions"`
	Categories   []ledger.Category    `json:"categories"`
	Budgets      []ledger.Budget      `json:"budgets"`
	Settings     ledger.Settings      `json:"settings"`
}

// Codec validates inbound snapshots and serializes outbound ones.
type Codec struct {
	notifier notify.Notifier
	log      *log.Logger
	now      func() time.Time
}

type Option func(*Codec)

func WithNotifier(n notify.Notifier) Option {
	return func(c *Codec) { c.notifier = n }
}

func WithLogger(logger *log.Logger) Option {
	return func(c *Codec) { c.log = logger.WithComponent(log.ComponentCodec) }
}

func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

func New(opts ...Option) *Codec {
	c := &Codec{log: log.Discard(), now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Export copies the current ledger into a snapshot. No transformation
// happens on the way out.
func (c *Codec) Export(l *ledger.Ledger) Snapshot {
	return Snapshot{
		ExportedAt:   dates.ToISODateTime(c.now()),
		Transactions: l.Transactions(),
		Categories:   l.Categories(),
		Budgets:      l.Budgets(),
		Settings:     l.Settings(),
	}
}

// EncodeJSON writes the snapshot as an indented JSON document.
func (c *Codec) EncodeJSON(s Snapshot, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// rawSnapshot defers slice decoding so shape violations can be told
// apart from absent keys.
type rawSnapshot struct {
	Transactions json.RawMessage `json:"transactions"`
	Categories   json.RawMessage `json:"categories"`
	Budgets      json.RawMessage `json:"budgets"`
	Settings     json.RawMessage `json:"settings"`
}

// ImportJSON validates data and, on success, atomically replaces all
// four slices. Any deviation from the export shape is a hard rejection
// with the ledger untouched. Imported settings merge over the seed
// defaults, so a snapshot from an older build still yields a complete
// settings singleton.
func (c *Codec) ImportJSON(l *ledger.Ledger, data []byte) error {
	var raw rawSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		c.reject("Import failed: invalid file format.")
		return fmt.Errorf("%w: %s", ErrInvalidSnapshot, err)
	}

	if !isJSONArray(raw.Transactions) || !isJSONArray(raw.Categories) ||
		!isJSONArray(raw.Budgets) || !isJSONObject(raw.Settings) {
		c.reject("Import failed: missing required data.")
		return ErrMissingData
	}

	var (
		txns    []ledger.Transaction
		cats    []ledger.Category
		budgets []ledger.Budget
	)
	if err := json.Unmarshal(raw.Transactions, &txns); err != nil {
		c.reject("Import failed: invalid file format.")
		return fmt.Errorf("%w: transactions: %s", ErrInvalidSnapshot, err)
	}
	if err := json.Unmarshal(raw.Categories, &cats); err != nil {
		c.reject("Import failed: invalid file format.")
		return fmt.Errorf("%w: categories: %s", ErrInvalidSnapshot, err)
	}
	if err := json.Unmarshal(raw.Budgets, &budgets); err != nil {
		c.reject("Import failed: invalid file format.")
		return fmt.Errorf("%w: budgets: %s", ErrInvalidSnapshot, err)
	}

	settings := ledger.DefaultSettings()
	if err := json.Unmarshal(raw.Settings, &settings); err != nil {
		c.reject("Import failed: invalid file format.")
		return fmt.Errorf("%w: settings: %s", ErrInvalidSnapshot, err)
	}

	l.ReplaceAll(txns, cats, budgets, settings)
	c.log.Info("snapshot imported", log.FieldOperation, log.OpImport,
		log.FieldCount, len(txns))
	if c.notifier != nil {
		c.notifier.Push(notify.ToneInfo, "Import completed successfully.")
	}
	return nil
}

func (c *Codec) reject(msg string) {
	c.log.Warn("snapshot rejected", log.FieldOperation, log.OpImport)
	if c.notifier != nil {
		c.notifier.Push(notify.ToneWarning, msg)
	}
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
