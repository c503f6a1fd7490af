// Package migration drives the stored-data version check that runs
// once per load: a known forward transform for version 1 data, and a
// destructive-reset confirmation for anything else unexpected.
package migration

import (
	"thonex/internal/ledger"
	"thonex/internal/log"
	"thonex/internal/notify"
)

// legacyRescaleDivisor converts v1 minor-unit amounts to whole-unit
// currency.
const legacyRescaleDivisor = 100

// Outcome is what a load-time Run decided.
type Outcome int

const (
	// OutcomeNone: nothing to do. Covers both a current ledger and a
	// versionless one (a brand-new ledger has no version to migrate).
	OutcomeNone Outcome = iota
	// OutcomeMigrated: the v1 to v2 transform was applied in memory and
	// written through.
	OutcomeMigrated
	// OutcomeResetRequired: the stored version is unknown; the caller
	// must ask the user and answer via ConfirmReset. The core never
	// blocks waiting for that answer.
	OutcomeResetRequired
)

// Manager is a one-shot state machine over settings.dataVersion. The
// applied and prompted latches make the at-most-once behavior explicit:
// a second Run in the same session neither re-applies the transform nor
// re-prompts, regardless of what the version says by then.
type Manager struct {
	applied  bool
	prompted bool

	notifier notify.Notifier
	log      *log.Logger
}

type Option func(*Manager)

func WithNotifier(n notify.Notifier) Option {
	return func(m *Manager) { m.notifier = n }
}

func WithLogger(logger *log.Logger) Option {
	return func(m *Manager) { m.log = logger.WithComponent(log.ComponentMigration) }
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{log: log.Discard()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Applied reports whether the forward transform ran this session.
func (m *Manager) Applied() bool { return m.applied }

// Prompted reports whether the reset confirmation was already raised
// this session.
func (m *Manager) Prompted() bool { return m.prompted }

// Run evaluates the loaded ledger once. The mismatch check runs against
// the live in-memory settings after any transform, so a just-migrated
// ledger does not trip a reset prompt.
func (m *Manager) Run(l *ledger.Ledger) Outcome {
	version := l.Settings().DataVersion
	if version == 0 {
		return OutcomeNone
	}

	outcome := OutcomeNone
	if version == 1 && !m.applied {
		m.applied = true
		m.migrateV1ToV2(l)
		outcome = OutcomeMigrated
	}

	version = l.Settings().DataVersion
	if version != ledger.CurrentDataVersion && !m.prompted {
		m.prompted = true
		m.log.Warn("stored data version mismatch",
			log.FieldVersion, version, "expected", ledger.CurrentDataVersion)
		return OutcomeResetRequired
	}
	return outcome
}

// ConfirmReset supplies the user's answer to OutcomeResetRequired.
// Declining leaves the stale-versioned data in place.
func (m *Manager) ConfirmReset(l *ledger.Ledger, accept bool) {
	if !accept {
		m.log.Warn("destructive reset declined; stale data left in place")
		return
	}
	l.ResetAll()
}

func (m *Manager) migrateV1ToV2(l *ledger.Ledger) {
	l.RescaleAmounts(legacyRescaleDivisor)
	version := ledger.CurrentDataVersion
	currency := "MMK"
	l.UpdateSettings(ledger.SettingsPatch{DataVersion: &version, Currency: &currency})
	m.log.Info("migrated stored data", log.FieldOperation, log.OpMigrate,
		log.FieldVersion, version)
	if m.notifier != nil {
		m.notifier.Push(notify.ToneInfo, "Migrated amounts to MMK (no decimals).")
	}
}
