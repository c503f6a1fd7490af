package ledger

import (
	"time"

	"github.com/google/uuid"

	"thonex/internal/dates"
	"thonex/internal/kvstore"
	"thonex/internal/log"
	"thonex/internal/notify"
	"thonex/internal/state"
)

// Ledger owns the four persisted-state containers and applies every
// mutation as a whole-slice replacement, so a reader never observes a
// half-updated slice. All operations are synchronous and total;
// failures come back as sentinel errors, never panics.
type Ledger struct {
	transactions *state.Container[[]Transaction]
	categories   *state.Container[[]Category]
	budgets      *state.Container[[]Budget]
	settings     *state.Container[Settings]

	seed     Seed
	notifier notify.Notifier
	log      *log.Logger
	now      func() time.Time
	newID    func() string
}

type Option func(*Ledger)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithIDSource overrides the fresh-id generator.
func WithIDSource(newID func() string) Option {
	return func(l *Ledger) { l.newID = newID }
}

// WithNotifier routes rejection and status messages to a banner.
func WithNotifier(n notify.Notifier) Option {
	return func(l *Ledger) { l.notifier = n }
}

func WithLogger(logger *log.Logger) Option {
	return func(l *Ledger) { l.log = logger.WithComponent(log.ComponentLedger) }
}

// Open loads the ledger from the store, seeding any slice that is
// missing or unreadable. It performs exactly one read per slice.
func Open(store *kvstore.Store, seed Seed, opts ...Option) *Ledger {
	l := &Ledger{
		seed:  seed,
		log:   log.Discard(),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.transactions = state.NewContainer(store, KeyTransactions, seed.Transactions, l.log)
	l.categories = state.NewContainer(store, KeyCategories, seed.Categories, l.log)
	l.budgets = state.NewContainer(store, KeyBudgets, seed.Budgets, l.log)
	l.settings = state.NewContainer(store, KeySettings, seed.Settings, l.log)
	return l
}

// Transactions returns a copy of the transaction slice, newest first.
func (l *Ledger) Transactions() []Transaction {
	return append([]Transaction{}, l.transactions.Get()...)
}

// Categories returns a copy of the category slice in display order.
func (l *Ledger) Categories() []Category {
	return append([]Category{}, l.categories.Get()...)
}

// Budgets returns a copy of the budget set.
func (l *Ledger) Budgets() []Budget {
	return append([]Budget{}, l.budgets.Get()...)
}

func (l *Ledger) Settings() Settings {
	return l.settings.Get()
}

// PersistenceErr returns the first sticky persistence failure across
// the four containers, or nil when storage is keeping up.
func (l *Ledger) PersistenceErr() error {
	for _, err := range []error{
		l.transactions.Err(), l.categories.Err(), l.budgets.Err(), l.settings.Err(),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}

// AddTransaction validates the payload and prepends a new transaction
// with a fresh id and timestamps.
func (l *Ledger) AddTransaction(p TransactionPayload) (Transaction, error) {
	if err := p.Validate(); err != nil {
		l.warn("Transaction rejected: " + err.Error())
		return Transaction{}, err
	}
	now := dates.ToISODateTime(l.now())
	txn := Transaction{
		ID:         l.newID(),
		Type:       p.Type,
		Amount:     p.Amount,
		CategoryID: p.CategoryID,
		Date:       p.Date,
		Note:       p.Note,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	l.transactions.Update(func(prev []Transaction) []Transaction {
		return append([]Transaction{txn}, prev...)
	})
	l.log.Info("transaction added",
		log.FieldOperation, log.OpAdd, log.FieldAmount, txn.Amount, log.FieldCategory, txn.CategoryID)
	return txn, nil
}

// UpdateTransaction merges the patch into the matching transaction and
// bumps updatedAt. Unknown ids are a silent no-op.
func (l *Ledger) UpdateTransaction(id string, patch TransactionPatch) error {
	if err := patch.validate(); err != nil {
		l.warn("Transaction update rejected: " + err.Error())
		return err
	}
	now := dates.ToISODateTime(l.now())
	l.transactions.Update(func(prev []Transaction) []Transaction {
		next := append([]Transaction{}, prev...)
		for i, txn := range next {
			if txn.ID == id {
				merged := patch.apply(txn)
				merged.UpdatedAt = now
				next[i] = merged
				break
			}
		}
		return next
	})
	return nil
}

// DeleteTransaction removes the matching transaction; no-op if absent.
func (l *Ledger) DeleteTransaction(id string) {
	l.transactions.Update(func(prev []Transaction) []Transaction {
		next := make([]Transaction, 0, len(prev))
		for _, txn := range prev {
			if txn.ID != id {
				next = append(next, txn)
			}
		}
		return next
	})
	l.log.Info("transaction deleted", log.FieldOperation, log.OpDelete)
}

// AddCategory appends a new category with a fresh id.
func (l *Ledger) AddCategory(p CategoryPayload) (Category, error) {
	if p.Name == "" {
		l.warn("Category rejected: " + ErrEmptyName.Error())
		return Category{}, ErrEmptyName
	}
	cat := Category{
		ID:    l.newID(),
		Name:  p.Name,
		Color: p.Color,
		Icon:  p.Icon,
	}
	l.categories.Update(func(prev []Category) []Category {
		return append(append([]Category{}, prev...), cat)
	})
	return cat, nil
}

// UpdateCategory merges the patch; unknown ids are a silent no-op.
func (l *Ledger) UpdateCategory(id string, patch CategoryPatch) {
	l.categories.Update(func(prev []Category) []Category {
		next := append([]Category{}, prev...)
		for i, cat := range next {
			if cat.ID == id {
				next[i] = patch.apply(cat)
				break
			}
		}
		return next
	})
}

// DeleteCategory removes a category. The reserved category and any
// category still referenced by a transaction are refused, leaving state
// unchanged; there is no cascade.
func (l *Ledger) DeleteCategory(id string) error {
	if id == ReservedCategoryID {
		l.warn("Uncategorized is required and cannot be deleted.")
		return ErrReservedCategory
	}
	for _, txn := range l.transactions.Get() {
		if txn.CategoryID == id {
			l.warn("This category is used by existing transactions. Remove those first.")
			return ErrCategoryInUse
		}
	}
	l.categories.Update(func(prev []Category) []Category {
		next := make([]Category, 0, len(prev))
		for _, cat := range prev {
			if cat.ID != id {
				next = append(next, cat)
			}
		}
		return next
	})
	return nil
}

// SetBudget upserts the budget for (month, categoryId) when the limit
// is positive and removes it otherwise.
func (l *Ledger) SetBudget(in BudgetInput) {
	now := dates.ToISODateTime(l.now())
	l.budgets.Update(func(prev []Budget) []Budget {
		next := make([]Budget, 0, len(prev)+1)
		for _, b := range prev {
			if !(b.Month == in.Month && b.CategoryID == in.CategoryID) {
				next = append(next, b)
			}
		}
		if in.Limit > 0 {
			next = append(next, Budget{
				Month:      in.Month,
				CategoryID: in.CategoryID,
				Limit:      in.Limit,
				UpdatedAt:  now,
			})
		}
		return next
	})
	l.log.Info("budget set",
		log.FieldOperation, log.OpUpdate, log.FieldMonth, in.Month,
		log.FieldCategory, in.CategoryID, log.FieldAmount, in.Limit)
}

// UpdateSettings merges the patch into the settings singleton.
func (l *Ledger) UpdateSettings(patch SettingsPatch) {
	l.settings.Update(func(prev Settings) Settings {
		return patch.apply(prev)
	})
}

// ResetAll replaces all four slices with the seed defaults.
func (l *Ledger) ResetAll() {
	l.transactions.Set(append([]Transaction{}, l.seed.Transactions...))
	l.categories.Set(append([]Category{}, l.seed.Categories...))
	l.budgets.Set(append([]Budget{}, l.seed.Budgets...))
	l.settings.Set(l.seed.Settings)
	l.log.Info("all data reset", log.FieldOperation, log.OpReset)
	l.info("All data has been reset.")
}

// ReplaceAll swaps in a full snapshot. Callers validate first; from
// their point of view the replacement is atomic because nothing reads
// between the four sets.
func (l *Ledger) ReplaceAll(txns []Transaction, cats []Category, budgets []Budget, settings Settings) {
	l.transactions.Set(append([]Transaction{}, txns...))
	l.categories.Set(append([]Category{}, cats...))
	l.budgets.Set(append([]Budget{}, budgets...))
	l.settings.Set(settings)
}

// RescaleAmounts divides every transaction amount and budget limit by
// divisor with half-up rounding. Used by the v1 to v2 migration.
func (l *Ledger) RescaleAmounts(divisor int64) {
	l.transactions.Update(func(prev []Transaction) []Transaction {
		next := append([]Transaction{}, prev...)
		for i := range next {
			next[i].Amount = roundedDiv(next[i].Amount, divisor)
		}
		return next
	})
	l.budgets.Update(func(prev []Budget) []Budget {
		next := append([]Budget{}, prev...)
		for i := range next {
			next[i].Limit = roundedDiv(next[i].Limit, divisor)
		}
		return next
	})
}

func roundedDiv(v, divisor int64) int64 {
	return (v + divisor/2) / divisor
}

func (l *Ledger) warn(msg string) {
	if l.notifier != nil {
		l.notifier.Push(notify.ToneWarning, msg)
	}
}

func (l *Ledger) info(msg string) {
	if l.notifier != nil {
		l.notifier.Push(notify.ToneInfo, msg)
	}
}
