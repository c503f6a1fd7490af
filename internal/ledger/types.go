// Package ledger holds the four persisted state slices (transactions,
// categories, budgets, settings) and the mutation operations over them.
package ledger

import (
	"errors"

	"thonex/internal/dates"
)

// Storage keys of the four slices. The _v1 suffix names the storage
// layout, not the data version inside settings.
const (
	KeyTransactions = "et_transactions_v1"
	KeyCategories   = "et_categories_v1"
	KeyBudgets      = "et_budgets_v1"
	KeySettings     = "et_settings_v1"
)

// ReservedCategoryID is the one category that always exists and can
// never be deleted. Transactions with dangling category references
// render as "Unknown" but are otherwise tolerated.
const ReservedCategoryID = "cat_uncategorized"

type TxnType string

const (
	TypeIncome  TxnType = "income"
	TypeExpense TxnType = "expense"
)

type (
	Transaction struct {
		ID         string  `json:"id"`
		Type       TxnType `json:"type"`
		Amount     int64   `json:"amount"`
		CategoryID string  `json:"categoryId"`
		Date       string  `json:"date"` // YYYY-MM-DD, no time component
		Note       string  `json:"note"`
		CreatedAt  string  `json:"createdAt"`
		UpdatedAt  string  `json:"updatedAt"`
	}

	Category struct {
		ID    string `json:"id" yaml:"id"`
		Name  string `json:"name" yaml:"name"`
		Color string `json:"color" yaml:"color"`
		Icon  string `json:"icon" yaml:"icon"`
	}

	// Budget is keyed by the composite (Month, CategoryID); at most one
	// budget exists per composite key.
	Budget struct {
		Month      string `json:"month"` // YYYY-MM
		CategoryID string `json:"categoryId"`
		Limit      int64  `json:"limit"`
		UpdatedAt  string `json:"updatedAt"`
	}

	Settings struct {
		Currency    string `json:"currency"`
		StartOfWeek string `json:"startOfWeek"`
		DateFormat  string `json:"dateFormat"`
		Theme       string `json:"theme"`
		DataVersion int    `json:"dataVersion"`
	}
)

var (
	ErrInvalidType      = errors.New("transaction type must be income or expense")
	ErrInvalidAmount    = errors.New("amount must be a positive integer")
	ErrInvalidDate      = errors.New("date must be a valid YYYY-MM-DD calendar date")
	ErrMissingCategory  = errors.New("category id is required")
	ErrEmptyName        = errors.New("category name cannot be empty")
	ErrReservedCategory = errors.New("the reserved category cannot be deleted")
	ErrCategoryInUse    = errors.New("category is referenced by existing transactions")
)

// TransactionPayload is the input for a new transaction.
type TransactionPayload struct {
	Type       TxnType
	Amount     int64
	CategoryID string
	Date       string
	Note       string
}

func (p TransactionPayload) Validate() error {
	switch p.Type {
	case TypeIncome, TypeExpense:
	default:
		return ErrInvalidType
	}
	if p.Amount <= 0 {
		return ErrInvalidAmount
	}
	if p.CategoryID == "" {
		return ErrMissingCategory
	}
	if !dates.ValidISODate(p.Date) {
		return ErrInvalidDate
	}
	return nil
}

// CategoryPayload is the input for a new category.
type CategoryPayload struct {
	Name  string
	Color string
	Icon  string
}

// BudgetInput addresses one composite key. A Limit <= 0 means "remove
// the budget for this key"; no zero or negative limit ever persists.
type BudgetInput struct {
	Month      string
	CategoryID string
	Limit      int64
}

// Patch types carry partial updates; nil fields stay unchanged.
type (
	TransactionPatch struct {
		Type       *TxnType
		Amount     *int64
		CategoryID *string
		Date       *string
		Note       *string
	}

	CategoryPatch struct {
		Name  *string
		Color *string
		Icon  *string
	}

	SettingsPatch struct {
		Currency    *string
		StartOfWeek *string
		DateFormat  *string
		Theme       *string
		DataVersion *int
	}
)

func (p TransactionPatch) validate() error {
	if p.Type != nil {
		switch *p.Type {
		case TypeIncome, TypeExpense:
		default:
			return ErrInvalidType
		}
	}
	if p.Amount != nil && *p.Amount <= 0 {
		return ErrInvalidAmount
	}
	if p.Date != nil && !dates.ValidISODate(*p.Date) {
		return ErrInvalidDate
	}
	return nil
}

func (p TransactionPatch) apply(t Transaction) Transaction {
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.CategoryID != nil {
		t.CategoryID = *p.CategoryID
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Note != nil {
		t.Note = *p.Note
	}
	return t
}

func (p CategoryPatch) apply(c Category) Category {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.Icon != nil {
		c.Icon = *p.Icon
	}
	return c
}

func (p SettingsPatch) apply(s Settings) Settings {
	if p.Currency != nil {
		s.Currency = *p.Currency
	}
	if p.StartOfWeek != nil {
		s.StartOfWeek = *p.StartOfWeek
	}
	if p.DateFormat != nil {
		s.DateFormat = *p.DateFormat
	}
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.DataVersion != nil {
		s.DataVersion = *p.DataVersion
	}
	return s
}
