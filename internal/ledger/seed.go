package ledger

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CurrentDataVersion is the schema version a freshly seeded ledger
// carries and the version the migration manager expects.
const CurrentDataVersion = 2

// DefaultCategories is the seed category list. The reserved category
// comes first; insertion order is the default display order.
func DefaultCategories() []Category {
	return []Category{
		{ID: ReservedCategoryID, Name: "Uncategorized", Color: "#6b7280", Icon: "📦"},
		{ID: "cat_food", Name: "Food & Dining", Color: "#ef4444", Icon: "🍔"},
		{ID: "cat_transport", Name: "Transport", Color: "#f59e0b", Icon: "🚌"},
		{ID: "cat_groceries", Name: "Groceries", Color: "#10b981", Icon: "🛒"},
		{ID: "cat_rent", Name: "Rent & Utilities", Color: "#3b82f6", Icon: "🏠"},
		{ID: "cat_entertainment", Name: "Entertainment", Color: "#8b5cf6", Icon: "🎬"},
		{ID: "cat_health", Name: "Health", Color: "#ec4899", Icon: "🩺"},
		{ID: "cat_salary", Name: "Salary", Color: "#22c55e", Icon: "💼"},
		{ID: "cat_freelance", Name: "Freelance", Color: "#14b8a6", Icon: "🧰"},
	}
}

func DefaultSettings() Settings {
	return Settings{
		Currency:    "MMK",
		StartOfWeek: "monday",
		DateFormat:  "yyyy-mm-dd",
		Theme:       "light",
		DataVersion: CurrentDataVersion,
	}
}

// Seed is the initial value of all four slices, used on first load and
// on full reset.
type Seed struct {
	Transactions []Transaction
	Categories   []Category
	Budgets      []Budget
	Settings     Settings
}

func DefaultSeed() Seed {
	return Seed{
		Transactions: []Transaction{},
		Categories:   DefaultCategories(),
		Budgets:      []Budget{},
		Settings:     DefaultSettings(),
	}
}

type seedFile struct {
	Categories []Category `yaml:"categories"`
}

// LoadSeedCategories reads a YAML category list to seed from instead of
// the built-in defaults. Entries without an id or name are skipped; the
// reserved category is prepended when the file leaves it out so the
// always-exists invariant holds from the first write.
func LoadSeedCategories(path string) ([]Category, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	out := make([]Category, 0, len(f.Categories)+1)
	hasReserved := false
	for _, c := range f.Categories {
		if c.ID == "" || c.Name == "" {
			continue
		}
		if c.ID == ReservedCategoryID {
			hasReserved = true
		}
		out = append(out, c)
	}
	if !hasReserved {
		out = append([]Category{DefaultCategories()[0]}, out...)
	}
	return out, nil
}
