package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"thonex/internal/codec"
	"thonex/internal/config"
	"thonex/internal/dates"
	"thonex/internal/format"
	"thonex/internal/kvstore"
	"thonex/internal/ledger"
	"thonex/internal/log"
	"thonex/internal/migration"
	"thonex/internal/notify"
)

const usage = `Usage: thonex <command> [flags]

Commands:
  report       Dashboard: totals, breakdowns, trends, budget alerts (default)
  add          Add a transaction
  budget       Set or clear a monthly category budget
  export       Export the ledger as JSON
  export-xlsx  Export the ledger as an XLSX workbook
  import       Import a JSON snapshot
  reset        Replace all data with seed defaults
`

func main() {
	// .env is optional; real env always wins.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level, _ := cfg.SlogLevel()
	logger := log.New(log.Config{Level: level, Component: log.ComponentApp})

	backend := openBackend(cfg, logger)
	if closer, ok := backend.(*kvstore.SQLiteBackend); ok {
		defer closer.Close()
	}
	store := kvstore.New(backend, logger)

	seed := ledger.DefaultSeed()
	if cfg.SeedFile != "" {
		cats, err := ledger.LoadSeedCategories(cfg.SeedFile)
		if err != nil {
			logger.Warn("seed file ignored", log.FieldError, err)
		} else {
			seed.Categories = cats
		}
	}

	banner := notify.NewCenter()
	led := ledger.Open(store, seed,
		ledger.WithNotifier(banner),
		ledger.WithLogger(logger),
	)

	mgr := migration.NewManager(
		migration.WithNotifier(banner),
		migration.WithLogger(logger),
	)
	if mgr.Run(led) == migration.OutcomeResetRequired {
		accept := confirm("Data version mismatch detected. Reset stored data to continue?")
		mgr.ConfirmReset(led, accept)
	}

	if err := led.PersistenceErr(); err != nil {
		banner.Push(notify.ToneWarning, "We ran into a storage issue. Changes may not persist.")
	}

	cdc := codec.New(codec.WithNotifier(banner), codec.WithLogger(logger))

	args := os.Args[1:]
	command := "report"
	if len(args) > 0 {
		command = args[0]
		args = args[1:]
	}

	var err error
	switch command {
	case "report":
		err = runReport(led, args)
	case "add":
		err = runAdd(led, args)
	case "budget":
		err = runBudget(led, args)
	case "export":
		err = runExport(cdc, led, args)
	case "export-xlsx":
		err = runExportXLSX(cdc, led, args)
	case "import":
		err = runImport(cdc, led, args)
	case "reset":
		if confirm("Really replace all data with seed defaults?") {
			led.ResetAll()
		}
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", command, usage)
		os.Exit(2)
	}

	printBanner(banner)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openBackend(cfg *config.Config, logger *log.Logger) kvstore.Backend {
	switch cfg.DataBackend {
	case "sqlite":
		b, err := kvstore.OpenSQLite(cfg.SQLiteDBPath)
		if err != nil {
			// Degrade to in-memory-only; the session still works,
			// nothing persists.
			logger.Warn("storage unavailable, continuing without persistence",
				log.FieldBackend, cfg.DataBackend, log.FieldError, err)
			return nil
		}
		logger.Info("opened sqlite backend", log.FieldBackend, cfg.DataBackend)
		return b
	default:
		logger.Info("using memory backend", log.FieldBackend, cfg.DataBackend)
		return kvstore.NewMemoryBackend()
	}
}

func runAdd(led *ledger.Ledger, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	txnType := fs.String("type", "expense", "income or expense")
	amount := fs.String("amount", "", "amount in whole currency units")
	category := fs.String("category", ledger.ReservedCategoryID, "category id")
	date := fs.String("date", dates.ToISODate(time.Now()), "date (YYYY-MM-DD)")
	note := fs.String("note", "", "free-text note")
	fs.Parse(args)

	parsed, ok := format.ParseMoneyInput(*amount)
	if !ok {
		return fmt.Errorf("invalid amount %q", *amount)
	}
	txn, err := led.AddTransaction(ledger.TransactionPayload{
		Type:       ledger.TxnType(*txnType),
		Amount:     parsed,
		CategoryID: *category,
		Date:       *date,
		Note:       *note,
	})
	if err != nil {
		return err
	}
	fmt.Printf("added %s %s on %s (%s)\n", txn.Type, format.Money(txn.Amount, led.Settings().Currency), txn.Date, txn.ID)
	return nil
}

func runBudget(led *ledger.Ledger, args []string) error {
	fs := flag.NewFlagSet("budget", flag.ExitOnError)
	month := fs.String("month", dates.MonthKeyOf(time.Now()), "month key (YYYY-MM)")
	category := fs.String("category", "", "category id")
	limit := fs.String("limit", "", "monthly limit; empty or 0 clears the budget")
	fs.Parse(args)

	if *category == "" {
		return fmt.Errorf("budget requires -category")
	}
	if !dates.ValidMonthKey(*month) {
		return fmt.Errorf("invalid month key %q", *month)
	}

	parsed, ok := format.ParseMoneyInput(*limit)
	if !ok {
		parsed = 0 // clears the composite key
	}
	led.SetBudget(ledger.BudgetInput{Month: *month, CategoryID: *category, Limit: parsed})
	if parsed > 0 {
		fmt.Printf("budget for %s in %s set to %s\n", *category, *month, format.Money(parsed, led.Settings().Currency))
	} else {
		fmt.Printf("budget for %s in %s cleared\n", *category, *month)
	}
	return nil
}

func runExport(cdc *codec.Codec, led *ledger.Ledger, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("o", "", "output file (default stdout)")
	fs.Parse(args)

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return cdc.EncodeJSON(cdc.Export(led), w)
}

func runExportXLSX(cdc *codec.Codec, led *ledger.Ledger, args []string) error {
	fs := flag.NewFlagSet("export-xlsx", flag.ExitOnError)
	out := fs.String("o", "thonex.xlsx", "output workbook path")
	fs.Parse(args)

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create workbook file: %w", err)
	}
	defer f.Close()
	if err := cdc.ExportXLSX(led, f); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", *out)
	return nil
}

func runImport(cdc *codec.Codec, led *ledger.Ledger, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	in := fs.String("i", "", "snapshot file to import")
	fs.Parse(args)

	if *in == "" {
		return fmt.Errorf("import requires -i <file>")
	}
	data, err := os.ReadFile(*in)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	return cdc.ImportJSON(led, data)
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func printBanner(banner *notify.Center) {
	n := banner.Current()
	if n == nil {
		return
	}
	prefix := "note"
	if n.Tone == notify.ToneWarning {
		prefix = "warning"
	}
	fmt.Fprintf(os.Stderr, "%s: %s\n", prefix, n.Message)
	banner.Dismiss()
}
