// kakeibo is a terminal client for a household ledger service. It keeps a
// local mirror of the server's transactions, derives per-category
// income/expense rollups, and registers, edits, or deletes entries.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"kakeibo/internal/api"
	"kakeibo/internal/config"
	"kakeibo/internal/core"
	"kakeibo/internal/ledger"
	"kakeibo/internal/log"
	"kakeibo/internal/session"
	"kakeibo/internal/store"
)

func usage() {
	fmt.Fprintf(os.Stderr, `usage: kakeibo <command> [flags]

commands:
  summary     category rollup and income/expense totals (default)
  list        all transactions, newest first
  categories  available categories
  register    add a transaction  (-date -type -category -amount -memo)
  edit        edit a transaction (-id plus any field flag)
  delete      delete a transaction (-id, -yes to skip confirmation)
`)
}

type app struct {
	store   *store.Store
	session *session.Session
	service *ledger.Service
}

func main() {
	_ = godotenv.Load()

	logger := log.New(slog.LevelWarn, "kakeibo")
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	base := api.ResolveBase(cfg.OriginURL(), cfg.APIURL)
	client := api.NewClient(base, cfg.HTTPTimeout, logger)
	st := store.New(client, logger)
	sess := session.New(client, st, logger)
	a := &app{
		store:   st,
		session: sess,
		service: ledger.NewService(client, st, sess, logger),
	}

	command := "summary"
	args := os.Args[1:]
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		command, args = args[0], args[1:]
	}

	ctx := context.Background()
	var err error
	switch command {
	case "summary":
		err = a.runSummary(ctx)
	case "list":
		err = a.runList(ctx)
	case "categories":
		err = a.runCategories(ctx)
	case "register":
		err = a.runRegister(ctx, args)
	case "edit":
		err = a.runEdit(ctx, args)
	case "delete":
		err = a.runDelete(ctx, args)
	case "help", "-h", "--help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", command)
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func (a *app) runSummary(ctx context.Context) error {
	if err := a.store.Refresh(ctx); err != nil {
		return err
	}
	renderSummary(os.Stdout, core.Summarize(a.store.Transactions()))
	return nil
}

func (a *app) runList(ctx context.Context) error {
	if err := a.store.Refresh(ctx); err != nil {
		return err
	}
	renderTransactions(os.Stdout, a.store.Transactions())
	return nil
}

func (a *app) runCategories(ctx context.Context) error {
	if err := a.store.Refresh(ctx); err != nil {
		return err
	}
	for _, c := range a.store.Categories() {
		fmt.Printf("%3d  %s\n", c.ID, c.Name)
	}
	return nil
}

func (a *app) runRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	date := fs.String("date", time.Now().Format(core.DateLayout), "calendar date (YYYY-MM-DD)")
	direction := fs.String("type", string(core.Expense), "income or expense")
	category := fs.Int("category", 0, "category id (see the categories command)")
	amount := fs.Int64("amount", 0, "amount in yen, positive")
	memo := fs.String("memo", "", "free-text memo")
	if err := fs.Parse(args); err != nil {
		return err
	}

	created, err := a.service.Register(ctx, core.Draft{
		Date:       *date,
		Type:       core.Direction(*direction),
		CategoryID: *category,
		Amount:     *amount,
		Memo:       *memo,
	})
	if err != nil {
		return err
	}
	fmt.Printf("registered #%d: %s %s %s\n",
		created.ID, created.Date.Format(core.DateLayout), created.Category.Name, core.FormatYen(created.Amount))
	return nil
}

func (a *app) runEdit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	id := fs.Int("id", 0, "transaction id")
	date := fs.String("date", "", "new calendar date (YYYY-MM-DD)")
	direction := fs.String("type", "", "income or expense")
	category := fs.Int("category", 0, "new category id")
	amount := fs.Int64("amount", 0, "new amount in yen, positive")
	memo := fs.String("memo", "", "new memo")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		return fmt.Errorf("edit: -id is required")
	}

	if err := a.store.Refresh(ctx); err != nil {
		return err
	}
	if err := a.service.StartEdit(*id); err != nil {
		return err
	}

	memoSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "memo" {
			memoSet = true
		}
	})
	a.session.UpdateDraft(func(d *core.Draft) {
		if *date != "" {
			d.Date = *date
		}
		if *direction != "" {
			d.Type = core.Direction(*direction)
		}
		if *category != 0 {
			d.CategoryID = *category
		}
		if *amount != 0 {
			d.Amount = *amount
		}
		if memoSet {
			d.Memo = *memo
		}
	})

	if err := a.session.Submit(ctx); err != nil {
		// The draft survives a failed submission; in a one-shot CLI run
		// there is nothing to resume, so just report and exit.
		return fmt.Errorf("update #%d: %s", *id, a.session.Err())
	}
	fmt.Printf("updated #%d\n", *id)
	return nil
}

func (a *app) runDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.Int("id", 0, "transaction id")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		return fmt.Errorf("delete: -id is required")
	}

	var confirm ledger.Confirmer = ledger.ConfirmerFunc(promptYesNo)
	if *yes {
		confirm = ledger.ConfirmerFunc(func(string) bool { return true })
	}
	if err := a.service.Delete(ctx, *id, confirm); err != nil {
		return err
	}
	return nil
}

func promptYesNo(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
