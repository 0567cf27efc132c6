package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/brtiers/internal/report"
	"github.com/pable/brtiers/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Open a persistent session against the snapshot. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func runShell(_ *cobra.Command, _ []string) error {
	db, err := openSnapshot()
	if err != nil {
		return err
	}
	defer db.Close()

	cGreeting.Println("brtiers shell")
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("brtiers")
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		cmd, args := tokens[0], tokens[1:]

		switch cmd {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "list":
			shellList(db)
		case "show":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: show <run-id-prefix> [--view <view>] [--country <name>] [--vehicles]")
				continue
			}
			shellShow(db, args)
		case "sql":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: sql <query>")
				continue
			}
			shellSQL(db, strings.Join(args, " "))
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", cmd)
		}
	}
	return nil
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"list", "list all recorded runs"},
		{"show <run-id-prefix>", "show a run in its default view"},
		{"show <run-id-prefix> --view <view>", "full-downtier, downtier, uptier, full-uptier, weighted, count"},
		{"show <run-id-prefix> --country <name>", "only one country's column"},
		{"show <run-id-prefix> --vehicles", "also list vehicle win rates (weighted runs)"},
		{"sql <query>", "raw query against the snapshot"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-40s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func shellList(db *storage.DB) {
	runs, err := db.ListRuns()
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(runs) == 0 {
		cMuted.Println("No runs recorded yet.")
		return
	}
	report.PrintRunList(os.Stdout, runs)
}

func shellShow(db *storage.DB, args []string) {
	prefix := args[0]
	var (
		view, country string
		vehicles      bool
	)
	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "--view":
			if i+1 < len(args) {
				view = args[i+1]
				i++
			}
		case "--country":
			if i+1 < len(args) {
				country = args[i+1]
				i++
			}
		case "--vehicles":
			vehicles = true
		default:
			cWarn.Fprintf(os.Stderr, "ignoring %q\n", args[i])
		}
	}
	if err := showRun(os.Stdout, db, prefix, view, country, vehicles); err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
	}
}

func shellSQL(db *storage.DB, query string) {
	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	report.PrintQueryResult(os.Stdout, cols, rows)
}
