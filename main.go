package main

import (
	"fmt"
	"os"

	"fjacquet/fintrack/cmd/backup"
	"fjacquet/fintrack/cmd/bill"
	"fjacquet/fintrack/cmd/budget"
	configcmd "fjacquet/fintrack/cmd/config"
	"fjacquet/fintrack/cmd/export"
	"fjacquet/fintrack/cmd/goal"
	importcmd "fjacquet/fintrack/cmd/import"
	"fjacquet/fintrack/cmd/report"
	"fjacquet/fintrack/cmd/root"
	"fjacquet/fintrack/cmd/search"
	"fjacquet/fintrack/cmd/tx"
	"fjacquet/fintrack/cmd/user"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(user.Cmd)
	root.Cmd.AddCommand(tx.Cmd)
	root.Cmd.AddCommand(search.Cmd)
	root.Cmd.AddCommand(report.Cmd)
	root.Cmd.AddCommand(budget.Cmd)
	root.Cmd.AddCommand(goal.Cmd)
	root.Cmd.AddCommand(bill.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(importcmd.Cmd)
	root.Cmd.AddCommand(backup.Cmd)
	root.Cmd.AddCommand(configcmd.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
