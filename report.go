package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/AnTengye/saasledger/model"
	"github.com/AnTengye/saasledger/pkg/ledger"
)

type reportOptions struct {
	input string
	sort  string
	now   string
}

func newReportCmd() *cobra.Command {
	opts := reportOptions{}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the ledger for a JSON file of contract records",
		Example: "  ledger report --input records.json --sort total-value\n" +
			"  cat records.json | ledger report --input - --now 2026-01-02",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.InOrStdin(), cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "records file, or - for stdin")
	cmd.Flags().StringVarP(&opts.sort, "sort", "s", string(ledger.DefaultPolicy),
		"sort policy: "+joinPolicies())
	cmd.Flags().StringVar(&opts.now, "now", "", "evaluate countdowns as of this date (yyyy-mm-dd or mm/dd/yyyy)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runReport(stdin io.Reader, out io.Writer, opts reportOptions) error {
	var (
		raw []byte
		err error
	)
	if opts.input == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(opts.input)
	}
	if err != nil {
		return fmt.Errorf("read records: %w", err)
	}

	records, err := model.DecodeRecords(raw)
	if err != nil {
		return fmt.Errorf("decode records: %w", err)
	}

	policy, ok := ledger.ParsePolicy(opts.sort)
	if !ok {
		return fmt.Errorf("unknown sort %q, want one of %s", opts.sort, joinPolicies())
	}

	now := time.Now()
	if opts.now != "" {
		day, ok := ledger.ParseDate(opts.now)
		if !ok {
			return fmt.Errorf("invalid --now %q", opts.now)
		}
		now = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.Local)
	}

	return writeReport(out, ledger.Build(records, policy, now))
}

func writeReport(out io.Writer, view ledger.Ledger) error {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Application", "Category", "Services", "Value", "Renewal", "Review", "Countdown"})
	table.SetAutoWrapText(false)
	for _, e := range view.Entries {
		countdown := "-"
		if e.Countdown != nil {
			countdown = e.Countdown.Text() + " " + colorizeUrgency(e.Countdown.Urgency)
		}
		table.Append([]string{
			e.AppName,
			orDash(e.Category),
			strconv.Itoa(len(e.Services)),
			orDash(e.OverallTotalValue),
			orDash(e.RenewalDate),
			orDash(e.ReviewDate),
			countdown,
		})
	}
	table.Render()

	_, err := fmt.Fprintf(out, "\n%d applications, total contract value %s (sort: %s)\n",
		len(view.Entries), view.Total, view.Policy)
	return err
}

func colorizeUrgency(u ledger.Urgency) string {
	label := "(" + string(u) + ")"
	switch u {
	case ledger.UrgencyCritical:
		return color.RedString(label)
	case ledger.UrgencyHigh:
		return color.YellowString(label)
	default:
		return color.GreenString(label)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func joinPolicies() string {
	names := make([]string, 0, len(ledger.Policies()))
	for _, p := range ledger.Policies() {
		names = append(names, string(p))
	}
	return strings.Join(names, ", ")
}
