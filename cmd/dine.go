// Copyright © 2016 Nicholas Ng <nickng@projectfate.org>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/nickng/chopsticks/philosopher"
	"github.com/nickng/chopsticks/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var verbose bool // Also report queueing and cancellation

// dineCmd represents the dine command
var dineCmd = &cobra.Command{
	Use:   "dine",
	Short: "Run a dinner",
	Long: `Run a dinner and print a summary of meals and talks.

The dinner ends after the given number of iterations, on --timeout, or on
SIGINT/SIGTERM. Stopping early lets waiting philosophers leave the queue
and is not an error.`,
	Run: func(cmd *cobra.Command, args []string) {
		dine(cmd.OutOrStdout())
	},
}

func init() {
	dineCmd.Flags().Duration("timeout", 0, "stop the dinner after this long (0 for no limit)")
	dineCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "also report waiting philosophers")
	if err := viper.BindPFlag("timeout", dineCmd.Flags().Lookup("timeout")); err != nil {
		log.Fatal(err)
	}

	RootCmd.AddCommand(dineCmd)
}

func dine(out io.Writer) {
	cfg, err := simConfig()
	if err != nil {
		log.Fatal(err)
	}
	l := openLog()
	defer l.Cleanup()

	table, err := philosopher.NewTable(cfg, report.NewText(l.Writer, verbose), l.Logger(""))
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if timeout := viper.GetDuration("timeout"); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := table.Run(ctx); err != nil {
		log.Fatal(err)
	}
	printSummary(out, table)
}

// printSummary writes meals and talks per philosopher.
func printSummary(out io.Writer, table *philosopher.Table) {
	fmt.Fprintf(out, "Dinner %s finished in %s\n", table.ID, table.Time)
	tw := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "PHILOSOPHER\tSTATE\tMEALS\tTALKS\tGAVE UP")
	total := 0
	for _, s := range table.Stats() {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\n", s.ID, s.State, s.Meals, s.Talks, s.Cancellations)
		total += s.Meals
	}
	tw.Flush()
	fmt.Fprintf(out, "Total of %d meals\n", total)
}
