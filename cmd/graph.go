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
	"log"
	"time"

	"github.com/nickng/chopsticks/model"
	"github.com/nickng/chopsticks/philosopher"
	"github.com/spf13/cobra"
)

var (
	dotfile string        // Path to output dot file
	waitfor bool          // Draw wait-for graph instead of seating plan
	after   time.Duration // Dinner time before taking the wait-for snapshot
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Draw the table as a Graphviz graph",
	Long: `Draw the table as a Graphviz graph.

By default the seating plan is drawn: philosophers and the chopsticks on
their left and right. With --waitfor a dinner runs for a while and the
philosophers waiting in the queue are drawn with the philosophers they wait
for.`,
	Run: func(cmd *cobra.Command, args []string) {
		drawGraph()
	},
}

func init() {
	graphCmd.Flags().StringVar(&dotfile, "output", "", "output dot file (default is stdout)")
	graphCmd.Flags().BoolVar(&waitfor, "waitfor", false, "draw the wait-for graph of a running dinner")
	graphCmd.Flags().DurationVar(&after, "after", 200*time.Millisecond, "how long the dinner runs before --waitfor snapshot")

	RootCmd.AddCommand(graphCmd)
}

func drawGraph() {
	cfg, err := simConfig()
	if err != nil {
		log.Fatal(err)
	}
	var dot *model.Dot
	if waitfor {
		dot, err = waitForGraph(cfg, after)
	} else {
		dot, err = model.NewTableDot(cfg.Philosophers)
	}
	if err != nil {
		log.Fatal(err)
	}
	out, err := createOutput(dotfile)
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()
	if _, err := dot.WriteTo(out); err != nil {
		log.Fatal(err)
	}
}

// waitForGraph runs a dinner for d and draws its wait-for graph.
func waitForGraph(cfg philosopher.Config, d time.Duration) (*model.Dot, error) {
	table, err := philosopher.NewTable(cfg, nil, nil)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- table.Run(ctx) }()

	var runErr error
	finished := false
	select {
	case <-time.After(d):
	case runErr = <-done:
		finished = true
	}
	dot, err := model.NewWaitForDot(table.Monitor.Snapshot())
	cancel()
	if !finished {
		runErr = <-done
	}
	if runErr != nil {
		return nil, runErr
	}
	return dot, err
}
