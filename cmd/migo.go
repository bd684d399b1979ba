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
	"log"

	"github.com/nickng/chopsticks/model"
	"github.com/spf13/cobra"
)

var (
	outfile    string // Path to output file
	noSimplify bool   // Keep the program as generated
)

// migoCmd represents the migo command
var migoCmd = &cobra.Command{
	Use:   "migo",
	Short: "Write the dinner as MiGo types",
	Long: `Write the dinner as a MiGo program.

main.main spawns one recursive process per philosopher and runs the monitor
process, which serves chopstick and talk requests over channels.`,
	Run: func(cmd *cobra.Command, args []string) {
		writeMigo()
	},
}

func init() {
	migoCmd.Flags().StringVar(&outfile, "output", "", "output migo file (default is stdout)")
	migoCmd.Flags().BoolVar(&noSimplify, "no-simplify", false, "do not simplify the program")

	RootCmd.AddCommand(migoCmd)
}

func writeMigo() {
	cfg, err := simConfig()
	if err != nil {
		log.Fatal(err)
	}
	prog, err := model.NewMigo(cfg.Philosophers)
	if err != nil {
		log.Fatal(err)
	}
	if !noSimplify {
		prog.Simplify()
	}
	out, err := createOutput(outfile)
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()
	if _, err := prog.WriteTo(out); err != nil {
		log.Fatal(err)
	}
}
