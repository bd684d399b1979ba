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

var cfsmfile string // Path to CFSMs output file

// cfsmsCmd represents the cfsms command
var cfsmsCmd = &cobra.Command{
	Use:   "cfsms",
	Short: "Write the dinner protocol as CFSMs",
	Long: `Write the dinner protocol as communicating finite state machines.

There is one machine for the monitor and one for each philosopher. The
output can be fed to a CFSM synthesis or deadlock checking tool.`,
	Run: func(cmd *cobra.Command, args []string) {
		writeCFSMs()
	},
}

func init() {
	cfsmsCmd.Flags().StringVar(&cfsmfile, "output", "", "output CFSMs file (default is stdout)")

	RootCmd.AddCommand(cfsmsCmd)
}

func writeCFSMs() {
	cfg, err := simConfig()
	if err != nil {
		log.Fatal(err)
	}
	l := openLog()
	defer l.Cleanup()

	cfsms, err := model.NewCFSMs(cfg.Philosophers)
	if err != nil {
		log.Fatal(err)
	}
	cfsms.PrintSummary(l.Writer)

	out, err := createOutput(cfsmfile)
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()
	if _, err := cfsms.WriteTo(out); err != nil {
		log.Fatal(err)
	}
}
