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
	"os"
	"os/signal"
	"syscall"

	"github.com/nickng/chopsticks/philosopher"
	"github.com/nickng/chopsticks/report"
	"github.com/nickng/chopsticks/webservice"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"server"},
	Short:   "Run a dinner with an HTTP status view",
	Long: `Run a dinner in the background and serve its state over HTTP.

Routes: /state, /dot, /cfsm, /migo and /events. The dinner stops on
SIGINT/SIGTERM or after its iterations; the server keeps serving the final
state until interrupted.`,
	Run: func(cmd *cobra.Command, args []string) {
		Serve()
	},
}

var (
	addr   string // Listen interface.
	port   string // Listen port.
	recent int    // Number of events kept for /events.
)

func init() {
	RootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&addr, "bind", "127.0.0.1", "Bind address. Defaults to 127.0.0.1.")
	serveCmd.Flags().StringVar(&port, "port", "6060", "Listen port. Defaults to 6060.")
	serveCmd.Flags().IntVar(&recent, "events", 256, "Number of recent events kept.")
}

// Serve starts the dinner and the HTTP server.
func Serve() {
	cfg, err := simConfig()
	if err != nil {
		log.Fatal(err)
	}
	l := openLog()
	defer l.Cleanup()

	recorder := report.NewRecorder(recent)
	table, err := philosopher.NewTable(cfg, report.NewMulti(recorder, report.NewText(l.Writer, false)), l.Logger(""))
	if err != nil {
		log.Fatal(err)
	}
	server := webservice.NewServer(addr, port, table, recorder)
	if _, err := server.Listener(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		if err := table.Run(ctx); err != nil {
			log.Println(err)
		}
	}()
	go func() {
		<-ctx.Done()
		server.Close()
	}()
	if err := server.Start(); err != nil {
		log.Fatal(err)
	}
}
