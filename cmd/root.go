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
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/nickng/chopsticks/logwriter"
	"github.com/nickng/chopsticks/philosopher"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string // Path to config file
	logFile   string // Path to log file
	noLogging bool   // Turn off logging
	noColour  bool   // Turn of colour output
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "chopsticks",
	Short: "Dining philosophers with a fair monitor",
	Long: `chopsticks simulates the dining philosophers around a monitor which
hands out chopsticks in arrival order and lets one philosopher talk at a time.

This is the toplevel command.
Use "chopsticks dine" to run a dinner.`,
}

// Execute adds all child commands to the root command sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.chopsticks.yaml)")
	RootCmd.PersistentFlags().StringVar(&logFile, "log", "", "path to log file (default is stdout)")
	RootCmd.PersistentFlags().BoolVar(&noLogging, "no-logging", false, "disable logging")
	RootCmd.PersistentFlags().BoolVar(&noColour, "no-colour", false, "disable colour output")

	defaults := philosopher.DefaultConfig()
	RootCmd.PersistentFlags().IntP("philosophers", "n", defaults.Philosophers, "number of philosophers (and chopsticks)")
	RootCmd.PersistentFlags().Int("iterations", defaults.Iterations, "meals per philosopher, 0 to dine until stopped")
	RootCmd.PersistentFlags().Duration("think", defaults.Think, "longest time spent thinking")
	RootCmd.PersistentFlags().Duration("eat", defaults.Eat, "longest time spent eating")
	RootCmd.PersistentFlags().Duration("talk", defaults.Talk, "longest time spent talking")
	RootCmd.PersistentFlags().Float64("talk-chance", defaults.TalkChance, "probability of talking after a meal")
	RootCmd.PersistentFlags().Int64("seed", defaults.Seed, "random seed")
	for _, key := range []string{"philosophers", "iterations", "think", "eat", "talk", "talk-chance", "seed"} {
		if err := viper.BindPFlag(key, RootCmd.PersistentFlags().Lookup(key)); err != nil {
			log.Fatal(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" { // enable ability to specify config file via flag
		viper.SetConfigFile(cfgFile)
	}

	viper.SetConfigName(".chopsticks") // name of config file (without extension)
	viper.AddConfigPath("$HOME")       // adding home directory as first search path
	viper.SetEnvPrefix("chopsticks")   // CHOPSTICKS_PHILOSOPHERS etc.
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

// simConfig collects the simulation settings from flags, environment and
// config file.
func simConfig() (philosopher.Config, error) {
	cfg := philosopher.Config{
		Philosophers: viper.GetInt("philosophers"),
		Iterations:   viper.GetInt("iterations"),
		Think:        viper.GetDuration("think"),
		Eat:          viper.GetDuration("eat"),
		Talk:         viper.GetDuration("talk"),
		TalkChance:   viper.GetFloat64("talk-chance"),
		Seed:         viper.GetInt64("seed"),
	}
	return cfg, cfg.Validate()
}

// openLog creates the log writer selected by the persistent flags.
func openLog() *logwriter.Writer {
	l := logwriter.NewFile(logFile, !noLogging, !noColour)
	if err := l.Create(); err != nil {
		log.Fatal(err)
	}
	return l
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// createOutput opens path for writing, or stdout if path is empty.
func createOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
