// =================================================================================
//
//			mx-alias - https://www.foxhollow.cc/projects/mx-alias/
//
//		 mx-alias reads the card routing of a digital mixing console and
//	  names the matching audio interface ports on the recording host
//
//		 Copyright (c) 2024 Steve Cross <flip@foxhollow.cc>
//
//			Licensed under the Apache License, Version 2.0 (the "License");
//			you may not use this file except in compliance with the License.
//			You may obtain a copy of the License at
//
//			     http://www.apache.org/licenses/LICENSE-2.0
//
//			Unless required by applicable law or agreed to in writing, software
//			distributed under the License is distributed on an "AS IS" BASIS,
//			WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//			See the License for the specific language governing permissions and
//			limitations under the License.
//
// =================================================================================
package app

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"mx-alias/model"
	"mx-alias/shared"
	"mx-alias/util"
)

// NewRootCommand builds the mx-alias command tree around a fresh set of
// arguments.
func NewRootCommand() *cobra.Command {
	args := &model.CommandLineArgs{}

	rootCmd := &cobra.Command{
		Use:   "mx-alias [reaper-config]",
		Short: "Name recording inputs after the console routing",
		Long: "Reads which sources an X32 or XAir console sends to its recording card\n" +
			"and names the matching inputs of the recording host after them.\n\n" +
			"Given a REAPER config, the JACK input aliases in it are rewritten.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,

		RunE: func(cmd *cobra.Command, positional []string) error {
			if len(positional) == 1 {
				args.ReaperConfig = positional[0]
				args.Target = "reaper"
			}

			return run(cmd, args, modeScan)
		},
	}

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Print the card routing without renaming anything",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, positional []string) error {
			args.Target = "none"
			return run(cmd, args, modeScan)
		},
	}

	jackCmd := &cobra.Command{
		Use:   "jack",
		Short: "Alias the physical JACK capture ports after the card routing",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, positional []string) error {
			args.Target = "jack"
			return run(cmd, args, modeScan)
		},
	}

	discoverCmd := &cobra.Command{
		Use:   "discover",
		Short: "Find a console on the local network and print it",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, positional []string) error {
			return run(cmd, args, modeDiscover)
		},
	}

	rootCmd.PersistentFlags().AddFlagSet(commonFlags(args))
	rootCmd.Flags().StringVarP(&args.Target, "target", "t", "", "Where to apply the labels: none, reaper or jack")

	rootCmd.AddCommand(scanCmd, jackCmd, discoverCmd)

	return rootCmd
}

func commonFlags(args *model.CommandLineArgs) *pflag.FlagSet {
	flags := pflag.NewFlagSet("common", pflag.ContinueOnError)

	flags.StringVarP(&args.ConfigFile, "config", "c", "", "Name or path of the config file (default "+util.DefaultConfigFile+")")
	flags.StringVarP(&args.MixerAddress, "address", "a", "", "<host>[:<port>] of the console, skips discovery")
	flags.StringVar(&args.Family, "family", "", "Console family: auto, x32 or xair")
	flags.BoolVarP(&args.Verbose, "verbose", "v", false, "Log debug output")
	flags.StringVarP(&args.OutputType, "output", "o", "", "Output format: text, json or tui")
	flags.BoolVar(&args.SkipSampleRate, "skip-sample-rate", false, "Leave the console clock rate alone")

	// simulation
	flags.BoolVar(&args.Simulate, "simulate", false, "Scan an in-memory console instead of the network")
	flags.StringVar(&args.Fixture, "fixture", "", "YAML file of OSC address to value for the simulated console")

	return flags
}

func run(cmd *cobra.Command, args *model.CommandLineArgs, mode runMode) error {
	config, err := util.ReadConfig(args)
	if err != nil {
		return err
	}

	shared.ConfigureLogger(slog.Level(config.LogLevel), config.LogFormat)

	return newEngine(config, cmd.OutOrStdout()).run(cmd.Context(), mode)
}

// Execute runs the command line and exits non-zero on failure. This is
// called by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
