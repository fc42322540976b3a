package main

import (
	"os"

	"github.com/spf13/cobra"

	nbody "github.com/MultiCoreECS/SmolNBody"
)

var (
	flagCount   int
	flagTicks   int
	flagWorkers int
	flagDump    bool
)

var rootCmd = &cobra.Command{
	Use:           "nbody",
	Short:         "runs an n-body simulation",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts := []nbody.Option{}
		if cmd.Flags().Changed("ticks") {
			opts = append(opts, nbody.WithTicks(flagTicks))
		}
		if cmd.Flags().Changed("workers") {
			opts = append(opts, nbody.WithPoolSize(flagWorkers))
		}

		engine, err := nbody.NewEngine(flagCount, opts...)
		if err != nil {
			return err
		}
		if err := engine.Run(cmd.Context()); err != nil {
			return err
		}
		if flagDump {
			return engine.DumpState(os.Stdout)
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().IntVarP(&flagCount, "count", "n", 0, "the amount of bodies to be simulated")
	rootCmd.Flags().IntVar(&flagTicks, "ticks", 0, "number of ticks to run (default from NBODY_TICKS)")
	rootCmd.Flags().IntVar(&flagWorkers, "workers", 0, "worker pool size (default from NBODY_WORKERS)")
	rootCmd.Flags().BoolVar(&flagDump, "dump", false, "write a JSON snapshot of the final world state to stdout")
	_ = rootCmd.MarkFlagRequired("count")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
