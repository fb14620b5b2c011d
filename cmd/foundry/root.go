package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"geofoundry/internal/config"
	"geofoundry/internal/foundry"
)

var (
	configPath string
	foldFlag   string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:          "foundry",
	Short:        "Inspect a CSG geometry foundry directory",
	SilenceUsage: true,
}

var describeCmd = &cobra.Command{
	Use:   "describe [stem...]",
	Short: "Print stem, shape and source path of loaded arrays",
	RunE:  runDescribe,
}

var boundariesCmd = &cobra.Command{
	Use:   "boundaries",
	Short: "Count node records per boundary, with boundary names",
	Args:  cobra.NoArgs,
	RunE:  runBoundaries,
}

var nameCmd = &cobra.Command{
	Use:   "name <mesh|boundary|ordinal> <index>",
	Short: "Resolve a dictionary index to its name",
	Args:  cobra.ExactArgs(2),
	RunE:  runName,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("GEOFOUNDRY_CONFIG"), "path to YAML config")
	rootCmd.PersistentFlags().StringVar(&foldFlag, "fold", "", "foundry directory (overrides config and GEOFOUNDRY_FOLD)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log each loaded array")
	rootCmd.AddCommand(describeCmd, boundariesCmd, nameCmd)
}

func loadFoundry(cmd *cobra.Command) (*foundry.Foundry, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	fold := cfg.Fold
	if foldFlag != "" {
		fold = foldFlag
	}
	logCfg := cfg.Logging
	if verbose {
		logCfg.Level = zerolog.DebugLevel.String()
	}
	log := config.NewLogger(logCfg, cmd.ErrOrStderr())
	return foundry.Load(fold, foundry.WithLogger(log))
}

func runDescribe(cmd *cobra.Command, args []string) error {
	f, err := loadFoundry(cmd)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), f.DescribeAll())
		return nil
	}
	for _, stem := range args {
		line, err := f.Describe(stem)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}

func runBoundaries(cmd *cobra.Command, args []string) error {
	f, err := loadFoundry(cmd)
	if err != nil {
		return err
	}
	rows, err := f.BoundaryUsageHistogram()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), foundry.FormatBoundaryUsage(rows))
	return nil
}

func runName(cmd *cobra.Command, args []string) error {
	f, err := loadFoundry(cmd)
	if err != nil {
		return err
	}
	d, ok := f.Dict(args[0])
	if !ok {
		return fmt.Errorf("unknown dictionary %q: want mesh, boundary or ordinal", args[0])
	}
	idx, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("index %q: %w", args[1], err)
	}
	name, err := d.Lookup(idx)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), name)
	return nil
}
