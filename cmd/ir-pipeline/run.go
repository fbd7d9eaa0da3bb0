package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ZenVoich/motoko/internal/driver"
	"github.com/ZenVoich/motoko/internal/irfixture"
	"github.com/ZenVoich/motoko/internal/irfmt"
	"github.com/ZenVoich/motoko/internal/irtypes"
	"github.com/ZenVoich/motoko/internal/source"
	"github.com/ZenVoich/motoko/internal/trace"
)

var (
	runConfigPath string
	runDump       bool
)

func init() {
	runCmd.Flags().StringVar(&runConfigPath, "config", "", "path to a pipeline.toml manifest (defaults built in if omitted)")
	runCmd.Flags().BoolVar(&runDump, "dump", false, "print the resulting program after the pipeline runs")
}

var runCmd = &cobra.Command{
	Use:   "run <fixture.mp>",
	Short: "Load a canned IR program and drive it through the pipeline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := driver.LoadConfig(runConfigPath)
		if err != nil {
			return err
		}
		if v, _ := cmd.Flags().GetString("trace-level"); cmd.Flags().Changed("trace-level") {
			cfg.Trace.Level = v
		}
		if v, _ := cmd.Flags().GetString("trace-mode"); cmd.Flags().Changed("trace-mode") {
			cfg.Trace.Mode = v
		}
		if v, _ := cmd.Flags().GetString("trace-output"); cmd.Flags().Changed("trace-output") {
			cfg.Trace.OutputPath = v
		}
		if v, _ := cmd.Flags().GetInt("trace-ring-size"); cmd.Flags().Changed("trace-ring-size") && v > 0 {
			cfg.Trace.RingSize = v
		}

		prog, err := irfixture.Load(args[0])
		if err != nil {
			return err
		}

		level, err := trace.ParseLevel(cfg.Trace.Level)
		if err != nil {
			return err
		}
		mode, err := trace.ParseMode(cfg.Trace.Mode)
		if err != nil {
			return err
		}
		tr, err := trace.New(trace.Config{
			Level:      level,
			Mode:       mode,
			OutputPath: cfg.Trace.OutputPath,
			RingSize:   cfg.Trace.RingSize,
		})
		if err != nil {
			return err
		}
		defer tr.Close()

		// A fixture carries no interner of its own: canned programs are
		// built against a fresh builtins-only interner, so running one
		// back through the pipeline assumes it referenced only builtin
		// types.
		types := irtypes.NewInterner(source.NewInterner())

		unit := driver.Unit{Name: args[0], Types: types, Program: prog}
		result, err := driver.Run(context.Background(), tr, cfg, unit)
		if err != nil {
			return err
		}

		if runDump {
			p := irfmt.NewAuto(types, types.Strings, cmd.OutOrStdout())
			p.FprintProgram(cmd.OutOrStdout(), result)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "pipeline completed")
		return nil
	},
}
