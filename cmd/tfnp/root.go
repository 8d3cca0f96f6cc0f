package main

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/born-ml/tfnp/tf"
)

// version is set at build time.
var version = "v0.1.0-dev"

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "tfnp",
		Short: "tfnp - TensorFlow-shaped functions over a pure Go array library",
		Long: `tfnp inspects the mirrored TensorFlow namespace.

Commands:
  ops      - List bound functions, optionally under a prefix
  config   - Print the effective configuration
  version  - Print the version

Example:
  tfnp ops linalg
  TFNP_PARALLEL_ENABLED=true tfnp ops --types`,
		Version:      version,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./tfnp.yaml)")

	root.AddCommand(newOpsCmd(&configPath))
	root.AddCommand(newConfigCmd(&configPath))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tfnp %s\n", version)
		},
	})
	return root
}

func newOpsCmd(configPath *string) *cobra.Command {
	var types bool

	cmd := &cobra.Command{
		Use:   "ops [prefix]",
		Short: "List bound functions in sorted dotted-path order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			logger, err := cfg.logger()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ns := tf.New(cfg.tf(logger))
			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}

			var rows [][]string
			ns.Walk(func(path string, fn any) {
				if !strings.HasPrefix(path, prefix) {
					return
				}
				if types {
					rows = append(rows, []string{path, reflect.TypeOf(fn).String()})
					return
				}
				rows = append(rows, []string{path})
			})
			logger.Info("listed ops", zap.String("prefix", prefix), zap.Int("count", len(rows)))

			if !types {
				for _, r := range rows {
					fmt.Fprintln(cmd.OutOrStdout(), r[0])
				}
				return nil
			}
			writeTable(cmd, []string{"PATH", "TYPE"}, rows)
			return nil
		},
	}
	cmd.Flags().BoolVar(&types, "types", false, "print the Go type of each binding")
	return cmd
}

func newConfigCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			writeTable(cmd, []string{"KEY", "VALUE"}, [][]string{
				{"log.level", cfg.Log.Level},
				{"log.format", cfg.Log.Format},
				{"parallel.enabled", strconv.FormatBool(cfg.Parallel.Enabled)},
				{"parallel.workers", strconv.Itoa(cfg.Parallel.Workers)},
				{"parallel.min_chunk", strconv.Itoa(cfg.Parallel.MinChunk)},
			})
			return nil
		},
	}
}

func writeTable(cmd *cobra.Command, header []string, rows [][]string) {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(rows)
	table.Render()
}
