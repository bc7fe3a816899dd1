package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/llm-d-incubation/kvcache-capacity-planner/internal/logger"
	"github.com/llm-d-incubation/kvcache-capacity-planner/pkg/config"
	"github.com/llm-d-incubation/kvcache-capacity-planner/pkg/planner"
)

var scenarioPath string

func main() {
	err := newRootCmd().Execute()
	logger.SyncLogger()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kvcache-planner",
		Short: "KV-cache capacity planning calculator",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			_, err := logger.InitLogger()
			return err
		},
	}
	rootCmd.PersistentFlags().StringVarP(&scenarioPath, "scenario", "s", "scenario.yaml",
		"path to YAML scenario file")

	rootCmd.AddCommand(newAnalyzeCmd(), newOptimizeCmd(), newSweepCmd())
	return rootCmd
}

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Estimate hit rate and memory metrics for a scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := config.ReadScenario(scenarioPath)
			if err != nil {
				return err
			}
			logger.Log.Infow("analyzing scenario", "scenario", scenario.String())

			metrics, err := planner.DetailedMetrics(&scenario.Model, &scenario.System,
				&scenario.Traffic, scenario.Policy)
			if err != nil {
				return err
			}
			printMapping(planner.MetricsFields, metrics.Mapping())
			return nil
		},
	}
}

func newOptimizeCmd() *cobra.Command {
	var target float64
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Recommend memory for a target hit rate",
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := config.ReadScenario(scenarioPath)
			if err != nil {
				return err
			}
			logger.Log.Infow("optimizing memory allocation", "target", target)

			recommendation, err := planner.OptimizeMemoryAllocation(&scenario.Model,
				&scenario.System, &scenario.Traffic, scenario.Policy, target)
			if err != nil {
				return err
			}
			printMapping(planner.RecommendationFields, recommendation.Mapping())
			return nil
		},
	}
	cmd.Flags().Float64VarP(&target, "target", "t", 0, "target hit rate (0 uses the policy default)")
	return cmd
}

func newSweepCmd() *cobra.Command {
	var minGB, maxGB float64
	var points int
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Evaluate hit rate across a range of memory sizes",
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := config.ReadScenario(scenarioPath)
			if err != nil {
				return err
			}
			sweep, err := planner.SweepAvailableMemory(&scenario.Model, &scenario.Traffic,
				scenario.Policy, minGB, maxGB, points)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"MEMORY (GB)", "HIT RATE", "UTILIZATION", "MAX TOKENS", "HITS/SEC"})
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetHeaderLine(false)
			table.SetBorder(false)
			for _, point := range sweep {
				m := point.Metrics
				table.Append([]string{
					fmt.Sprintf("%.1f", point.AvailableMemoryGB),
					fmt.Sprintf("%.3f", m.HitRate),
					fmt.Sprintf("%.3f", m.CacheUtilization),
					strconv.FormatInt(m.MaxCachedTokens, 10),
					fmt.Sprintf("%.1f", m.CacheHitsPerSecond),
				})
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().Float64Var(&minGB, "min-gb", 16, "lowest memory size (GiB)")
	cmd.Flags().Float64Var(&maxGB, "max-gb", 128, "highest memory size (GiB)")
	cmd.Flags().IntVar(&points, "points", 8, "number of grid points")
	return cmd
}

func printMapping(fields []string, mapping map[string]float64) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"FIELD", "VALUE"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	for _, name := range fields {
		table.Append([]string{name, strconv.FormatFloat(mapping[name], 'f', -1, 64)})
	}
	table.Render()
}
