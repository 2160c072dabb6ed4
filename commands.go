package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/parisxmas/sitesurvey/internal/chart"
	"github.com/parisxmas/sitesurvey/internal/repository"
	"github.com/parisxmas/sitesurvey/internal/service"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the results spreadsheet if it does not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := repository.NewSheetRepo(cfg.Store.Path, logger)
		if err := store.EnsureExists(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), store.Path())
		return nil
	},
}

var (
	summaryField string
	summaryPNG   string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print response counts per value of an evaluation field",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := repository.NewSheetRepo(cfg.Store.Path, logger)
		s, err := service.NewSummaryService(store).Summarize(cmd.Context(), summaryField)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if s.Empty {
			fmt.Fprintln(out, "No data yet.")
			return nil
		}

		labels := chart.LabelsFor(s.Column)
		fmt.Fprintln(out, labels.Title)
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "%s\t%s\n", labels.XLabel, labels.YLabel)
		for _, c := range s.Counts {
			fmt.Fprintf(tw, "%s\t%d\n", c.Value, c.Count)
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		if summaryPNG == "" {
			return nil
		}
		f, err := os.Create(summaryPNG)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := chart.Render(s, f); err != nil {
			return err
		}
		logger.Info("chart written", zap.String("path", summaryPNG))
		return nil
	},
}

func init() {
	summaryCmd.Flags().StringVarP(&summaryField, "field", "f", "", "field to group by (default: Material quality)")
	summaryCmd.Flags().StringVar(&summaryPNG, "png", "", "also write the bar chart to this PNG file")
}
