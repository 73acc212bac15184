package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/IshaanNene/ReviewScope/internal/dashboard"
	"github.com/IshaanNene/ReviewScope/internal/i18n"
	"github.com/IshaanNene/ReviewScope/internal/repl"
	"github.com/IshaanNene/ReviewScope/internal/report"
)

// shellCmd creates the "shell" subcommand.
func shellCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			sink, err := a.sink()
			if err != nil {
				return err
			}

			view := dashboard.NewTerminalView(os.Stdout, a.cfg.UI.Color)
			ctrl := a.controller(view, sink)
			defer ctrl.Close()

			repl.New(a.cfg, ctrl, view, os.Stdin, os.Stdout, a.logger).Start(cmd.Context())
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "directory for exported CSV files")
	return cmd
}

// infoCmd creates the "info" subcommand.
func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <url>",
		Short: "Show product info",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlows(cmd.Context(), args[0], false, false)
		},
	}
}

// analyzeCmd creates the "analyze" subcommand.
func analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <url>",
		Short: "Show product info and analyze its reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlows(cmd.Context(), args[0], true, false)
		},
	}
}

// exportCmd creates the "export" subcommand.
func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <url>",
		Short: "Analyze a product's reviews and export them as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlows(cmd.Context(), args[0], true, true)
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "directory for exported CSV files")
	return cmd
}

// runFlows runs the flows in order against a terminal view, stopping at the
// first failure.
func runFlows(ctx context.Context, input string, analyze, export bool) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	sink, err := a.sink()
	if err != nil {
		return err
	}

	view := dashboard.NewTerminalView(os.Stdout, a.cfg.UI.Color)
	ctrl := a.controller(view, sink)
	defer ctrl.Close()

	if err := ctrl.GetProductInfo(ctx, input); err != nil {
		return err
	}
	if !analyze {
		return nil
	}
	if err := ctrl.AnalyzeReviews(ctx); err != nil {
		return err
	}
	if !export {
		return nil
	}

	res, err := ctrl.ExportCSV(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("💾 %s (%d bytes)\n", a.cat.T(i18n.MsgExported, res.Location), res.Size)
	return nil
}

// reportCmd creates the "report" subcommand.
func reportCmd() *cobra.Command {
	var reportPath string

	cmd := &cobra.Command{
		Use:   "report <url>",
		Short: "Analyze a product and write a Markdown report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			// Progress goes to stderr so stdout carries only the report.
			view := dashboard.NewTerminalView(os.Stderr, a.cfg.UI.Color)
			ctrl := a.controller(view, nil)
			defer ctrl.Close()

			ctx := cmd.Context()
			if err := ctrl.GetProductInfo(ctx, args[0]); err != nil {
				return err
			}
			if err := ctrl.AnalyzeReviews(ctx); err != nil {
				return err
			}

			out := os.Stdout
			if reportPath != "" {
				f, err := os.Create(reportPath)
				if err != nil {
					return fmt.Errorf("create report: %w", err)
				}
				defer f.Close()
				out = f
			}

			n, err := report.NewMarkdownWriter(out, a.cat, a.cfg.UI.ProductURL).Write(ctrl.Session())
			if err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			if reportPath != "" {
				a.logger.Info("report written", "path", reportPath, "bytes", n)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&reportPath, "output", "o", "", "report file (default: stdout)")
	return cmd
}
