package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/IshaanNene/ReviewScope/internal/dashboard"
	"github.com/IshaanNene/ReviewScope/internal/snapshot"
	"github.com/IshaanNene/ReviewScope/internal/storage"
)

// serveCmd creates the "serve" subcommand.
func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			if port > 0 {
				a.cfg.Dashboard.Port = port
			}

			// Downloads are served from memory; configured sinks keep a copy and
			// cannot fail the download.
			downloads := storage.NewMemorySink()
			archive, err := a.sinks()
			if err != nil {
				return err
			}
			sink := storage.NewArchivingSink(downloads, archive, a.logger)

			view, err := dashboard.NewHTMLView()
			if err != nil {
				return err
			}
			ctrl := a.controller(view, sink)
			defer ctrl.Close()

			srv := dashboard.NewServer(a.cfg, ctrl, view, downloads, a.metrics, a.logger)
			return srv.Run(cmd.Context())
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (default from config)")
	return cmd
}

// snapshotCmd creates the "snapshot" subcommand.
func snapshotCmd() *cobra.Command {
	var (
		pngPath string
		stealth bool
	)

	cmd := &cobra.Command{
		Use:   "snapshot <url>",
		Short: "Analyze a product and save the dashboard as a PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			if stealth {
				a.cfg.Snapshot.Stealth = true
			}

			view, err := dashboard.NewHTMLView()
			if err != nil {
				return err
			}
			view.SetInputValue(args[0])
			ctrl := a.controller(view, nil)
			defer ctrl.Close()

			// A failed flow still leaves its message in the page, which is
			// worth capturing.
			ctx := cmd.Context()
			if err := ctrl.GetProductInfo(ctx, args[0]); err == nil {
				if err := ctrl.AnalyzeReviews(ctx); err != nil {
					a.logger.Warn("analysis failed", "error", err)
				}
			}

			page, err := view.HTML()
			if err != nil {
				return fmt.Errorf("render page: %w", err)
			}
			png, err := snapshot.NewRenderer(a.cfg.Snapshot, a.logger).Render(ctx, page)
			if err != nil {
				return err
			}
			if err := os.WriteFile(pngPath, png, 0o644); err != nil {
				return fmt.Errorf("write snapshot: %w", err)
			}
			fmt.Printf("📸 %s (%d bytes)\n", pngPath, len(png))
			return nil
		},
	}
	cmd.Flags().StringVarP(&pngPath, "output", "o", "dashboard.png", "PNG file to write")
	cmd.Flags().BoolVar(&stealth, "stealth", false, "apply stealth patches to the headless browser")
	return cmd
}
