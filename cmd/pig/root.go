package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/randomtoy/pig-go/internal/adapters/chart"
	"github.com/randomtoy/pig-go/internal/app"
	"github.com/randomtoy/pig-go/internal/config"
	"github.com/randomtoy/pig-go/internal/domain"
	"github.com/randomtoy/pig-go/internal/ports"
)

type rootOptions struct {
	logLevel  string
	maxTarget int
	maxPoints int
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "pig",
		Short:        "Expected turn scores in Pig for a hold-at-target strategy",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, err := config.ParseLogLevel(opts.logLevel)
			if err != nil {
				return err
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().IntVar(&opts.maxTarget, "max-target", 1000, "largest target accepted")
	root.PersistentFlags().IntVar(&opts.maxPoints, "max-points", 1001, "largest number of targets in a curve")

	root.AddCommand(newScoreCmd(opts), newCurveCmd(opts), newChartCmd(opts))
	return root
}

func (o *rootOptions) service() *app.ScoreService {
	return app.NewScoreService(nil, chart.NewPlotRenderer(), nil, app.Limits{MaxTarget: o.maxTarget, MaxCurvePoints: o.maxPoints})
}

func newScoreCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "score TARGET",
		Short: "Print the expected score when holding at TARGET",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := domain.ParseTarget(args[0])
			if err != nil {
				return err
			}
			resp, err := opts.service().ExpectedScore(cmd.Context(), target)
			if err != nil {
				return err
			}
			slog.Debug("solved", "target", target, "latency_ms", resp.LatencyMS)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%.6f\n", resp.Expected)
			return err
		},
	}
}

type rangeFlags struct {
	from, to int
}

func (r *rangeFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&r.from, "from", 0, "first target")
	cmd.Flags().IntVar(&r.to, "to", 49, "last target (inclusive)")
}

func (r rangeFlags) request() app.CurveRequest {
	return app.CurveRequest{From: r.from, To: r.to}
}

func newCurveCmd(opts *rootOptions) *cobra.Command {
	var rf rangeFlags
	cmd := &cobra.Command{
		Use:   "curve",
		Short: "Print expected scores for a range of targets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := opts.service().Curve(cmd.Context(), rf.request())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TARGET\tEXPECTED")
			for _, p := range resp.Points {
				fmt.Fprintf(tw, "%d\t%.6f\n", p.Target, p.Expected)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "best: hold at %d (%.6f)\n", resp.Best.Target, resp.Best.Expected)
			return err
		},
	}
	rf.bind(cmd)
	return cmd
}

func newChartCmd(opts *rootOptions) *cobra.Command {
	var (
		rf     rangeFlags
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render the expected-score curve as an image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := ports.ParseChartFormat(format)
			if err != nil {
				return err
			}
			if out == "" {
				out = "pig." + string(f)
			}

			file, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			if err := opts.service().RenderCurve(cmd.Context(), file, rf.request(), f); err != nil {
				_ = file.Close()
				_ = os.Remove(out)
				return err
			}
			if err := file.Close(); err != nil {
				return fmt.Errorf("close %s: %w", out, err)
			}

			slog.Info("chart written", "path", out, "format", f, "from", rf.from, "to", rf.to)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	rf.bind(cmd)
	cmd.Flags().StringVar(&format, "format", "png", "image format (png or svg)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default pig.<format>)")
	return cmd
}
