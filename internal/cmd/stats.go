package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/meredith/spikekit/internal/convert"
	"github.com/meredith/spikekit/internal/export"
	"github.com/meredith/spikekit/internal/logger"
	"github.com/meredith/spikekit/internal/neuro"
	"github.com/meredith/spikekit/internal/recio"
	"github.com/meredith/spikekit/internal/stats"
)

// NewStatsCommand creates and returns the stats subcommand
func NewStatsCommand() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "stats <recording-file>...",
		Short: "Print spike statistics for recording files",
		Long: `Read recording files and print per-spike-train statistics:
spike count, mean firing rate over the train's window, and the
coefficient of variation of the inter-spike intervals.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(args, logLevel, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&logLevel, "log-level", "", "log verbosity (trace, debug, info, warn, error)")

	return cmd
}

func runStats(files []string, logLevel string, out, errOut io.Writer) error {
	log := logger.NewConsoleLogger(errOut, logLevel)

	var trains []*neuro.SpikeTrain
	for obj, err := range export.ReadObjects(recio.DefaultRegistry(), files) {
		if err != nil {
			return err
		}
		found, err := neuro.SpikeTrainsIn(obj)
		if err != nil {
			return err
		}
		trains = append(trains, found...)
	}
	if len(trains) == 0 {
		return fmt.Errorf("no spike trains found")
	}
	log.LogDebug(fmt.Sprintf("found %d spike trains", len(trains)))

	reg := convert.DefaultArgRegistry()

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tORIGIN\tSPIKES\tRATE\tCV(ISI)")
	for _, st := range trains {
		spikes := 0
		if st.Times != nil {
			spikes = len(st.Times.Values)
		}

		// The window bounds come from the train's own attributes,
		// resolved through the argument registry.
		rateStr := "-"
		if st.Times != nil {
			fed := reg.FillArgs("firing_rate", st)
			if rate, err := stats.FiringRate(st.Times, fed["t_start"], fed["t_stop"]); err == nil {
				if v, err := rate.Scalar(); err == nil {
					rateStr = fmt.Sprintf("%.3g %s", v, rate.Units)
				}
			}
		}

		cvStr := "-"
		if cv, err := stats.CVISI(st); err == nil {
			cvStr = fmt.Sprintf("%.3f", cv)
		}

		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", st.Name(), st.FileOrigin(), spikes, rateStr, cvStr)
	}
	return w.Flush()
}
