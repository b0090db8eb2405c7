package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/meredith/spikekit/internal/config"
	"github.com/meredith/spikekit/internal/export"
	"github.com/meredith/spikekit/internal/fileutil"
	"github.com/meredith/spikekit/internal/logger"
	"github.com/meredith/spikekit/internal/neuro"
	"github.com/meredith/spikekit/internal/notes"
	"github.com/meredith/spikekit/internal/objstore"
	"github.com/meredith/spikekit/internal/recio"
)

// NewExportCommand creates and returns the export subcommand
func NewExportCommand() *cobra.Command {
	var (
		storePath   string
		flat        bool
		withCurrent bool
		recursive   bool
		extensions  []string
		applyNotes  bool
		logLevel    string
	)

	cmd := &cobra.Command{
		Use:   "export <directory>",
		Short: "Export recording files into a container store",
		Long: `Read every recording file under a directory and write the objects
into a single container store.

Each object is keyed by the path of the file it came from, so the
store mirrors the source directory layout. With --flat everything
lands under "/". A notes.md sidecar in the scanned directory, when
present, is applied as annotations before export.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfigFromDir(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("store") {
				cfg.Export.StorePath = storePath
			}
			if cmd.Flags().Changed("flat") {
				cfg.Export.Flat = flat
			}
			if cmd.Flags().Changed("with-current") {
				cfg.Export.WithCurrent = withCurrent
			}
			if cmd.Flags().Changed("recursive") {
				cfg.Scan.Recursive = recursive
			}
			if cmd.Flags().Changed("ext") {
				cfg.Scan.Extensions = extensions
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			return runExport(args[0], cfg, applyNotes, cmd.ErrOrStderr())
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&storePath, "store", "s", "", "container store file to write")
	cmd.Flags().BoolVar(&flat, "flat", false, "store everything under / instead of mirroring directories")
	cmd.Flags().BoolVar(&withCurrent, "with-current", true, "append previous store paths to the keys")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "descend into subdirectories")
	cmd.Flags().StringSliceVarP(&extensions, "ext", "e", nil, "file extensions to include (e.g. .yaml)")
	cmd.Flags().BoolVar(&applyNotes, "notes", true, "apply a notes.md sidecar as annotations")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log verbosity (trace, debug, info, warn, error)")

	return cmd
}

func runExport(dir string, cfg *config.Config, applyNotes bool, errOut io.Writer) error {
	log := logger.NewConsoleLogger(errOut, cfg.LogLevel)
	start := time.Now()

	opts := fileutil.ScanOptions{
		Extensions:  cfg.Scan.Extensions,
		Recursive:   cfg.Scan.Recursive,
		ExcludeDirs: cfg.Scan.ExcludeDirs,
		MaxDepth:    cfg.Scan.MaxDepth,
		FollowLinks: cfg.Scan.FollowLinks,
	}

	var objs []neuro.DomainObject
	for obj, err := range export.ReadDir(recio.DefaultRegistry(), dir, opts) {
		if err != nil {
			log.LogWarn(err.Error())
			continue
		}
		log.LogDebug(fmt.Sprintf("read %s %q from %s", obj.TypeName(), obj.FileOrigin(), dir))
		objs = append(objs, obj)
	}
	if len(objs) == 0 {
		return fmt.Errorf("no recording objects found under %s", dir)
	}

	if applyNotes {
		sidecar, err := notes.Find(dir)
		if err != nil {
			return err
		}
		if sidecar != nil {
			log.LogInfo(fmt.Sprintf("applying %d annotations from %s", len(sidecar.Annotations), notes.DefaultFileName))
			if err := sidecar.Apply(objs); err != nil {
				return err
			}
		}
	}

	store, err := objstore.Open(cfg.Export.StorePath)
	if err != nil {
		return err
	}
	err = export.ExportToStore(objs, store, export.ExportOptions{
		Flat:        cfg.Export.Flat,
		WithCurrent: cfg.Export.WithCurrent,
	})
	if err != nil {
		return err
	}

	log.LogExportSummary(cfg.Export.StorePath, len(objs), time.Since(start))
	return nil
}
