package cmd

import (
	"fmt"
	"io"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/meredith/spikekit/internal/config"
	"github.com/meredith/spikekit/internal/fileutil"
	"github.com/meredith/spikekit/internal/logger"
	"github.com/meredith/spikekit/internal/textfilter"
)

// NewScanCommand creates and returns the scan subcommand
func NewScanCommand() *cobra.Command {
	var (
		recursive   bool
		extensions  []string
		match       []string
		regex       []string
		dirMatch    []string
		maxDepth    int
		followLinks bool
		logLevel    string
	)

	cmd := &cobra.Command{
		Use:   "scan <directory>",
		Short: "List recording files in a directory",
		Long: `Scan a directory for recording files and print the matches.

Filters compose: extension filters, file-name substring/regexp filters
and directory filters all apply. Directory filters gate which
directories' files are listed without stopping the walk below them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfigFromDir(args[0])
			if err != nil {
				return err
			}
			var extFlag *[]string
			if cmd.Flags().Changed("ext") {
				extFlag = &extensions
			}
			var recFlag *bool
			if cmd.Flags().Changed("recursive") {
				recFlag = &recursive
			}
			var levelFlag *string
			if cmd.Flags().Changed("log-level") {
				levelFlag = &logLevel
			}
			cfg.MergeWithFlags(levelFlag, recFlag, extFlag, nil)

			fileFilter, err := buildPredicate(match, regex)
			if err != nil {
				return err
			}
			dirFilter, err := buildPredicate(dirMatch, nil)
			if err != nil {
				return err
			}

			opts := fileutil.ScanOptions{
				Extensions:  cfg.Scan.Extensions,
				FileFilter:  fileFilter,
				DirFilter:   dirFilter,
				Recursive:   cfg.Scan.Recursive,
				ExcludeDirs: cfg.Scan.ExcludeDirs,
				MaxDepth:    cfg.Scan.MaxDepth,
				FollowLinks: cfg.Scan.FollowLinks,
			}
			if cmd.Flags().Changed("max-depth") {
				opts.MaxDepth = maxDepth
			}
			if cmd.Flags().Changed("follow-links") {
				opts.FollowLinks = followLinks
			}

			return runScan(args[0], opts, cfg.LogLevel, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
		SilenceUsage: true,
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "descend into subdirectories")
	cmd.Flags().StringSliceVarP(&extensions, "ext", "e", nil, "file extensions to include (e.g. .yaml)")
	cmd.Flags().StringSliceVarP(&match, "match", "m", nil, "only list files containing a substring")
	cmd.Flags().StringSliceVar(&regex, "regex", nil, "only list files matching a regular expression")
	cmd.Flags().StringSliceVar(&dirMatch, "dir-match", nil, "descend only into directories whose name contains a substring")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "limit recursion depth (0 = unlimited)")
	cmd.Flags().BoolVar(&followLinks, "follow-links", false, "follow symlinked directories")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log verbosity (trace, debug, info, warn, error)")

	return cmd
}

func runScan(dir string, opts fileutil.ScanOptions, logLevel string, out, errOut io.Writer) error {
	log := logger.NewConsoleLogger(errOut, logLevel)
	log.LogDebug(fmt.Sprintf("scanning %s", dir))

	result, err := fileutil.ScanDirectory(dir, opts)
	if err != nil {
		return err
	}
	for _, path := range result.Files {
		fmt.Fprintln(out, path)
	}
	for _, scanErr := range result.Errors {
		log.LogWarn(scanErr.Error())
	}

	log.LogScanSummary(dir, len(result.Files), len(result.Errors))
	return nil
}

// buildPredicate composes substring and regexp filters into one
// conjunction, or nil when no filters were given.
func buildPredicate(substrings, regexes []string) (textfilter.Predicate, error) {
	var preds []textfilter.Predicate
	for _, s := range substrings {
		preds = append(preds, textfilter.Literal(s))
	}
	for _, expr := range regexes {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid filter %q: %w", expr, err)
		}
		preds = append(preds, textfilter.Pattern(re))
	}
	if len(preds) == 0 {
		return nil, nil
	}
	return textfilter.All(preds...), nil
}
