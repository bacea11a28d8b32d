// Package commands implements the ppmtrans command line.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-locality/internal/config"
	"github.com/ajroetker/go-locality/internal/logger"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// rootOptions holds flags that are not part of config.Config.
type rootOptions struct {
	configFile string
	rowMajor   bool
	colMajor   bool
	blockMajor bool
}

// Execute runs the ppmtrans command with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	d := config.Default()

	cmd := &cobra.Command{
		Use:   "ppmtrans [flags] [file]",
		Short: "Rotate, flip or transpose an image",
		Long: `ppmtrans reads an image (PPM/PGM/PBM/PAM, PNG, JPEG or BMP) from file or
standard input, applies one geometric transformation and writes the result
to standard output.

The pixels are held either in a plain row-major array ("row-major",
"col-major" traversal) or in a blocked array ("block-major" traversal) whose
blocks are sized to fit a cache budget.

Every option can also be set in a YAML file (--config) or through
PPMTRANS_<SECTION>_<KEY> environment variables, for example
PPMTRANS_LAYOUT_ORDER=block-major.`,
		Example: `  ppmtrans -r 90 --block-major in.ppm > out.ppm
  ppmtrans --flip horizontal --format png < in.jpg > out.png
  ppmtrans -r 180 --col-major --time timing.txt in.ppm > /dev/null`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return runTransform(cmd, args, cfg)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "YAML configuration file")
	pf.IntP("rotate", "r", d.Transform.Rotate, "clockwise rotation in degrees: 0, 90, 180 or 270")
	pf.String("flip", d.Transform.Flip, "mirror the image: horizontal or vertical")
	pf.Bool("transpose", d.Transform.Transpose, "swap rows and columns")
	pf.String("order", d.Layout.Order, "traversal order: row-major, col-major or block-major")
	pf.Int("block-size", d.Layout.BlockSize, "block edge in pixels for block-major order (0 derives it from --block-bytes)")
	pf.Int("block-bytes", d.Layout.BlockBytes, "per-block memory budget in bytes (0 means 64KiB)")
	pf.Int("workers", d.Layout.Workers, "parallel workers for block-major order (0 means one per CPU)")
	pf.String("format", d.Output.Format, "output format: ppm, png, bmp or jpeg")
	pf.Bool("plain", d.Output.Plain, "write ASCII (P3) instead of binary PPM")
	pf.Int("quality", d.Output.Quality, "JPEG quality 1-100 (0 uses the encoder default)")
	pf.String("time", d.Output.TimeFile, "write a CPU timing report to this file")
	pf.Bool("stats", d.Output.Stats, "print a layout and timing summary to stderr")
	pf.String("log-level", d.Logging.Level, "log level: DEBUG, INFO, WARN or ERROR")
	pf.String("log-format", d.Logging.Format, "log format: text or json")
	pf.String("log-output", d.Logging.Output, "log destination: stderr, stdout or a file path")

	f := cmd.Flags()
	f.BoolVar(&opts.rowMajor, "row-major", false, "shorthand for --order row-major")
	f.BoolVar(&opts.colMajor, "col-major", false, "shorthand for --order col-major")
	f.BoolVar(&opts.blockMajor, "block-major", false, "shorthand for --order block-major")
	cmd.MarkFlagsMutuallyExclusive("row-major", "col-major", "block-major", "order")
	cmd.MarkFlagsMutuallyExclusive("flip", "transpose")

	cmd.AddCommand(newConfigCmd(opts))
	cmd.CompletionOptions.DisableDefaultCmd = true
	return cmd
}

// loadConfig resolves the effective configuration and applies its logging
// settings.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	switch {
	case opts.rowMajor:
		cfg.Layout.Order = "row-major"
	case opts.colMajor:
		cfg.Layout.Order = "col-major"
	case opts.blockMajor:
		cfg.Layout.Order = "block-major"
	}

	if err := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}); err != nil {
		return nil, err
	}
	logger.Debug("configuration loaded", "source", configSource(opts.configFile))
	return cfg, nil
}

func configSource(path string) string {
	if path != "" {
		return path
	}
	return "defaults"
}
