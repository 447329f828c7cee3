package app

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-colorable"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/birdayz/n85/pkg/config"
	"github.com/birdayz/n85/pkg/logger"
	"github.com/birdayz/n85/pkg/stream"
)

// App holds all shared mutable state for the CLI. It is created once per
// invocation and threaded into every command package.
type App struct {
	// I/O
	OutWriter    io.Writer
	ErrWriter    io.Writer
	InReader     io.Reader
	ColorableOut io.Writer

	// Config state
	Cfg           config.Config
	CfgFile       string
	BlockSizeFlag int
	Verbose       bool

	Log *logrus.Logger

	// Root command reference (for completion generation)
	Root *cobra.Command
}

// New creates an App with sane defaults.
func New() *App {
	return &App{
		OutWriter:    os.Stdout,
		ErrWriter:    os.Stderr,
		InReader:     os.Stdin,
		ColorableOut: colorable.NewColorableStdout(),
		Cfg:          config.Default(),
		Log:          logger.Discard(),
	}
}

// BindIO points the App's streams at cmd's and sets up the logger. Commands
// that must work without a readable config call only this.
func (a *App) BindIO(cmd *cobra.Command) {
	a.OutWriter = cmd.OutOrStdout()
	a.ErrWriter = cmd.ErrOrStderr()
	a.InReader = cmd.InOrStdin()

	if a.OutWriter != os.Stdout {
		a.ColorableOut = a.OutWriter
	}
	a.Log = logger.New(a.ErrWriter, a.Verbose)
}

// InitConfig reads the config file and applies flag overrides.
// Called by PersistentPreRunE on the root command.
func (a *App) InitConfig() error {
	a.Log = logger.New(a.ErrWriter, a.Verbose)

	cfg, err := config.ReadConfig(a.CfgFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	a.Cfg = cfg

	if a.BlockSizeFlag != 0 {
		if err := a.Cfg.Set("block-size", fmt.Sprint(a.BlockSizeFlag)); err != nil {
			return fmt.Errorf("invalid --block-size: %w", err)
		}
	}

	a.Log.WithFields(logrus.Fields{
		"config":     a.Cfg.Path(),
		"block_size": a.Cfg.BlockSize,
		"trim_space": a.Cfg.TrimSpace,
	}).Debug("configuration loaded")
	return nil
}

// StreamOptions returns the stream settings for the current configuration.
func (a *App) StreamOptions() stream.Options {
	return stream.Options{
		BlockSize: a.Cfg.BlockSize,
		TrimSpace: a.Cfg.TrimSpace,
		Log:       a.Log,
	}
}

// OpenInput returns the file named by args[0], or InReader when args is
// empty or "-". The returned closer must always be called.
func (a *App) OpenInput(args []string) (io.Reader, func() error, error) {
	if len(args) == 0 || args[0] == "-" {
		return a.InReader, func() error { return nil }, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("unable to open input: %w", err)
	}
	a.Log.WithField("file", args[0]).Debug("reading input file")
	return f, f.Close, nil
}

// PrintJSON pretty-prints v to ColorableOut. Colors are only used when
// writing to the process's stdout.
func (a *App) PrintJSON(v any) error {
	f := prettyjson.NewFormatter()
	f.DisabledColor = a.OutWriter != os.Stdout
	b, err := f.Marshal(v)
	if err != nil {
		return fmt.Errorf("unable to format json: %w", err)
	}
	_, err = fmt.Fprintln(a.ColorableOut, string(b))
	return err
}

const (
	TabwriterMinWidth = 6
	TabwriterWidth    = 4
	TabwriterPadding  = 3
	TabwriterPadChar  = ' '
	TabwriterFlags    = 0
)

// NewTabWriter creates a standard tabwriter for CLI output.
func NewTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, TabwriterMinWidth, TabwriterWidth, TabwriterPadding, TabwriterPadChar, TabwriterFlags)
}
