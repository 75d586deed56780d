package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	clog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/h0rv/storyboard/internal/address"
	"github.com/h0rv/storyboard/internal/config"
	"github.com/h0rv/storyboard/internal/controller"
	"github.com/h0rv/storyboard/internal/logging"
	"github.com/h0rv/storyboard/internal/store"
	"github.com/h0rv/storyboard/internal/tui"
)

// options holds CLI flags shared by all commands.
type options struct {
	configPath string
	stories    string
	stateFile  string
	baseURL    string
	split      bool
	query      string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "storyboard",
		Short: "Terminal story board with shareable owner and type filters",
		Long: `storyboard shows a project's stories as a kanban board.

Stories are read from a JSON snapshot. The owner and story type filters are
kept in a query string such as "owners=101,102&types=bug" that is saved
between runs and can be stepped through with [ and ].

Configuration:
  ~/.config/storyboard/config.toml (or $STORYBOARD_CONFIG)
  STORYBOARD_* environment variables, e.g. STORYBOARD_LOG_LEVEL=debug`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Config file path.")
	flags.StringVar(&opts.stories, "stories", "", "Story snapshot JSON file.")
	flags.StringVar(&opts.stateFile, "state-file", "", "File holding the saved filter address.")
	flags.StringVar(&opts.baseURL, "base-url", "", "Board URL used for filter links.")
	flags.BoolVar(&opts.split, "split", false, "Show Delivered and Accepted as separate columns.")
	flags.StringVar(&opts.query, "query", "", `Filter query, e.g. "owners=101&types=bug". Defaults to the saved address.`)

	rootCmd.AddCommand(newFilterCmd(opts), newLinkCmd(opts))
	return rootCmd
}

// loadConfig reads config and applies flags that were set explicitly.
func loadConfig(cmd *cobra.Command, opts *options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("stories") {
		cfg.Board.StoriesFile = opts.stories
	}
	if flags.Changed("state-file") {
		cfg.Address.StateFile = opts.stateFile
	}
	if flags.Changed("base-url") {
		cfg.Board.BaseURL = opts.baseURL
	}
	if flags.Changed("split") {
		cfg.Board.SplitColumns = opts.split
	}
	return cfg, nil
}

// openLogger returns the configured log file logger, or fallback when no
// file is configured.
func openLogger(cfg config.Config, fallback io.Writer) (*clog.Logger, io.Closer, error) {
	if cfg.Log.File != "" {
		return logging.OpenFile(cfg.Log.File, cfg.Log.Level)
	}
	if fallback == nil {
		return logging.Discard(), noopCloser{}, nil
	}
	return logging.New(fallback, cfg.Log.Level), noopCloser{}, nil
}

func runBoard(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so only log to a file
	logger, closer, err := openLogger(cfg, nil)
	if err != nil {
		return err
	}
	defer closer.Close()

	nav, err := address.OpenFile(cfg.Address.StateFile, logger)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("query") {
		nav.Replace(opts.query)
	}

	storiesFile := cfg.Board.StoriesFile
	loader := func() (*store.Snapshot, error) {
		return store.LoadSnapshotFile(storiesFile)
	}

	s := store.New()
	ctrl := controller.New(nav, nil, controller.WithLogger(logger))
	defer ctrl.Close()

	board := tui.NewBoardModel(s, ctrl, nav, tui.BoardOptions{
		SplitColumns: cfg.Board.SplitColumns,
		BaseURL:      cfg.Board.BaseURL,
		Loader:       loader,
		Logger:       logger,
	})

	logger.Info("starting board", "stories", storiesFile, "address", nav.Path(), "query", nav.Read())

	p := tea.NewProgram(tui.NewAppModel(board), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}

	return nil
}
