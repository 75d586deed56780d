package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/h0rv/storyboard/internal/address"
	"github.com/h0rv/storyboard/internal/config"
	"github.com/h0rv/storyboard/internal/controller"
	"github.com/h0rv/storyboard/internal/filter"
	"github.com/h0rv/storyboard/internal/querystate"
	"github.com/h0rv/storyboard/internal/store"
)

type noopCloser struct{}

func (noopCloser) Close() error { return nil }

// openURL is replaced in tests.
var openURL = browser.OpenURL

func newFilterCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "filter",
		Short: "Print the board columns for a filter query",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			logger, closer, err := openLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closer.Close()

			snap, err := store.LoadSnapshotFile(cfg.Board.StoriesFile)
			if err != nil {
				return err
			}
			s := store.New()
			s.Apply(snap)

			query, err := currentQuery(cmd, opts, cfg)
			if err != nil {
				return err
			}

			ctrl := controller.New(address.NewHistory(query), s.UniqueOwnerIDs(), controller.WithLogger(logger))
			defer ctrl.Close()
			sel := ctrl.Initialize()

			printBoard(cmd.OutOrStdout(), s, ctrl, sel, store.Columns(cfg.Board.SplitColumns))
			return nil
		},
	}
}

func newLinkCmd(opts *options) *cobra.Command {
	var open bool

	cmd := &cobra.Command{
		Use:   "link",
		Short: "Print the board link for a filter query",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			logger, closer, err := openLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closer.Close()

			query, err := currentQuery(cmd, opts, cfg)
			if err != nil {
				return err
			}

			sel, dropped := querystate.Parse(query)
			for _, d := range dropped {
				logger.Warn("ignored query entry", "entry", d.String())
			}

			link, err := querystate.Link(cfg.Board.BaseURL, sel)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), link)

			if open {
				if err := openURL(link); err != nil {
					return fmt.Errorf("open %s: %w", link, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&open, "open", false, "Open the link in a browser.")
	return cmd
}

// currentQuery returns --query when set, otherwise the saved address.
// The state file is only read.
func currentQuery(cmd *cobra.Command, opts *options, cfg config.Config) (string, error) {
	if cmd.Flags().Changed("query") {
		return opts.query, nil
	}
	return address.ReadFile(cfg.Address.StateFile)
}

func printBoard(w io.Writer, s *store.Store, ctrl *controller.Controller, sel filter.Selection, columns []store.Column) {
	summary := querystate.Encode(sel)
	if summary == "" {
		summary = "(none)"
	}
	fmt.Fprintf(w, "filter: %s\n", summary)

	ids := s.StoryIDs()
	stories := s.Stories()
	for _, col := range columns {
		cards := ctrl.Filter(ids, stories, col.States)
		fmt.Fprintf(w, "\n%s (%d)\n", col.Title, len(cards))
		for _, story := range cards {
			initials := make([]string, 0, len(story.OwnerIDs))
			for _, id := range story.OwnerIDs {
				initials = append(initials, s.Initials(id))
			}
			blocked := ""
			if filter.HasUnresolvedBlockers(story) {
				blocked = " [blocked]"
			}
			fmt.Fprintf(w, "  #%d %-7s %s%s", story.ID, story.StoryType, story.Name, blocked)
			if len(initials) > 0 {
				fmt.Fprintf(w, " (%s)", strings.Join(initials, ", "))
			}
			fmt.Fprintln(w)
		}
	}
}
