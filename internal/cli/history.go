package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/snapkit/snapcard/pkg/history"
)

// historyCommand creates the history management command.
func (c *CLI) historyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse and manage the snap history",
	}

	cmd.AddCommand(c.historyListCommand())
	cmd.AddCommand(c.historyShowCommand())
	cmd.AddCommand(c.historyAddCommand())
	cmd.AddCommand(c.historyRemoveCommand())

	return cmd
}

// historyListCommand creates the "history list" subcommand.
func (c *CLI) historyListCommand() *cobra.Command {
	var store storeOpts
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved snaps, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.newStore(cmd, store)
			if err != nil {
				return err
			}
			defer s.Close()

			snaps, err := s.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(snaps) == 0 {
				printInfo("History is empty")
				printNextStep("Save a snap", "snapcard render \"hello\" --save")
				return nil
			}

			for _, snap := range snaps {
				title := snap.Title
				if title == "" {
					title = StyleDim.Render(excerpt(snap.Text, 40))
				}
				fmt.Println(StyleHighlight.Render(snap.ID[:8]) + "  " +
					StyleDim.Render(snap.Timestamp.Local().Format("2006-01-02 15:04")) + "  " +
					title + tagSuffix(snap.Tags))
			}
			printNewline()
			printDetail("%d snaps", len(snaps))
			return nil
		},
	}
	registerStoreFlags(cmd, &store)
	return cmd
}

// historyShowCommand creates the "history show" subcommand.
func (c *CLI) historyShowCommand() *cobra.Command {
	var store storeOpts
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved snap's text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.newStore(cmd, store)
			if err != nil {
				return err
			}
			defer s.Close()

			snap, err := resolve(cmd, s, args[0])
			if err != nil {
				return err
			}
			if snap.Title != "" {
				fmt.Println(StyleTitle.Render(snap.Title))
			}
			fmt.Println(snap.Text)
			return nil
		},
	}
	registerStoreFlags(cmd, &store)
	return cmd
}

// historyAddCommand creates the "history add" subcommand.
func (c *CLI) historyAddCommand() *cobra.Command {
	var store storeOpts
	var title string
	var tags []string
	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Save a snap without rendering it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.newStore(cmd, store)
			if err != nil {
				return err
			}
			defer s.Close()

			entry, err := history.New(args[0], title, tags)
			if err != nil {
				return err
			}
			if err := s.Add(cmd.Context(), entry); err != nil {
				return err
			}
			printSuccess("Saved snap %s", entry.ID[:8])
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "snap title")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "snap tag, repeatable")
	registerStoreFlags(cmd, &store)
	return cmd
}

// historyRemoveCommand creates the "history rm" subcommand.
func (c *CLI) historyRemoveCommand() *cobra.Command {
	var store storeOpts
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a saved snap",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.newStore(cmd, store)
			if err != nil {
				return err
			}
			defer s.Close()

			snap, err := resolve(cmd, s, args[0])
			if err != nil {
				return err
			}
			if err := s.Delete(cmd.Context(), snap.ID); err != nil {
				return err
			}
			printSuccess("Deleted snap %s", snap.ID[:8])
			return nil
		},
	}
	registerStoreFlags(cmd, &store)
	return cmd
}

// resolve finds a snap by full ID or unique prefix.
func resolve(cmd *cobra.Command, s history.Store, id string) (history.Snap, error) {
	if snap, err := s.Get(cmd.Context(), id); err == nil {
		return snap, nil
	}

	snaps, err := s.List(cmd.Context())
	if err != nil {
		return history.Snap{}, err
	}
	var match *history.Snap
	for i := range snaps {
		if strings.HasPrefix(snaps[i].ID, id) {
			if match != nil {
				return history.Snap{}, fmt.Errorf("ambiguous id prefix: %s", id)
			}
			match = &snaps[i]
		}
	}
	if match == nil {
		return history.Snap{}, fmt.Errorf("no snap with id %s", id)
	}
	return *match, nil
}

// excerpt shortens text to a single line of at most n runes.
func excerpt(text string, n int) string {
	line, _, _ := strings.Cut(text, "\n")
	runes := []rune(line)
	if len(runes) > n {
		return string(runes[:n-1]) + "…"
	}
	return line
}

// tagSuffix formats tags for the list view.
func tagSuffix(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return "  " + StyleDim.Render("#"+strings.Join(tags, " #"))
}
