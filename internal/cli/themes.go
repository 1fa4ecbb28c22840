package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/snapkit/snapcard/pkg/snap"
)

// themesCommand creates the themes listing command.
func (c *CLI) themesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List available color themes",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := make([]string, 0, len(snap.Themes))
			for name := range snap.Themes {
				names = append(names, name)
			}
			sort.Strings(names)

			fmt.Println(StyleTitle.Render("Themes"))
			printNewline()
			for _, name := range names {
				t := snap.Themes[name]
				label := name
				if name == snap.DefaultTheme {
					label = name + StyleDim.Render(" (default)")
				}
				printSwatch(label, t.Background, t.Card, t.Text)
			}
			printNewline()
			printNextStep("Use a theme", "snapcard render \"hello\" --theme "+names[0])
			return nil
		},
	}
}

// presetsCommand creates the size preset listing command.
func (c *CLI) presetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List available size presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := make([]string, 0, len(snap.Presets))
			for name := range snap.Presets {
				names = append(names, name)
			}
			sort.Strings(names)

			fmt.Println(StyleTitle.Render("Size presets"))
			printNewline()
			for _, name := range names {
				p := snap.Presets[name]
				fmt.Println("  " + StyleValue.Render(fmt.Sprintf("%-8s", name)) +
					StyleDim.Render(fmt.Sprintf("%d x %d", p.Width, p.Height)))
			}
			printNewline()
			printNextStep("Use a preset", "snapcard render \"hello\" --preset og")
			return nil
		},
	}
}
