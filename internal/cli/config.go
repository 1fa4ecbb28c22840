package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/snapkit/snapcard/pkg/errors"
	"github.com/snapkit/snapcard/pkg/prefs"
)

// configCommand creates the preferences management command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit saved preferences",
	}

	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configSetCommand())
	cmd.AddCommand(c.configResetCommand())

	return cmd
}

// configShowCommand creates the "config show" subcommand.
func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the saved preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := prefs.DefaultPath()
			if err != nil {
				return err
			}
			p := prefs.Load(path)

			fmt.Println(StyleTitle.Render("Preferences"))
			printNewline()
			printPref("theme", p.Theme)
			printPref("font", p.FontFamily)
			if p.FontSize > 0 {
				printPref("font-size", fmt.Sprintf("%d", p.FontSize))
			} else {
				printPref("font-size", "")
			}
			printPref("align", p.TextAlign)
			printPref("format", p.Format)
			printNewline()
			printDetail("File: %s", path)
			return nil
		},
	}
}

// configSetCommand creates the "config set" subcommand.
func (c *CLI) configSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a preference (theme, font, font-size, align, format)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := prefs.DefaultPath()
			if err != nil {
				return err
			}
			p := prefs.Load(path)

			key, value := args[0], args[1]
			switch key {
			case "theme":
				p.Theme = value
			case "font":
				p.FontFamily = value
			case "font-size":
				var size int
				if _, err := fmt.Sscanf(value, "%d", &size); err != nil {
					return errors.New(errors.ErrCodeInvalidInput, "font-size must be a number (got %q)", value)
				}
				p.FontSize = size
			case "align":
				p.TextAlign = value
			case "format":
				p.Format = value
			default:
				return errors.New(errors.ErrCodeInvalidInput, "unknown preference: %q (theme, font, font-size, align, format)", key)
			}

			if err := prefs.Save(path, p); err != nil {
				return err
			}
			printSuccess("Set %s = %s", key, value)
			return nil
		},
	}
}

// configResetCommand creates the "config reset" subcommand.
func (c *CLI) configResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset all preferences to defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := prefs.DefaultPath()
			if err != nil {
				return err
			}
			if err := prefs.Save(path, prefs.Default()); err != nil {
				return err
			}
			printSuccess("Preferences reset")
			return nil
		},
	}
}

// printPref prints one preference row, marking unset values.
func printPref(key, value string) {
	if value == "" {
		value = StyleDim.Render("(default)")
	} else {
		value = StyleValue.Render(value)
	}
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf("%-10s", key)) + value)
}
