package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/snapkit/snapcard/pkg/cache"
)

// cacheCommand groups maintenance for the render artifact cache.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the render artifact cache",
		Long: `Rendered snaps are cached on disk, keyed by text and options, so
repeat renders return instantly. Entries expire after a week.`,
	}

	cmd.AddCommand(c.cacheInfoCommand())
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheStats tallies stored artifacts under dir: entry count by artifact
// suffix, disk usage over every cache file including sidecars. A missing
// directory is an empty cache.
func cacheStats(dir string) (artifacts int, size int64, err error) {
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		size += info.Size()
		if strings.HasSuffix(path, cache.ArtifactExt) {
			artifacts++
		}
		return nil
	})
	return artifacts, size, err
}

// cacheInfoCommand creates the "cache info" subcommand.
func (c *CLI) cacheInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cached artifact count and disk usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			artifacts, size, err := cacheStats(dir)
			if err != nil {
				return err
			}

			printInfo("Cached artifacts: %d", artifacts)
			printDetail("Disk usage: %s", formatBytes(int(size)))
			printDetail("Directory:  %s", dir)
			printDetail("Retention:  %s", cache.TTLArtifact)
			return nil
		},
	}
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all cached render artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			artifacts, size, err := cacheStats(dir)
			if err != nil {
				return err
			}
			if artifacts == 0 {
				printInfo("Cache is empty")
				return nil
			}

			// Remove the shard directories, keeping the cache root.
			entries, err := os.ReadDir(dir)
			if err != nil {
				return err
			}
			for _, e := range entries {
				if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
					return err
				}
			}

			printSuccess("Removed %d artifacts (%s)", artifacts, formatBytes(int(size)))
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}
