// Package cli implements the snapcard command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/snapkit/snapcard/pkg/buildinfo"
	"github.com/snapkit/snapcard/pkg/cache"
	"github.com/snapkit/snapcard/pkg/fonts"
	"github.com/snapkit/snapcard/pkg/history"
	"github.com/snapkit/snapcard/pkg/prefs"
	"github.com/snapkit/snapcard/pkg/snap"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "snapcard"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Fonts  *fonts.Library
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Fonts:  fonts.NewLibrary(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "snapcard",
		Short:        "Snapcard renders text into shareable snapshot cards",
		Long:         `Snapcard is a CLI tool for turning plain text into styled snapshot card images: a rounded card with window-control dots on a colored canvas, auto-fit typography, and PNG, JPEG, or WebP output.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.themesCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a render runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*snap.Runner, error) {
	renderer, err := snap.New(c.Fonts)
	if err != nil {
		return nil, err
	}
	artifactCache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return snap.NewRunner(renderer, artifactCache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Stores
// =============================================================================

// storeOpts selects the history backend. The file store is the default;
// redis and mongo are for server deployments.
type storeOpts struct {
	redisAddr string
	mongoURI  string
	mongoDB   string
}

// registerStoreFlags adds the backend selection flags to a command.
func registerStoreFlags(cmd *cobra.Command, opts *storeOpts) {
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "use a redis history store at this address")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", "", "use a mongodb history store at this URI")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", appName, "mongodb database name")
}

// newStore opens the history store selected by opts.
func (c *CLI) newStore(cmd *cobra.Command, opts storeOpts) (history.Store, error) {
	ctx := cmd.Context()
	switch {
	case opts.redisAddr != "":
		c.Logger.Debug("using redis history store", "addr", opts.redisAddr)
		return history.NewRedisStore(ctx, opts.redisAddr)
	case opts.mongoURI != "":
		c.Logger.Debug("using mongodb history store", "db", opts.mongoDB)
		return history.NewMongoStore(ctx, opts.mongoURI, opts.mongoDB)
	default:
		path, err := historyPath()
		if err != nil {
			return nil, err
		}
		return history.NewFileStore(path)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/snapcard/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// historyPath returns the history file location under the user config dir.
func historyPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "history.json"), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// baseOptions builds the option set every render starts from: renderer
// defaults overlaid with the user's saved preferences.
func (c *CLI) baseOptions() snap.Options {
	opts := snap.DefaultOptions()
	path, err := prefs.DefaultPath()
	if err != nil {
		return opts
	}
	if err := prefs.Load(path).Apply(&opts); err != nil {
		c.Logger.Debug("ignoring saved preferences", "err", err)
	}
	return opts
}
