// Package cli contains all commands for the bazaarctl CLI
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bookbazaar/app/utils/validator"
	"bookbazaar/cli/output"
	"bookbazaar/client/api"
	"bookbazaar/client/cart"
	"bookbazaar/client/credstore"
	"bookbazaar/client/session"
)

var (
	cfgFile   string
	serverURL string
	verbose   bool
	colorFlag string
	quiet     bool

	logger  *slog.Logger
	printer *output.Printer
	version = "dev"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bazaarctl",
	Short: "BookBazaar storefront CLI",
	Long: `bazaarctl is a command line client for the BookBazaar store.

It keeps a local session (token and API key) and a server-synchronized
cart between invocations, so browsing, carting and ordering work the
same way the web storefront does.

Example usage:
  bazaarctl login reader@example.com     # Sign in and store the session
  bazaarctl books list --genre Sci-Fi    # Browse the catalog
  bazaarctl cart add <book-id>           # Add a book to the cart
  bazaarctl order place                  # Check out the current cart`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.bazaarctl.yaml)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "BookBazaar API base URL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto", "color output (auto, always, never)")

	_ = viper.BindPFlag("server.url", rootCmd.PersistentFlags().Lookup("server"))
	_ = viper.BindPFlag("output.color", rootCmd.PersistentFlags().Lookup("color"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".bazaarctl")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("BAZAAR")
	viper.AutomaticEnv()
	viper.SetDefault("server.url", "http://localhost:5000")
	viper.SetDefault("request.timeout", "15s")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	logLevel := slog.LevelWarn
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	colorMode, err := output.ParseColorMode(viper.GetString("output.color"))
	if err != nil {
		return err
	}
	printer = output.NewPrinterWithOptions(output.PrinterOptions{
		ColorMode: colorMode,
		Quiet:     quiet,
	})

	return nil
}

// appContext bundles the client stack a command needs. Close must be
// called when the command is done.
type appContext struct {
	API     *api.Client
	Store   *credstore.Store
	Session *session.Manager
	Cart    *cart.Synchronizer
}

// newAppContext builds the API client, credential store, session
// manager and cart synchronizer for a command invocation.
func newAppContext() (*appContext, error) {
	timeout := viper.GetDuration("request.timeout")
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	client, err := api.New(viper.GetString("server.url"), timeout, logger)
	if err != nil {
		return nil, fmt.Errorf("creating API client: %w", err)
	}

	storePath, err := credstore.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("resolving credential store path: %w", err)
	}
	store, err := credstore.Open(storePath)
	if err != nil {
		return nil, fmt.Errorf("opening credential store: %w", err)
	}

	notifier := output.NewNotifier(printer)
	manager := session.NewManager(client, store, notifier, logger)
	synchronizer := cart.NewSynchronizer(client, notifier, logger)
	manager.Subscribe(synchronizer.OnSessionChange)

	return &appContext{
		API:     client,
		Store:   store,
		Session: manager,
		Cart:    synchronizer,
	}, nil
}

// requireSession rehydrates the stored session and fails when there is
// no authenticated identity.
func (a *appContext) requireSession(cmd *cobra.Command) error {
	if err := a.Session.Resolve(cmd.Context()); err != nil {
		logger.Debug("session resolve failed", "error", err)
	}
	if a.Session.State() != session.StateAuthenticated {
		return fmt.Errorf("not signed in: run 'bazaarctl login <email>' first")
	}
	return nil
}

// uuidArg validates that the first positional argument is a UUID, so a
// mistyped id fails before a request is made.
func uuidArg(label string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 && !validator.IsValidUUID(args[0]) {
			return fmt.Errorf("%q is not a valid %s id", args[0], label)
		}
		return nil
	}
}

// Close releases the app context resources
func (a *appContext) Close() {
	if err := a.Store.Close(); err != nil {
		logger.Debug("closing credential store", "error", err)
	}
}
