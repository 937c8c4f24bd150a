package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/cinectl/catalog"
	"github.com/s0up4200/cinectl/cinemaguide"
	"github.com/s0up4200/cinectl/config"
	"github.com/s0up4200/cinectl/favorites"
	"github.com/s0up4200/cinectl/session"
)

var (
	cfgFile      string
	cfg          *config.Config
	logger       zerolog.Logger
	store        *session.Store
	client       *cinemaguide.Client
	catalogStore *catalog.Catalog
	favStore     *favorites.Favorites
	sess         *session.Session
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cinectl",
	Short: "A command-line client for the cinemaguide movie catalog",
	Long: `cinectl is a CLI client for a cinemaguide-style movie catalog API.
It browses the catalog (listing, top ten, random pick, genres, search),
manages a per-user favorites list and keeps an authenticated session
persisted between runs.`,
	PersistentPreRunE: initializeApp,
}

// SetVersion records the build metadata reported by --version.
func SetVersion(version, buildTime string) {
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	rootCmd.AddCommand(testCmd)
}

// initializeApp initializes the configuration, session store, client and
// state containers
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	store, err = session.OpenStore(cfg.Session.File)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}

	client, err = cinemaguide.NewClient(cfg.API.URL, store, logger,
		cinemaguide.WithTimeout(cfg.API.Timeout),
		cinemaguide.WithUserAgent(cfg.API.UserAgent),
	)
	if err != nil {
		return fmt.Errorf("failed to create cinemaguide client: %w", err)
	}

	catalogStore = catalog.New(client, logger)
	catalogStore.SetSearchLimit(cfg.Search.Limit)
	favStore = favorites.New(client, logger)
	sess = session.New(client, store, logger)

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; color only when writing to a terminal
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to the cinemaguide API",
	Long:  `Test the connection to the configured cinemaguide API and display basic information.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	fmt.Printf("Testing connection to %s...\n", client.BaseURL())

	ctx := context.Background()
	genres, err := catalogStore.FetchGenres(ctx)
	if err != nil {
		return fmt.Errorf("failed to reach the API: %w", err)
	}

	fmt.Println("✓ Connection successful!")
	fmt.Printf("\nCatalog statistics:\n")
	fmt.Printf("- Available genres: %d\n", len(genres))

	if sess.Authorized() {
		user := sess.User()
		fmt.Printf("\nSession: authenticated as %s (%s)\n", strings.TrimSpace(user.Name+" "+user.Surname), user.Email)
	} else {
		fmt.Println("\nSession: anonymous")
	}

	return nil
}
