package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"
	"time"

	"careerspark/cmd/spark/config"
	"careerspark/cmd/spark/flow"
	"careerspark/internal/api"
	"careerspark/internal/logging"
	"careerspark/internal/quiz"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

var (
	// Global flags
	verbose    bool
	backendURL string
	userID     string

	// Logger
	logger *zap.Logger
)

// rootCmd launches the interactive journey.
var rootCmd = &cobra.Command{
	Use:   "spark",
	Short: "CareerSpark - find the creative career that fits you",
	Long: `CareerSpark guides you from "I make things" to "this is my role":

  1. Share your creative work and interests
  2. Answer a short personality quiz
  3. Watch career agents debate your best role, live
  4. Talk to a virtual mentor and try the role hands-on

Run without arguments to start the interactive journey.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The TUI owns the terminal, so the root command logs to a file;
		// subcommands log to stderr like any CLI.
		if cmd == cmd.Root() {
			dir, err := config.Dir()
			if err != nil {
				return fmt.Errorf("resolve config directory: %w", err)
			}
			logger, err = logging.NewFileLogger(dir, verbose)
			if err != nil {
				return fmt.Errorf("initialize logger: %w", err)
			}
			return nil
		}

		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runJourney()
	},
}

// healthCmd pings the backend.
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the analysis backend is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := newClient()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		status, err := client.Health(ctx)
		if err != nil {
			return fmt.Errorf("backend unreachable: %s", api.Remediation(err))
		}
		fmt.Printf("backend status: %s (%s)\n", status.Status, status.Timestamp)
		return nil
	},
}

// Default categories the mentors command fans out over when none are
// given.
var defaultCategories = []string{
	"Business & Management",
	"Sport",
	"Music",
	"Film/TV",
	"VFX/Animation",
	"Writing & Journalism",
}

// mentorsCmd lists peer mentors, fetching all requested categories
// concurrently.
var mentorsCmd = &cobra.Command{
	Use:   "mentors [category...]",
	Short: "List peer mentors for one or more career categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := newClient()
		if err != nil {
			return err
		}

		categories := args
		if len(categories) == 0 {
			categories = defaultCategories
		}
		limit, _ := cmd.Flags().GetInt("limit")

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		var mu sync.Mutex
		results := make(map[string][]api.PeerMentor)

		g, gctx := errgroup.WithContext(ctx)
		for _, category := range categories {
			category := category
			g.Go(func() error {
				mentors, err := client.PeerMentors(gctx, category, limit)
				if err != nil {
					return fmt.Errorf("%s: %w", category, err)
				}
				mu.Lock()
				results[category] = mentors
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		names := make([]string, 0, len(results))
		for name := range results {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("%s:\n", name)
			if len(results[name]) == 0 {
				fmt.Println("  (no mentors yet)")
				continue
			}
			for _, mentor := range results[name] {
				fmt.Printf("  %s - %s", mentor.Name, mentor.Role)
				if mentor.Highlight != "" {
					fmt.Printf(" (%s)", mentor.Highlight)
				}
				fmt.Println()
			}
		}
		return nil
	},
}

// themeCmd shows or sets the persisted color theme.
var themeCmd = &cobra.Command{
	Use:       "theme [light|dark]",
	Short:     "Show or set the UI color theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{config.ThemeLight, config.ThemeDark},
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.NewService()
		if err != nil {
			logger.Warn("config load failed, using defaults", zap.Error(err))
		}
		if len(args) == 0 {
			fmt.Println(settings.Current().Theme)
			return nil
		}
		theme := args[0]
		if theme != config.ThemeLight && theme != config.ThemeDark {
			return fmt.Errorf("unknown theme %q (use %s or %s)", theme, config.ThemeLight, config.ThemeDark)
		}
		if err := settings.SetTheme(theme); err != nil {
			return fmt.Errorf("save theme: %w", err)
		}
		fmt.Printf("theme set to %s\n", theme)
		return nil
	},
}

// newClient builds the settings service and API client shared by the
// subcommands.
func newClient() (*config.Service, *api.Client, error) {
	settings, err := config.NewService()
	if err != nil {
		logger.Warn("config load failed, using defaults", zap.Error(err))
	}
	settings.Override(backendURL, userID)
	return settings, api.NewClient(settings.Current().BackendURL, logger), nil
}

// runJourney starts the interactive TUI.
func runJourney() error {
	settings, client, err := newClient()
	if err != nil {
		return err
	}

	questions, err := quiz.LoadBank()
	if err != nil {
		return fmt.Errorf("load question bank: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	model := flow.NewModel(ctx, client, settings, questions, logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run UI: %w", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", "", "analysis backend URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "", "user ID sent to the backend (overrides config)")

	mentorsCmd.Flags().Int("limit", 0, "max mentors per category (0 = backend default)")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(mentorsCmd)
	rootCmd.AddCommand(themeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
