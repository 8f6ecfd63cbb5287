// Package inpactctl implements the operator CLI: schema migration, channel
// lookup, bio refinement, account seeding and translation coverage.
package inpactctl

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/louisbranch/inpact/internal/platform/config"
	"github.com/louisbranch/inpact/internal/platform/i18n/catalog"
	"github.com/louisbranch/inpact/internal/services/auth/credentials"
	onboardingapp "github.com/louisbranch/inpact/internal/services/onboarding/app"
	"github.com/louisbranch/inpact/internal/services/onboarding/storage"
	"github.com/louisbranch/inpact/internal/services/onboarding/youtube"
	"github.com/spf13/cobra"
)

// Config holds the environment defaults shared by every subcommand.
type Config struct {
	DBDriver string `env:"INPACT_DB_DRIVER" envDefault:"sqlite"`
	DBPath   string `env:"INPACT_DB_PATH"   envDefault:"data/inpact.db"`
	DBDSN    string `env:"INPACT_DB_DSN"`

	YouTubeAPIKey  string `env:"INPACT_YOUTUBE_API_KEY"`
	YouTubeBaseURL string `env:"INPACT_YOUTUBE_BASE_URL"`
	RefineAPIKey   string `env:"INPACT_GEMINI_API_KEY"`
	RefineURL      string `env:"INPACT_GEMINI_URL"`
}

func (c Config) store() onboardingapp.StoreConfig {
	return onboardingapp.StoreConfig{Driver: c.DBDriver, Path: c.DBPath, DSN: c.DBDSN}
}

// openStore checks the settings the selected driver needs before opening it.
func (c Config) openStore(ctx context.Context, deps Dependencies) (storage.Store, error) {
	required := map[string]string{"INPACT_DB_PATH": c.DBPath}
	if strings.EqualFold(strings.TrimSpace(c.DBDriver), "postgres") {
		required = map[string]string{"INPACT_DB_DSN": c.DBDSN}
	}
	if err := config.RequireNonEmpty(required); err != nil {
		return nil, err
	}
	return deps.OpenStore(ctx, c.store())
}

func (c Config) clients() onboardingapp.ClientConfig {
	return onboardingapp.ClientConfig{
		YouTubeAPIKey:  c.YouTubeAPIKey,
		YouTubeBaseURL: c.YouTubeBaseURL,
		RefineAPIKey:   c.RefineAPIKey,
		RefineURL:      c.RefineURL,
	}
}

// ChannelLookup resolves a channel URL.
type ChannelLookup interface {
	LookupURL(ctx context.Context, raw string) (youtube.Channel, error)
}

// Refiner rewrites text.
type Refiner interface {
	Refine(ctx context.Context, text string) (string, error)
}

// Dependencies lets tests replace the store and clients.
type Dependencies struct {
	OpenStore  func(ctx context.Context, cfg onboardingapp.StoreConfig) (storage.Store, error)
	NewYouTube func(cfg onboardingapp.ClientConfig) ChannelLookup
	NewRefiner func(cfg onboardingapp.ClientConfig) Refiner
}

// DefaultDependencies opens real stores and clients.
func DefaultDependencies() Dependencies {
	return Dependencies{
		OpenStore:  onboardingapp.OpenStore,
		NewYouTube: func(cfg onboardingapp.ClientConfig) ChannelLookup { return onboardingapp.NewYouTube(cfg) },
		NewRefiner: func(cfg onboardingapp.ClientConfig) Refiner { return onboardingapp.NewRefiner(cfg) },
	}
}

// Execute runs the CLI with args.
func Execute(ctx context.Context, args []string, out io.Writer) error {
	root := NewRootCommand(DefaultDependencies(), out)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// NewRootCommand builds the command tree.
func NewRootCommand(deps Dependencies, out io.Writer) *cobra.Command {
	cfg := &Config{}
	root := &cobra.Command{
		Use:           "inpactctl",
		Short:         "Operate the Inpact onboarding service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			driver, _ := cmd.Flags().GetString("db-driver")
			path, _ := cmd.Flags().GetString("db-path")
			if err := config.ParseEnv(cfg); err != nil {
				return err
			}
			if cmd.Flags().Changed("db-driver") {
				cfg.DBDriver = driver
			}
			if cmd.Flags().Changed("db-path") {
				cfg.DBPath = path
			}
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(out)
	root.PersistentFlags().String("db-driver", "", "profile store driver: sqlite or postgres (default from INPACT_DB_DRIVER)")
	root.PersistentFlags().String("db-path", "", "SQLite database path (default from INPACT_DB_PATH)")

	root.AddCommand(
		migrateCmd(cfg, deps),
		youtubeCmd(cfg, deps),
		refineCmd(cfg, deps),
		accountCmd(cfg, deps),
		i18nCmd(),
	)
	return root
}

func migrateCmd(cfg *Config, deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the profile store schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := cfg.openStore(cmd.Context(), deps)
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			defer store.Close()
			fmt.Fprintf(cmd.OutOrStdout(), "migrations applied driver=%s\n", cfg.DBDriver)
			return nil
		},
	}
}

func youtubeCmd(cfg *Config, deps Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "youtube",
		Short: "YouTube channel helpers",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "lookup <url>",
		Short: "Resolve a channel URL and print its metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			channel, err := deps.NewYouTube(cfg.clients()).LookupURL(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("lookup: %s", youtube.UserMessage(err))
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "id: %s\n", channel.ID)
			fmt.Fprintf(out, "title: %s\n", channel.Title)
			fmt.Fprintf(out, "subscribers: %s\n", channel.SubscriberCount)
			fmt.Fprintf(out, "thumbnail: %s\n", channel.ThumbnailURL)
			return nil
		},
	})
	return cmd
}

func refineCmd(cfg *Config, deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "refine <text>",
		Short: "Refine a bio and print the result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			refined, err := deps.NewRefiner(cfg.clients()).Refine(cmd.Context(), text)
			if err != nil {
				return fmt.Errorf("refine: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), refined)
			return nil
		},
	}
}

func accountCmd(cfg *Config, deps Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage password accounts",
	}
	var email, password, name string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a password account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := cfg.openStore(cmd.Context(), deps)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer store.Close()
			account, err := credentials.NewService(store).SignUp(cmd.Context(), credentials.SignUpInput{
				Email:       email,
				Password:    password,
				DisplayName: name,
			})
			if err != nil {
				return fmt.Errorf("create account: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "account created id=%s email=%s\n", account.ID, account.Email)
			return nil
		},
	}
	create.Flags().StringVar(&email, "email", "", "account email")
	create.Flags().StringVar(&password, "password", "", "account password")
	create.Flags().StringVar(&name, "name", "", "display name")
	_ = create.MarkFlagRequired("email")
	_ = create.MarkFlagRequired("password")
	cmd.AddCommand(create)
	return cmd
}

func i18nCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "i18n",
		Short: "Translation catalog helpers",
	}
	var showKeys bool
	status := &cobra.Command{
		Use:   "status",
		Short: "Print translation coverage per locale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bundle, err := catalog.LoadEmbedded()
			if err != nil {
				return fmt.Errorf("i18n status: %w", err)
			}
			out := cmd.OutOrStdout()
			for _, s := range bundle.Status() {
				fmt.Fprintf(out, "%s translated=%d/%d missing=%d extra=%d completion=%.1f%%\n",
					s.Locale, s.Translated, s.BaseKeys, len(s.MissingKeys), len(s.ExtraKeys), s.Completion()*100)
				if !showKeys {
					continue
				}
				for _, key := range s.MissingKeys {
					fmt.Fprintf(out, "  missing %s\n", key)
				}
				for _, key := range s.ExtraKeys {
					fmt.Fprintf(out, "  extra %s\n", key)
				}
			}
			return nil
		},
	}
	status.Flags().BoolVar(&showKeys, "keys", false, "list missing and extra keys")
	cmd.AddCommand(status)
	return cmd
}
