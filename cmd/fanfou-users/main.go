package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	client "github.com/fanfou-go/client"
	"github.com/fanfou-go/client/internal/config"
)

var baseURL string
var debug bool

const requestTimeout = 30 * time.Second

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fanfou-users",
		Short:         "Look up Fanfou user profiles, followers and friends",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.InitLogger(cmd.ErrOrStderr())
			if debug {
				config.SetLogLevel(zerolog.DebugLevel)
				log.Debug().Msg("debug logging enabled")
			} else {
				config.SetLogLevel(zerolog.InfoLevel)
			}
		},
	}

	defaultURL := getEnv("FANFOU_BASE_URL", client.DefaultBaseURL)
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", defaultURL, "Base URL of the Fanfou API")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Log HTTP traffic and verbose output")

	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newListCmd("followers", "List the accounts following a user", (*client.Client).GetUserFollowers, (*client.Client).WalkFollowers))
	rootCmd.AddCommand(newListCmd("friends", "List the accounts a user follows", (*client.Client).GetUserFriends, (*client.Client).WalkFriends))
	rootCmd.AddCommand(newLookupCmd())

	return rootCmd
}

// newClient builds a client from FANFOU_* variables; the flags win over the
// environment.
func newClient() (*client.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if debug {
		cfg.Debug = true
	}
	config.SetLogLevel(cfg.Level())
	cfg.BaseURL = baseURL
	cfg.Log()

	return client.New(baseURL, client.OptionsFromConfig(cfg)...)
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a user's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			start := time.Now()
			user, err := c.GetUserProfile(ctx, args[0])
			if err != nil {
				log.Error().Err(err).Str("id", args[0]).Dur("elapsed", time.Since(start)).Msg("show user failed")
				return err
			}
			return printJSON(cmd.OutOrStdout(), user)
		},
	}
}

type pageFunc func(*client.Client, context.Context, string, client.Paging) (*client.ResponseList, error)
type walkFunc func(*client.Client, context.Context, string, client.Paging, func(client.User) error) error

func newListCmd(name, short string, page pageFunc, walk walkFunc) *cobra.Command {
	var paging client.Paging
	var all bool

	cmd := &cobra.Command{
		Use:   name + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			defer c.Close()

			id := args[0]
			if !all {
				ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
				defer cancel()
				list, err := page(c, ctx, id, paging)
				if err != nil {
					log.Error().Err(err).Str("id", id).Int("page", paging.Page).Msgf("list %s failed", name)
					return err
				}
				if list.RateLimit != nil {
					log.Debug().Int("remaining", list.RateLimit.Remaining).Time("reset", list.RateLimit.Reset).Msg("rate limit")
				}
				return printJSON(cmd.OutOrStdout(), list)
			}

			users := []client.User{}
			err = walk(c, cmd.Context(), id, paging, func(u client.User) error {
				users = append(users, u)
				return nil
			})
			if err != nil {
				log.Error().Err(err).Str("id", id).Int("collected", len(users)).Msgf("walk %s failed", name)
				return err
			}
			return printJSON(cmd.OutOrStdout(), users)
		},
	}

	cmd.Flags().IntVar(&paging.Page, "page", 0, "Page number (1-based)")
	cmd.Flags().IntVar(&paging.Count, "count", 0, "Users per page")
	cmd.Flags().StringVar(&paging.SinceID, "since-id", "", "Only users newer than this id")
	cmd.Flags().StringVar(&paging.MaxID, "max-id", "", "Only users up to this id")
	cmd.Flags().BoolVar(&all, "all", false, "Follow pages until the listing runs out")
	return cmd
}

func newLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <id>...",
		Short: "Fetch several profiles concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			users, err := c.LookupUsers(ctx, args)
			if err != nil {
				log.Error().Err(err).Strs("ids", args).Msg("lookup failed")
				return err
			}
			return printJSON(cmd.OutOrStdout(), users)
		},
	}
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
