package main

import (
	"context"
	"os"

	"vkgraph/internal/crawler"
	"vkgraph/internal/graph"
	"vkgraph/internal/vk"
	"vkgraph/pkg/config"
	apperrors "vkgraph/pkg/errors"
	"vkgraph/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl [user-id-or-screen-name]",
		Short: "Crawl the VK graph from a root user into Neo4j",
		Long: `Crawl wipes the Neo4j database, walks the VK social graph depth-first
from the root user up to the depth limit and stores users, FRIEND edges,
groups and SUBSCRIBED_TO edges. After the crawl it prints all analytic
queries.

Credentials are taken from VK_ACCESS_TOKEN / VK_SERVICE_TOKEN (and a
.env file if present); anything missing is prompted for interactively.

Examples:
  # Crawl two levels from a user id
  vkgraph crawl --depth-limit 2 12345

  # Crawl by screen name with smaller per-user limits
  vkgraph crawl --friends-limit 50 --subscriptions-limit 100 durov`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCrawlCmd,
	}

	cmd.Flags().IntP("depth-limit", "d", config.DefaultDepthLimit,
		"Depth limit for data collection (root user is depth 1)")
	cmd.Flags().IntP("friends-limit", "f", config.DefaultFriendsLimit,
		"Friends fetched per user")
	cmd.Flags().IntP("subscriptions-limit", "s", config.DefaultSubscriptionsLimit,
		"Group subscriptions kept per user")
	cmd.Flags().StringP("uri", "u", config.DefaultNeo4jURI,
		"Neo4j connection URI")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if err := logger.Init(verbose); err != nil {
		return err
	}
	defer logger.Sync()
	log := logger.Get()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyCrawlFlags(cmd, cfg)

	root := ""
	if len(args) == 1 {
		root = args[0]
	}
	root, err = resolveCrawlInputs(cfg, root, prompt)
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, err := graph.Connect(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(ctx); err != nil {
			log.Error("failed to close Neo4j connection", zap.Error(err))
		}
	}()
	log.Info("connected to Neo4j", zap.String("uri", cfg.Neo4jURI))

	// Fresh crawl: clear everything left over from the previous run.
	if err := store.Wipe(ctx); err != nil {
		return err
	}

	client := vk.NewClient(cfg.AccessToken, cfg.ServiceToken)
	subs := vk.NewSubscriptionCollector(client)
	c := crawler.New(client, subs, store, crawler.Limits{
		Depth:         cfg.DepthLimit,
		Friends:       cfg.FriendsLimit,
		Subscriptions: cfg.SubscriptionsLimit,
	})

	if err := c.Run(ctx, root); err != nil {
		return err
	}
	log.Info("crawl finished", zap.String("root", root))

	return store.RunAnalytics(ctx, "", os.Stdout)
}

// resolveCrawlInputs prompts for the credentials and root user still
// missing after environment, .env file and flags, then checks that
// everything required is present. The Neo4j password is prompted for
// alongside the VK tokens so a bare invocation does not fail auth.
func resolveCrawlInputs(cfg *config.Config, root string, ask func(string) string) (string, error) {
	if cfg.AccessToken == "" {
		cfg.AccessToken = ask("VK access token")
	}
	if cfg.ServiceToken == "" {
		cfg.ServiceToken = ask("VK service token")
	}
	if root == "" {
		root = ask("VK user id or screen name")
	}
	if cfg.Neo4jPassword == "" {
		cfg.Neo4jPassword = ask("Neo4j password")
	}

	if cfg.AccessToken == "" {
		return "", apperrors.NewConfigMissingRequired("VK_ACCESS_TOKEN")
	}
	if cfg.ServiceToken == "" {
		return "", apperrors.NewConfigMissingRequired("VK_SERVICE_TOKEN")
	}
	if root == "" {
		return "", apperrors.NewConfigMissingRequired("root user id")
	}
	return root, nil
}

// applyCrawlFlags overrides config values with explicitly set flags.
func applyCrawlFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("depth-limit") {
		cfg.DepthLimit, _ = cmd.Flags().GetInt("depth-limit")
	}
	if cmd.Flags().Changed("friends-limit") {
		cfg.FriendsLimit, _ = cmd.Flags().GetInt("friends-limit")
	}
	if cmd.Flags().Changed("subscriptions-limit") {
		cfg.SubscriptionsLimit, _ = cmd.Flags().GetInt("subscriptions-limit")
	}
	if cmd.Flags().Changed("uri") {
		cfg.Neo4jURI, _ = cmd.Flags().GetString("uri")
	}
}
