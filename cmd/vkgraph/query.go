package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"vkgraph/internal/graph"
	"vkgraph/pkg/config"
	"vkgraph/pkg/logger"

	"github.com/spf13/cobra"
)

// NewQueryCmd creates the query command.
func NewQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query [query-name]",
		Short: "Run analytic queries over the stored graph",
		Long: fmt.Sprintf(`Query runs one of the fixed analytic reads over the graph already in
Neo4j, without crawling. With no argument all queries run in order.

Available queries: %s`, strings.Join(graph.AllQueries, ", ")),
		Args: cobra.MaximumNArgs(1),
		RunE: runQueryCmd,
	}

	cmd.Flags().StringP("uri", "u", config.DefaultNeo4jURI,
		"Neo4j connection URI")

	return cmd
}

// runQueryCmd executes the query command.
func runQueryCmd(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if err := logger.Init(verbose); err != nil {
		return err
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("uri") {
		cfg.Neo4jURI, _ = cmd.Flags().GetString("uri")
	}

	name := ""
	if len(args) == 1 {
		name = args[0]
		if !graph.IsKnownQuery(name) {
			return fmt.Errorf("unknown query type %q (available: %s)",
				name, strings.Join(graph.AllQueries, ", "))
		}
	}

	if cfg.Neo4jPassword == "" {
		cfg.Neo4jPassword = prompt("Neo4j password")
	}

	ctx := context.Background()
	store, err := graph.Connect(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	return store.RunAnalytics(ctx, name, os.Stdout)
}
