package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for vkgraph.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vkgraph",
		Short: "Crawl the VK social graph into Neo4j and analyze it",
		Long: `vkgraph collects users, friendships and group memberships from the
VK API and materializes them as a property graph in Neo4j, then answers
aggregate queries (user/group totals, top users, top groups, mutual
friend pairs) over the stored graph.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewQueryCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// prompt reads one line from stdin after printing the label. Used to
// collect credentials and the root user id when they are not supplied
// via environment or flags.
func prompt(label string) string {
	fmt.Printf("%s: ", label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}
