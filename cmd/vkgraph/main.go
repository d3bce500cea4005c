// Package main provides the entry point for the vkgraph CLI.
//
// vkgraph crawls the public VK social graph (users, friendships, group
// memberships) into a Neo4j property graph and answers a small set of
// aggregate queries over it.
//
// Usage:
//
//	vkgraph crawl [user-id-or-screen-name]
//	vkgraph query [query-name]
//
// See --help for all available options.
package main

// main is the entry point for vkgraph.
func main() {
	Execute()
}
