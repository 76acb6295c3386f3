// Command shopdesk serves the shopdesk REST API and manages its data.
//
//	shopdesk serve             # HTTP API + gRPC health
//	shopdesk route:list        # list API routes
//	shopdesk migrate           # run SQL migrations
//	shopdesk migrate:rollback
//	shopdesk migrate:status
//	shopdesk seed              # admin user + starter catalogue
//	shopdesk user:create       # create an account
//	shopdesk token:issue       # mint a bearer token for an account
//	shopdesk orders:export     # write orders to the storage disk
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "shopdesk",
	Short:         "shopdesk: users, products and orders over REST",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)

	// Accounts
	rootCmd.AddCommand(userCreateCmd)
	rootCmd.AddCommand(tokenIssueCmd)

	// Orders
	rootCmd.AddCommand(ordersExportCmd)
}
