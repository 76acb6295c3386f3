package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/shopdesk/app/services"
	"github.com/shashiranjanraj/shopdesk/internal/kernel"
)

var (
	userPasswordFlag string
	userRoleFlag     string
)

// shopdesk user:create <username>
var userCreateCmd = &cobra.Command{
	Use:   "user:create <username>",
	Short: "Create a user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withKernel(cmd, func(ctx context.Context, k *kernel.Kernel) error {
			u, err := k.Users.Create(ctx, services.CreateUserInput{
				Username: args[0],
				Password: userPasswordFlag,
				Role:     userRoleFlag,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s) id=%s\n", u.Username, u.Role, u.ID)
			return nil
		})
	},
}

// shopdesk token:issue <username>
var tokenIssueCmd = &cobra.Command{
	Use:   "token:issue <username>",
	Short: "Print a bearer token for an existing user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withKernel(cmd, func(ctx context.Context, k *kernel.Kernel) error {
			u, err := k.Users.ReadOne(ctx, args[0])
			if err != nil {
				return err
			}
			token, err := k.Auth.Issue(u)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		})
	},
}

func init() {
	userCreateCmd.Flags().StringVarP(&userPasswordFlag, "password", "p", "", "Account password (required)")
	userCreateCmd.Flags().StringVarP(&userRoleFlag, "role", "r", "CUSTOMER", "CUSTOMER or ADMIN")
	_ = userCreateCmd.MarkFlagRequired("password")
}
