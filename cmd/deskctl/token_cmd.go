package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/infradesk/infra-desk/internal/auth"
	"github.com/spf13/cobra"
)

var knownRoles = map[string]bool{
	auth.RoleAdmin:   true,
	auth.RoleStaff:   true,
	auth.RoleViewer:  true,
	auth.RoleService: true,
}

func newTokenCmd(a *App) *cobra.Command {
	var (
		username string
		userID   string
		name     string
		email    string
		roles    []string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token signed with JWT_SECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, r := range roles {
				if !knownRoles[r] {
					return fmt.Errorf("unknown role %q", r)
				}
			}

			id := uuid.New()
			if userID != "" {
				parsed, err := uuid.Parse(userID)
				if err != nil {
					return fmt.Errorf("invalid --user-id: %w", err)
				}
				id = parsed
			}

			validator := auth.NewJWTValidator(&a.Config.JWT)
			token, expiresAt, err := validator.IssueToken(&auth.UserContext{
				UserID:      id,
				Username:    username,
				DisplayName: name,
				Email:       email,
				Roles:       roles,
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", expiresAt.UTC().Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username carried in the token")
	cmd.Flags().StringVar(&userID, "user-id", "", "Subject UUID (random when omitted)")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringSliceVar(&roles, "roles", []string{auth.RoleStaff}, "Comma-separated roles (admin, staff, viewer, service)")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}
