// Login and logout commands for the musicmap CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with email and password",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if loginEmail == "" || loginPassword == "" {
			fmt.Fprintln(os.Stderr, "login: --email and --password are required")
			os.Exit(exitUserError)
		}

		backend, cfg, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "login:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		svc, err := newIdentity(cmd.Context(), backend, cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, "login:", err)
			os.Exit(exitSysError)
		}

		session, err := svc.SignIn(cmd.Context(), loginEmail, loginPassword)
		if err != nil {
			return fmt.Errorf("sign in: %w", err)
		}

		fmt.Printf("signed in as %s\n", session.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and discard the stored credential",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, cfg, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "logout:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		svc, err := newIdentity(cmd.Context(), backend, cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, "logout:", err)
			os.Exit(exitSysError)
		}

		if err := svc.SignOut(cmd.Context()); err != nil {
			return fmt.Errorf("sign out: %w", err)
		}

		fmt.Println("signed out")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email (required)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password (required)")
}
