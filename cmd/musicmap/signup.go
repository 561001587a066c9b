// Signup command for the musicmap CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	signupEmail    string
	signupPassword string
	signupName     string
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and sign in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if signupEmail == "" || signupPassword == "" || signupName == "" {
			fmt.Fprintln(os.Stderr, "signup: --email, --password, and --name are required")
			os.Exit(exitUserError)
		}

		backend, cfg, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "signup:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		svc, err := newIdentity(cmd.Context(), backend, cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, "signup:", err)
			os.Exit(exitSysError)
		}

		session, err := svc.SignUp(cmd.Context(), signupEmail, signupPassword, signupName)
		if err != nil {
			return fmt.Errorf("sign up: %w", err)
		}

		fmt.Printf("signed up as %s (%s)\n", session.DisplayName, session.Email)
		return nil
	},
}

func init() {
	signupCmd.Flags().StringVar(&signupEmail, "email", "", "account email (required)")
	signupCmd.Flags().StringVar(&signupPassword, "password", "", "account password (required)")
	signupCmd.Flags().StringVar(&signupName, "name", "", "public display name (required)")
}
