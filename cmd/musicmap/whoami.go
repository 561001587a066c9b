// Whoami command prints the current session.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kc95kc/music-map/internal/identity"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account, if any",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, cfg, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "whoami:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		svc, err := newIdentity(cmd.Context(), backend, cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, "whoami:", err)
			os.Exit(exitSysError)
		}

		store := identity.NewStore(svc, backend.Accounts())
		if err := store.Init(cmd.Context()); err != nil {
			return fmt.Errorf("resolve session: %w", err)
		}
		defer store.Dispose()

		session := store.Current()
		if session == nil {
			fmt.Println("not signed in")
			return nil
		}

		if flagJSON {
			return printJSON(session)
		}
		if session.DisplayName != "" {
			fmt.Printf("%s (%s)\n", session.DisplayName, session.Email)
		} else {
			fmt.Println(session.Email)
		}
		return nil
	},
}
