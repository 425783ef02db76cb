package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Manage your arena identity",
		Long: `Create or sign in to the identity your arena actions run as.

The session token issued here stands in for a wallet signature: every
join, fight, heal, and decrypt is attributed to it. Tokens are stored
at ~/.veilarena/token (override with VEILARENA_TOKEN_FILE).`,
	}

	cmd.AddCommand(newPlayerGuestCmd())
	cmd.AddCommand(newPlayerRegisterCmd())
	cmd.AddCommand(newPlayerLoginCmd())
	cmd.AddCommand(newPlayerLogoutCmd())
	cmd.AddCommand(newPlayerMeCmd())

	return cmd
}

// adoptSession persists the freshly minted token so subsequent arena
// commands act as this player, then prints the identity.
func adoptSession(result AuthResult) error {
	if err := cfg.SaveToken(result.SessionToken); err != nil {
		return fmt.Errorf("failed to save session token: %w", err)
	}

	out := NewOutput(cfg.Output)
	out.Print(result)
	return nil
}

func newPlayerGuestCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "guest",
		Short: "Enter the arena as a guest challenger",
		Long: `Create a throwaway identity and start playing immediately.

Without --name the server assigns a Challenger-XXXX handle. Guest
identities cannot be recovered once the token is lost.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{}
			if name != "" {
				req["display_name"] = name
			}

			var result AuthResult
			if err := client.Post("/api/v1/players/guest", req, &result); err != nil {
				return err
			}
			return adoptSession(result)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (optional, server assigns one otherwise)")

	return cmd
}

func newPlayerRegisterCmd() *cobra.Command {
	var name, user, pass string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a persistent arena account",
		Long: `Register a username and password so the identity survives
losing the session token. Usernames are case-insensitive.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"display_name": name,
				"username":     user,
				"password":     pass,
			}

			var result AuthResult
			if err := client.Post("/api/v1/players/register", req, &result); err != nil {
				return err
			}
			return adoptSession(result)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name shown in the arena")
	cmd.Flags().StringVar(&user, "user", "", "Username")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (8 characters minimum)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newPlayerLoginCmd() *cobra.Command {
	var user, pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to an existing arena account",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"username": user,
				"password": pass,
			}

			var result AuthResult
			if err := client.Post("/api/v1/players/login", req, &result); err != nil {
				return err
			}
			return adoptSession(result)
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username")
	cmd.Flags().StringVar(&pass, "pass", "", "Password")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newPlayerLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session and forget the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Best effort: revoke server-side even if the token file
			// turns out to be stale.
			if err := client.Post("/api/v1/players/logout", nil, nil); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: server-side revoke failed: %v\n", err)
			}

			if err := cfg.ClearToken(); err != nil {
				return fmt.Errorf("failed to remove token file: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Logged out")
			return nil
		},
	}
}

func newPlayerMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the player this session acts as",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player

			if err := client.Get("/api/v1/players/me", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
