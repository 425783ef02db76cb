package cli

import (
	"github.com/spf13/cobra"
)

func newArenaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "arena",
		Short: "Arena gameplay commands",
	}

	cmd.AddCommand(newArenaJoinCmd())
	cmd.AddCommand(newArenaFightCmd())
	cmd.AddCommand(newArenaHealCmd())
	cmd.AddCommand(newArenaStatsCmd())
	cmd.AddCommand(newArenaJoinedCmd())
	cmd.AddCommand(newArenaBalanceCmd())
	cmd.AddCommand(newArenaHealthCmd())
	cmd.AddCommand(newArenaDecryptCmd())

	return cmd
}

func newArenaJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join",
		Short: "Join the arena",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result JoinResult

			if err := client.Post("/api/v1/arena/join", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newArenaFightCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fight",
		Short: "Fight a monster",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result FightResult

			if err := client.Post("/api/v1/arena/fight", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newArenaHealCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "heal",
		Short: "Attempt to heal (costs 10 gold if it takes effect)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HealResult

			if err := client.Post("/api/v1/arena/heal", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newArenaStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show your battle statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Stats

			if err := client.Get("/api/v1/arena/stats", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newArenaJoinedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "joined",
		Short: "Check whether you have joined the arena",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result JoinedResult

			if err := client.Get("/api/v1/arena/joined", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newArenaBalanceCmd() *cobra.Command {
	var decrypt bool

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show your encrypted balance handle",
		RunE: func(cmd *cobra.Command, args []string) error {
			var handle CiphertextResult

			if err := client.Get("/api/v1/arena/balance", &handle); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if !decrypt {
				out.Print(handle)
				return nil
			}

			var result DecryptResult
			req := map[string]string{"handle": handle.Handle}
			if err := client.Post("/api/v1/arena/decrypt", req, &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&decrypt, "decrypt", false, "Decrypt the balance using your grant")

	return cmd
}

func newArenaHealthCmd() *cobra.Command {
	var decrypt bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Show your encrypted health handle",
		RunE: func(cmd *cobra.Command, args []string) error {
			var handle CiphertextResult

			if err := client.Get("/api/v1/arena/health", &handle); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if !decrypt {
				out.Print(handle)
				return nil
			}

			var result DecryptResult
			req := map[string]string{"handle": handle.Handle}
			if err := client.Post("/api/v1/arena/decrypt", req, &result); err != nil {
				return err
			}

			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&decrypt, "decrypt", false, "Decrypt the health using your grant")

	return cmd
}

func newArenaDecryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt <handle>",
		Short: "Decrypt a ciphertext handle you hold a grant for",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result DecryptResult

			req := map[string]string{"handle": args[0]}
			if err := client.Post("/api/v1/arena/decrypt", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
