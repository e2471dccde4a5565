package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tkdr/teamgate/internal/model"
)

func newPlayersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "players",
		Short: "Player record commands",
	}

	cmd.AddCommand(newPlayersListCmd())
	cmd.AddCommand(newPlayersBanCmd())
	cmd.AddCommand(newPlayersUnbanCmd())

	return cmd
}

func newPlayersListCmd() *cobra.Command {
	var banned bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List player records",
		RunE: func(cmd *cobra.Command, args []string) error {
			players, err := store.ListByBanned(cmd.Context(), banned)
			if err != nil {
				return err
			}

			out := NewOutput(output)
			out.PrintPlayers(players)
			return nil
		},
	}

	cmd.Flags().BoolVar(&banned, "banned", false, "List banned records instead of active ones")

	return cmd
}

func newPlayersBanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ban <user-id>",
		Short: "Flag a player record as banned",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := model.UserID(args[0])
			if err := store.SetBanned(cmd.Context(), userID, true); err != nil {
				return fmt.Errorf("banning %s: %w", userID, err)
			}

			out := NewOutput(output)
			out.PrintMessage(fmt.Sprintf("banned %s", userID))
			return nil
		},
	}
}

func newPlayersUnbanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unban <user-id>",
		Short: "Clear the banned flag on a player record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := model.UserID(args[0])
			if err := store.SetBanned(cmd.Context(), userID, false); err != nil {
				return fmt.Errorf("unbanning %s: %w", userID, err)
			}

			out := NewOutput(output)
			out.PrintMessage(fmt.Sprintf("unbanned %s", userID))
			return nil
		},
	}
}
