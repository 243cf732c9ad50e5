package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zonagamer/console/internal/pkg/models"
	"github.com/zonagamer/console/internal/pkg/roles"
)

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "Query and manage game sessions",
}

var gamesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all games",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAccess("games list", ""); err != nil {
			return err
		}

		list, err := app.games.List(cmd.Context())
		if err != nil {
			return err
		}

		if len(list) == 0 {
			fmt.Println(mutedStyle.Render("No games found"))
			return nil
		}

		fmt.Println(titleStyle.Render(fmt.Sprintf("%-6s %-30s %-12s %s", "ID", "NAME", "STATUS", "PLAYERS")))
		for _, g := range list {
			fmt.Printf("%-6d %-30s %-12s %d\n", g.ID, g.Name, renderStatus(g.Status), g.Players)
		}
		return nil
	},
}

var gamesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one game",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAccess("games get", ""); err != nil {
			return err
		}

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid game id %q", args[0])
		}

		game, err := app.games.Get(cmd.Context(), id)
		if err != nil {
			return err
		}

		fmt.Println(titleStyle.Render(game.Name))
		fmt.Printf("  id:      %d\n", game.ID)
		fmt.Printf("  status:  %s\n", renderStatus(game.Status))
		fmt.Printf("  players: %d\n", game.Players)
		if game.GameType != "" {
			fmt.Printf("  type:    %s\n", game.GameType)
		}
		return nil
	},
}

var gamesPauseCmd = &cobra.Command{
	Use:   "pause <id>",
	Short: "Pause a game for maintenance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAccess("games pause", roles.RoleAdmin); err != nil {
			return err
		}

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid game id %q", args[0])
		}

		game, err := app.games.UpdateStatus(cmd.Context(), id, models.GameStatusPaused)
		if err != nil {
			return err
		}

		fmt.Println(warnStyle.Render("Paused") + mutedStyle.Render(fmt.Sprintf(" game %d (%s)", game.ID, game.Name)))
		return nil
	},
}

func renderStatus(status string) string {
	switch status {
	case models.GameStatusActive:
		return okStyle.Render(status)
	case models.GameStatusPaused:
		return warnStyle.Render(status)
	case models.GameStatusCancelled:
		return errorStyle.Render(status)
	default:
		return mutedStyle.Render(status)
	}
}

func init() {
	gamesCmd.AddCommand(gamesListCmd)
	gamesCmd.AddCommand(gamesGetCmd)
	gamesCmd.AddCommand(gamesPauseCmd)
	rootCmd.AddCommand(gamesCmd)
}
