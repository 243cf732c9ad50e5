package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Destroy the stored session",
	Run: func(cmd *cobra.Command, args []string) {
		app.sessions.Logout()
		fmt.Println(okStyle.Render("Logged out"))
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
