package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAccess("whoami", ""); err != nil {
			return err
		}

		sess := app.sessions.Current()
		fmt.Println(titleStyle.Render(sess.User.Name))
		fmt.Printf("  email: %s\n", sess.User.Email)
		fmt.Printf("  role:  %s\n", sess.User.Role)
		fmt.Printf("  id:    %d\n", sess.User.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
