package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zonagamer/console/internal/pkg/roles"
)

var (
	registerName     string
	registerEmail    string
	registerPassword string
	registerRole     string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := app.sessions.Register(cmd.Context(), registerName, registerEmail, registerPassword, registerRole)
		if err != nil {
			return err
		}

		fmt.Println(okStyle.Render("Account created") + mutedStyle.Render(fmt.Sprintf(" for %s (%s)", sess.User.Name, sess.User.Role)))
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVarP(&registerName, "name", "n", "", "display name")
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "account email")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "account password")
	registerCmd.Flags().StringVarP(&registerRole, "role", "r", roles.RoleUser, "requested role")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(registerCmd)
}
