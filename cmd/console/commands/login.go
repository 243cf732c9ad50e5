package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in against the identity issuer",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := app.sessions.Login(cmd.Context(), loginEmail, loginPassword)
		if err != nil {
			return err
		}

		fmt.Println(okStyle.Render("Logged in") + mutedStyle.Render(fmt.Sprintf(" as %s (%s)", sess.User.Name, sess.User.Role)))
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "account email")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(loginCmd)
}
