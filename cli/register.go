package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookbazaar/app/utils/validator"
)

var registerCmd = &cobra.Command{
	Use:   "register <username> <email>",
	Short: "Create an account and sign in",
	Long: `Register a new BookBazaar account. On success the session token is
stored locally, the same as a login.

Examples:
  bazaarctl register reader reader@example.com`,
	Args: cobra.ExactArgs(2),
	RunE: runRegister,
}

func init() {
	rootCmd.AddCommand(registerCmd)

	registerCmd.Flags().String("password", "", "password (prefer the prompt or --password-stdin)")
	registerCmd.Flags().Bool("password-stdin", false, "read the password from stdin")
}

func runRegister(cmd *cobra.Command, args []string) error {
	username, email := args[0], args[1]
	if !validator.IsValidUsername(username) {
		return fmt.Errorf("%q is not a valid username: use 3-30 letters, numbers, dots, hyphens or underscores", username)
	}
	if !validator.IsValidEmail(email) {
		return fmt.Errorf("%q is not a valid email address", email)
	}

	password, err := resolvePassword(cmd)
	if err != nil {
		return err
	}

	app, err := newAppContext()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Session.Register(cmd.Context(), username, email, password); err != nil {
		return fmt.Errorf("registration failed")
	}

	identity := app.Session.Identity()
	if identity != nil {
		printer.Print("Welcome, %s. You are signed in as %s.", printer.Bold(identity.Username), identity.Email)
	}
	return nil
}
