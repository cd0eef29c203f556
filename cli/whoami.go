package cli

import (
	"github.com/spf13/cobra"

	"bookbazaar/client/session"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in identity",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Session.Resolve(cmd.Context()); err != nil {
		logger.Debug("session resolve failed", "error", err)
	}

	if app.Session.State() != session.StateAuthenticated {
		printer.Print("Not signed in. Run %s first.", printer.Bold("bazaarctl login <email>"))
		return nil
	}

	identity := app.Session.Identity()
	printer.Print("Username: %s", printer.Bold(identity.Username))
	printer.Print("Email:    %s", identity.Email)
	if identity.IsAdmin {
		printer.Print("Role:     admin")
	} else {
		printer.Print("Role:     customer")
	}
	if app.Session.APIKey() != "" {
		printer.Print("API key:  %s", printer.Dim(app.Session.APIKey()))
	}
	return nil
}
