package cli

import (
	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the local session",
	Long: `Forget the stored token, API key and identity. Logging out is a
local operation; it never contacts the server, and running it while
already signed out is not an error.`,
	Args: cobra.NoArgs,
	RunE: runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}
	defer app.Close()

	app.Session.Logout(cmd.Context())
	printer.Success("Signed out")
	return nil
}
