package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var apikeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Manage the catalog API key",
	Long: `An API key grants read access to the catalog without a full login,
for scripts and integrations. Generating a new key replaces the
previous one.`,
}

var apikeyGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new API key",
	Args:  cobra.NoArgs,
	RunE:  runAPIKeyGenerate,
}

var apikeyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored API key",
	Args:  cobra.NoArgs,
	RunE:  runAPIKeyShow,
}

func init() {
	rootCmd.AddCommand(apikeyCmd)
	apikeyCmd.AddCommand(apikeyGenerateCmd)
	apikeyCmd.AddCommand(apikeyShowCmd)
}

func runAPIKeyGenerate(cmd *cobra.Command, args []string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireSession(cmd); err != nil {
		return err
	}

	if err := app.Session.GenerateAPIKey(cmd.Context()); err != nil {
		return fmt.Errorf("API key generation failed")
	}

	printer.Print("%s", app.Session.APIKey())
	return nil
}

func runAPIKeyShow(cmd *cobra.Command, args []string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireSession(cmd); err != nil {
		return err
	}

	key := app.Session.APIKey()
	if key == "" {
		printer.Print("No API key stored. Run %s to create one.", printer.Bold("bazaarctl apikey generate"))
		return nil
	}
	printer.Print("%s", key)
	return nil
}
