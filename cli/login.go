package cli

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"bookbazaar/app/utils/validator"
)

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Sign in and store the session locally",
	Long: `Authenticate against the BookBazaar server and persist the session
token so subsequent commands act as the signed-in user.

The password is read from the --password flag, the BAZAAR_PASSWORD
environment variable, or an interactive prompt, in that order.

Examples:
  bazaarctl login reader@example.com
  bazaarctl login reader@example.com --password-stdin < secret.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().String("password", "", "password (prefer the prompt or --password-stdin)")
	loginCmd.Flags().Bool("password-stdin", false, "read the password from stdin")
}

func runLogin(cmd *cobra.Command, args []string) error {
	email := args[0]
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

	if err := app.Session.Login(cmd.Context(), email, password); err != nil {
		// The notifier already surfaced the failure to the user
		return fmt.Errorf("login failed")
	}

	identity := app.Session.Identity()
	if identity != nil {
		printer.Print("Signed in as %s (%s)", printer.Bold(identity.Username), identity.Email)
	}
	return nil
}

func resolvePassword(cmd *cobra.Command) (string, error) {
	if password, _ := cmd.Flags().GetString("password"); password != "" {
		return password, nil
	}

	if fromStdin, _ := cmd.Flags().GetBool("password-stdin"); fromStdin {
		var sb strings.Builder
		buf := make([]byte, 4096)
		for {
			n, err := os.Stdin.Read(buf)
			sb.Write(buf[:n])
			if err != nil {
				break
			}
		}
		return strings.TrimSpace(sb.String()), nil
	}

	if password := os.Getenv("BAZAAR_PASSWORD"); password != "" {
		return password, nil
	}

	fmt.Fprint(os.Stderr, "Password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(raw), nil
}
