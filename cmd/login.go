package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/inovacc/odoocli/internal/application"
	"github.com/inovacc/odoocli/internal/core"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	loginURL           string
	loginDatabase      string
	loginUsername      string
	loginAPIKey        string
	loginPasswordStdin bool
	loginVerify        bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to an Odoo server",
	Long: `Log in to an Odoo server and store the session.

The password is checked with /web/session/authenticate and is never stored.
The API key is used for every later call; it is sealed in the OS keyring or
encrypted on disk depending on secrets.mode. Leave the password empty to log
in with the API key alone; it is then checked against res.users.

The URL defaults to the active profile's URL. The API key may also be given
in the ODOOCLI_API_KEY environment variable.

Examples:
  odoocli login --url https://erp.example.com --database prod --username ana
  echo "$PASSWORD" | odoocli login --database prod --username ana --password-stdin
  ODOOCLI_API_KEY=... odoocli login --database prod --username ana --verify`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringVar(&loginURL, "url", "", "Server URL (default: active profile URL)")
	loginCmd.Flags().StringVarP(&loginDatabase, "database", "d", "", "Database name")
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Login")
	loginCmd.Flags().StringVar(&loginAPIKey, "api-key", "", "API key (default: $"+application.EnvAPIKey+")")
	loginCmd.Flags().BoolVar(&loginPasswordStdin, "password-stdin", false, "Read the password from stdin")
	loginCmd.Flags().BoolVar(&loginVerify, "verify", false, "Check the API key with a res.users lookup")
}

func runLogin(cmd *cobra.Command, _ []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	url, err := app.ResolveURL(loginURL)
	if err != nil {
		if url, err = promptRequired("Server URL: ", ""); err != nil {
			return core.ErrNoServerURL
		}
	}

	database, err := promptRequired("Database: ", loginDatabase)
	if err != nil {
		return err
	}

	username, err := promptRequired("Username: ", loginUsername)
	if err != nil {
		return err
	}

	apiKey := loginAPIKey
	if apiKey == "" {
		apiKey = os.Getenv(application.EnvAPIKey)
	}

	if apiKey == "" {
		if apiKey, err = promptSecret("API key: "); err != nil {
			return err
		}

		if apiKey == "" {
			return fmt.Errorf("an API key is required")
		}
	}

	password, err := readPassword()
	if err != nil {
		return err
	}

	res, err := app.Login(cmd.Context(), core.LoginInput{
		URL:      url,
		Database: database,
		Username: username,
		Password: password,
		APIKey:   apiKey,
		Verify:   loginVerify,
	})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if jsonOutput() {
		return printJSON(map[string]any{
			"url":      res.Session.URL,
			"database": res.Session.Database,
			"username": res.Session.Username,
			"uid":      res.UID,
			"name":     res.Name,
			"email":    res.Email,
		})
	}

	name := res.Name
	if name == "" {
		name = res.Session.Username
	}

	_, _ = fmt.Fprintf(os.Stdout, "Logged in as %s on %s (%s)\n", name, res.Session.URL, res.Session.Database)

	return nil
}

// readPassword returns the password from stdin (--password-stdin), from a
// no-echo prompt on a terminal, or "" otherwise.
func readPassword() (string, error) {
	if loginPasswordStdin {
		return readLine()
	}

	return promptSecret("Password (empty for API key only): ")
}

// promptRequired returns value, or asks for it on a terminal.
func promptRequired(prompt, value string) (string, error) {
	if value = strings.TrimSpace(value); value != "" {
		return value, nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("missing %s", strings.ToLower(strings.TrimSuffix(prompt, ": ")))
	}

	value, err := promptLine(prompt)
	if err != nil {
		return "", err
	}

	if value == "" {
		return "", fmt.Errorf("missing %s", strings.ToLower(strings.TrimSuffix(prompt, ": ")))
	}

	return value, nil
}

// promptSecret reads a line without echo. Off a terminal it returns "".
func promptSecret(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", nil
	}

	_, _ = fmt.Fprint(os.Stdout, prompt)

	b, err := term.ReadPassword(fd)

	_, _ = fmt.Fprintln(os.Stdout)

	if err != nil {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(strings.TrimSuffix(prompt, ": ")), err)
	}

	return strings.TrimSpace(string(b)), nil
}
