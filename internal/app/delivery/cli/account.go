package cli

import (
	"bufio"
	"carerouter-service/internal/app/models"
	"carerouter-service/internal/pkg/dto/responses"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	login := &cobra.Command{
		Use:   "login",
		Short: "Log in to your CareRouter account",
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			return runAuthenticate(cmd, a, a.auth.Login, "Logged in")
		}),
	}
	signup := &cobra.Command{
		Use:   "signup",
		Short: "Create a CareRouter account",
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			return runAuthenticate(cmd, a, a.auth.Signup, "Account created, logged in")
		}),
	}
	for _, cmd := range []*cobra.Command{login, signup} {
		cmd.Flags().StringP("email", "e", "", "Account email (required)")
		cmd.Flags().StringP("password", "p", "", "Password (read from stdin when omitted)")
		cmd.MarkFlagRequired("email")
	}

	logout := &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session and pathway",
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			if err := a.auth.Logout(cmd.Context(), a.clientID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		}),
	}

	RootCmd.AddCommand(login, signup, logout)
}

type authenticateFunc func(ctx context.Context, clientID string, credentials models.Credentials) (*responses.AuthStatus, error)

func runAuthenticate(cmd *cobra.Command, a *app, call authenticateFunc, done string) error {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Password: ")
		var err error
		if password, err = readLine(cmd.InOrStdin()); err != nil {
			return err
		}
	}

	status, err := call(cmd.Context(), a.clientID, models.Credentials{Email: email, Password: password})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s as %s.\n", done, status.Email)
	return nil
}

func readLine(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("password is required")
	}
	return line, nil
}
