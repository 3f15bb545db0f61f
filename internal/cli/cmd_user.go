package cli

import (
	"fmt"

	"github.com/SscSPs/valutatrade_hub/internal/dto"
	"github.com/spf13/cobra"
)

func newRegisterCmd(rt *runtime) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a user with a funded portfolio",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.open(cmd, nil)
			if err != nil {
				return err
			}
			defer app.Close()

			user, err := app.Services.User.RegisterUser(cmd.Context(), dto.RegisterUserRequest{
				Username: username,
				Password: password,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User '%s' registered (id=%s). Log in with: login --username %s --password ****\n",
				user.Username, user.UserID, user.Username)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "username (unique, case-insensitive)")
	cmd.Flags().StringVar(&password, "password", "", "password, at least 4 characters")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLoginCmd(rt *runtime) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session for later commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.open(cmd, nil)
			if err != nil {
				return err
			}
			defer app.Close()

			user, err := app.Services.User.AuthenticateUser(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			token, expiresAt, err := app.Services.Token.GenerateAccessToken(cmd.Context(), user)
			if err != nil {
				return err
			}
			if err := app.Sessions.Save(Session{
				UserID:    user.UserID,
				Username:  user.Username,
				Token:     token,
				ExpiresAt: expiresAt,
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as '%s'\n", user.Username)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "username")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.open(cmd, nil)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Sessions.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

// currentSession returns the session whose token is still valid for this configuration.
func (a *App) currentSession(cmd *cobra.Command) (*Session, error) {
	sess, err := a.Sessions.Load()
	if err != nil {
		return nil, err
	}
	userID, err := a.Services.Token.ParseAccessToken(cmd.Context(), sess.Token)
	if err != nil {
		return nil, fmt.Errorf("%w, run 'login' again", err)
	}
	sess.UserID = userID
	return sess, nil
}
