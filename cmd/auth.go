package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/videoflix/videoflix/api"
	"github.com/videoflix/videoflix/auth"
	"github.com/videoflix/videoflix/color"
	"github.com/videoflix/videoflix/icon"
	"github.com/videoflix/videoflix/log"
	"github.com/videoflix/videoflix/model"
	"github.com/videoflix/videoflix/session"
	"github.com/videoflix/videoflix/style"
	"github.com/videoflix/videoflix/util"
)

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringP("email", "e", "", "Email address of the account")
}

// loginCmd exchanges credentials for tokens kept in the system keyring.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to Videoflix",
	Run: func(cmd *cobra.Command, args []string) {
		if !util.IsTerminal() {
			handleErr(errors.New("login needs an interactive terminal"))
		}

		if _, err := auth.LoadTokens(); err == nil {
			confirm := survey.Confirm{
				Message: "Already logged in. Log in again?",
				Default: false,
			}
			var again bool
			handleErr(survey.AskOne(&confirm, &again))

			if !again {
				return
			}
		}

		email := lo.Must(cmd.Flags().GetString("email"))
		if email == "" {
			input := survey.Input{
				Message: "Email:",
			}
			handleErr(survey.AskOne(&input, &email, survey.WithValidator(survey.Required)))
		}

		var password string
		prompt := survey.Password{
			Message: "Password:",
		}
		handleErr(survey.AskOne(&prompt, &password, survey.WithValidator(survey.Required)))

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout())
		defer cancel()

		res, err := api.Default().Login(ctx, email, password)
		handleErr(err)
		if !res.IsSuccess() {
			handleErr(fmt.Errorf("login failed: %s", res.Describe()))
		}

		sess := session.Default()
		if err := sess.Clear(); err != nil {
			log.Warnf("clear session: %v", err)
		}

		user := model.UserFromAPI(res.Data.User)
		handleErr(sess.SetCurrentUser(user))

		fmt.Printf("%s logged in as %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), style.Fg(color.Purple)(user.DisplayName()))
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// logoutCmd forgets the tokens and the session, even when the server cannot be reached.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out of Videoflix",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout())
		defer cancel()

		res, err := api.Default().Logout(ctx)
		if err != nil {
			log.Warnf("logout: %v", err)
		} else if !res.IsSuccess() && !res.IsUnauthorized() {
			log.Warnf("logout: %s", res.Describe())
		}

		handleErr(session.Default().Clear())

		fmt.Printf("%s logged out\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}
