// Package cmd implements the command-line interface for videoflix.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/videoflix/videoflix/color"
	"github.com/videoflix/videoflix/constant"
	"github.com/videoflix/videoflix/icon"
	"github.com/videoflix/videoflix/key"
	"github.com/videoflix/videoflix/log"
	"github.com/videoflix/videoflix/query"
	"github.com/videoflix/videoflix/style"
	"github.com/videoflix/videoflix/tui"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, plain)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().String("api", "", "Base URL of the Videoflix API")
	lo.Must0(viper.BindPFlag(key.APIBaseURL, rootCmd.PersistentFlags().Lookup("api")))

	rootCmd.PersistentFlags().Bool("resume", true, "Resume videos from the last saved position")
	lo.Must0(viper.BindPFlag(key.PlayerResume, rootCmd.PersistentFlags().Lookup("resume")))

	rootCmd.Flags().IntP("profile", "p", 0, "Skip the profile picker and use this profile id")
	rootCmd.Flags().StringP("query", "q", "", "Open the video list filtered by this query")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("query", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	}))
}

// rootCmd defines the entry point for the videoflix application.
var rootCmd = &cobra.Command{
	Use:   constant.Videoflix,
	Short: "A terminal client for the Videoflix streaming service",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A terminal client for the Videoflix streaming service"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		CheckDependencies()

		options := tui.Options{
			ProfileID: lo.Must(cmd.Flags().GetInt("profile")),
			Query:     lo.Must(cmd.Flags().GetString("query")),
		}
		handleErr(tui.Run(&options))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
