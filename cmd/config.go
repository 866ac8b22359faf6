package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/videoflix/videoflix/color"
	"github.com/videoflix/videoflix/config"
	"github.com/videoflix/videoflix/constant"
	"github.com/videoflix/videoflix/filesystem"
	"github.com/videoflix/videoflix/icon"
	"github.com/videoflix/videoflix/style"
	"github.com/videoflix/videoflix/where"
	"golang.org/x/exp/slices"
)

func errUnknownKey(key string) error {
	closest := lo.MinBy(configKeys(), func(a string, b string) bool {
		return levenshtein.Distance(key, a) < levenshtein.Distance(key, b)
	})

	return fmt.Errorf(
		"unknown key %s, did you mean %s?",
		style.Fg(color.Red)(key),
		style.Fg(color.Yellow)(closest),
	)
}

func configKeys() []string {
	keys := lo.Keys(config.Default)
	slices.Sort(keys)
	return keys
}

func configFile() string {
	return filepath.Join(where.Config(), constant.Videoflix+".toml")
}

func mustField(key string) config.Field {
	field, ok := config.Default[key]
	if !ok {
		handleErr(errUnknownKey(key))
	}
	return field
}

// keyArg reads the key from the first argument or from --key.
func keyArg(cmd *cobra.Command, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if k := lo.Must(cmd.Flags().GetString("key")); k != "" {
		return k
	}
	handleErr(errors.New("key is required as an argument or --key flag"))
	return ""
}

// saveConfig writes viper's state, creating the file on first use.
func saveConfig() error {
	err := viper.WriteConfig()

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return viper.SafeWriteConfig()
	}
	return err
}

// completeKeyThenValue completes a key first and then the values that key accepts.
func completeKeyThenValue(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return configKeys(), cobra.ShellCompDirectiveNoFileComp
	case 1:
		if field, ok := config.Default[args[0]]; ok {
			return field.Suggestions(), cobra.ShellCompDirectiveNoFileComp
		}
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

func completeKeys(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return configKeys(), cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change videoflix settings",
}

func init() {
	configCmd.AddCommand(configInfoCmd)
	configInfoCmd.Flags().StringSliceP("key", "k", []string{}, "Only describe these keys")
	configInfoCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	_ = configInfoCmd.RegisterFlagCompletionFunc("key", completeKeys)

	configInfoCmd.SetOut(os.Stdout)
}

// configInfoCmd describes settings with their current and default values.
var configInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe settings with their current and default values",
	Run: func(cmd *cobra.Command, args []string) {
		keys := lo.Must(cmd.Flags().GetStringSlice("key"))
		if len(keys) == 0 {
			keys = configKeys()
		}

		fields := lo.Map(keys, func(k string, _ int) config.Field {
			return mustField(k)
		})

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(fields))
			return
		}

		for i, field := range fields {
			if i > 0 {
				cmd.Println()
			}
			cmd.Println(field.Pretty())
		}
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configGetCmd.Flags().StringP("key", "k", "", "Key to read")
	_ = configGetCmd.RegisterFlagCompletionFunc("key", completeKeys)
	configGetCmd.SetOut(os.Stdout)
}

var configGetCmd = &cobra.Command{
	Use:               "get [key]",
	Short:             "Print the current value of a setting",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeKeys,
	Run: func(cmd *cobra.Command, args []string) {
		key := keyArg(cmd, args)
		mustField(key)
		cmd.Println(viper.Get(key))
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configSetCmd.Flags().StringP("key", "k", "", "Key to change")
	configSetCmd.Flags().StringSliceP("value", "v", []string{}, "New value of the key")
	_ = configSetCmd.RegisterFlagCompletionFunc("key", completeKeys)
	_ = configSetCmd.RegisterFlagCompletionFunc("value", func(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		field, ok := config.Default[lo.Must(cmd.Flags().GetString("key"))]
		if !ok {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return field.Suggestions(), cobra.ShellCompDirectiveNoFileComp
	})
}

// configSetCmd checks a value against its key before writing it to the config file.
var configSetCmd = &cobra.Command{
	Use:               "set [key] [value]",
	Short:             "Change a setting",
	Example:           "  videoflix config set player.volume 80\n  videoflix config set --key api.base_url --value https://videoflix.example.com/api",
	Args:              cobra.MaximumNArgs(2),
	ValidArgsFunction: completeKeyThenValue,
	Run: func(cmd *cobra.Command, args []string) {
		key := keyArg(cmd, args)
		field := mustField(key)

		raw := lo.Must(cmd.Flags().GetStringSlice("value"))
		if len(args) > 1 {
			raw = args[1:]
		}
		if len(raw) == 0 {
			handleErr(errors.New("value is required as an argument or --value flag"))
		}

		value, err := field.Parse(raw)
		handleErr(err)

		viper.Set(key, value)
		handleErr(saveConfig())

		fmt.Printf(
			"%s set %s to %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(key),
			style.Fg(color.Yellow)(fmt.Sprint(value)),
		)
	},
}

func init() {
	configCmd.AddCommand(configResetCmd)

	configResetCmd.Flags().StringP("key", "k", "", "Key to restore")
	configResetCmd.Flags().BoolP("all", "a", false, "Restore every setting")
	configResetCmd.MarkFlagsMutuallyExclusive("key", "all")
	_ = configResetCmd.RegisterFlagCompletionFunc("key", completeKeys)
}

var configResetCmd = &cobra.Command{
	Use:               "reset [key]",
	Short:             "Restore settings to their defaults",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeKeys,
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("all")) {
			for k, field := range config.Default {
				viper.Set(k, field.Value)
			}
			handleErr(saveConfig())
			fmt.Printf("%s reset all settings\n", style.Fg(color.Green)(icon.Get(icon.Success)))
			return
		}

		key := keyArg(cmd, args)
		field := mustField(key)
		viper.Set(key, field.Value)
		handleErr(saveConfig())

		fmt.Printf(
			"%s reset %s to %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(key),
			style.Fg(color.Yellow)(fmt.Sprint(field.Value)),
		)
	},
}

func init() {
	configCmd.AddCommand(configWriteCmd)
	configWriteCmd.Flags().BoolP("force", "f", false, "Replace an existing config file")
}

var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Write the current settings to the config file",
	Run: func(cmd *cobra.Command, args []string) {
		path := configFile()

		if lo.Must(cmd.Flags().GetBool("force")) {
			if err := filesystem.API().Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				handleErr(err)
			}
		}

		handleErr(viper.SafeWriteConfig())
		fmt.Printf("%s wrote %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), path)
	},
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
}

var configDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Remove the config file",
	Aliases: []string{"remove"},
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(filesystem.API().Remove(configFile()))
		fmt.Printf("%s deleted %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), configFile())
	},
}
