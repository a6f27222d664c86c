package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dominant-strategies/go-ziftr/cmd/utils"
	"github.com/dominant-strategies/go-ziftr/common/constants"
	"github.com/dominant-strategies/go-ziftr/log"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "creates the default config file",
	Long: `creates the default config file in the location specified by the --config-dir flag.
The default config file will contain all the default values for the flags.
Any flags passed in the command line here will also overwrite the default values in the config file.`,
	RunE:                       runConfig,
	SilenceUsage:               true,
	SuggestionsMinimumDistance: 2,
	Example:                    `go-ziftr config --threads=4 --difficulty=1024`,
}

func init() {
	rootCmd.AddCommand(configCmd)

	for _, flagGroup := range utils.Flags[1:] {
		for _, flag := range flagGroup {
			utils.CreateAndBindFlag(flag, configCmd)
		}
	}
}

func runConfig(cmd *cobra.Command, args []string) error {
	configDir := filepath.Clean(cmd.Flag(utils.ConfigDirFlag.Name).Value.String())
	path := filepath.Join(configDir, constants.CONFIG_FILE_NAME)

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("cannot init config file %s: file already exists. Delete it to re-initialize a new one", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("error accessing config file %s: %w", path, err)
	}
	if err := utils.WriteDefaultConfigFile(configDir, constants.CONFIG_FILE_NAME, constants.CONFIG_FILE_TYPE); err != nil {
		return err
	}
	log.Global.WithField("path", path).Info("Initialized new config file.")
	return nil
}
