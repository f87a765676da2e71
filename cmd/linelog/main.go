// FILE: lixenwraith/linelog/cmd/linelog/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/linelog"
)

var (
	cfgFile   string
	path      string
	overrides []string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "linelog",
		Short: "Line logger for bounded text files",
		Long: `linelog appends or top-inserts severity-labeled lines into a text file,
keeps the file under a line ceiling and follows it as it changes.

Settings come from a TOML file (keys under [linelog]) and "key=value" overrides.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "TOML config file")
	rootCmd.PersistentFlags().StringVarP(&path, "path", "p", "", "target file (overrides linelog.path)")
	rootCmd.PersistentFlags().StringArrayVarP(&overrides, "set", "s", nil, "configuration override key=value (repeatable)")

	rootCmd.AddCommand(
		newWriteCmd(),
		newCountCmd(),
		newTrimCmd(),
		newHeartbeatCmd(),
		newFollowCmd(),
	)
	return rootCmd
}

// loadConfig merges the config file, --set overrides, extra and --path, in that order
func loadConfig(extra ...string) (*linelog.Config, error) {
	all := append([]string{}, overrides...)
	all = append(all, extra...)
	if path != "" {
		all = append(all, "path="+path)
	}

	if cfgFile != "" {
		return linelog.NewConfigFromFile(cfgFile, all...)
	}
	return linelog.NewConfigFromOverrides(all...)
}

// openLogger starts a session from the merged configuration
func openLogger(extra ...string) (*linelog.Logger, error) {
	cfg, err := loadConfig(extra...)
	if err != nil {
		return nil, err
	}

	l := linelog.NewLogger()
	if err := l.ApplyConfig(cfg); err != nil {
		return nil, err
	}
	return l, nil
}
