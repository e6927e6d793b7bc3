// Package configcmd handles writing a configuration template
package configcmd

import (
	"fmt"

	"fjacquet/fintrack/cmd/root"
	"fjacquet/fintrack/internal/config"

	"github.com/spf13/cobra"
)

// Cmd represents the config command
var Cmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var (
	path  string
	force bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration template",
	Long: `Write the effective configuration as a YAML template, by default to
$HOME/.fintrack/config.yaml. An existing file is kept unless --force is set.`,
	Args: cobra.NoArgs,
	Run:  root.Run(runInit),
}

func init() {
	initCmd.Flags().StringVarP(&path, "output", "o", "", "Target file")
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	Cmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	target := path
	if target == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		target = p
	}
	if err := config.WriteDefault(target, root.AppConfig, force); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote configuration to %s\n", target)
	return nil
}
