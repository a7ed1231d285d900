package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hoyeonchoKMOU/IsPiNormalNumber/internal/config"
)

// defaultConfigFile is where `config init` writes by default.
const defaultConfigFile = ".pinormal.yaml"

// ErrConfigExists prevents `config init` from clobbering an existing file.
var ErrConfigExists = errors.New("config file already exists (use --force to overwrite)")

// NewConfigCommand creates the config management command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "config",
		Short:         "Manage the pinormal configuration file",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigValidateCommand())

	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var (
		path  string
		force bool
	)

	cmd := &cobra.Command{
		Use:           "init",
		Short:         "Write a config file populated with the defaults",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return writeDefaultConfig(os.Stdout, path, force)
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", defaultConfigFile, "Where to write the config file")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}

func writeDefaultConfig(messages io.Writer, path string, force bool) error {
	if !force {
		_, statErr := os.Stat(path)
		if statErr == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}

	if writeErr := config.WriteDefault(f); writeErr != nil {
		_ = f.Close()

		return writeErr
	}

	if closeErr := f.Close(); closeErr != nil {
		return fmt.Errorf("close config: %w", closeErr)
	}

	fmt.Fprintf(messages, "Wrote %s\n", path)

	return nil
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "validate <path>",
		Short:         "Validate a config file against the schema",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			if err := config.ValidateFile(args[0]); err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "%s is valid\n", args[0])

			return nil
		},
	}
}
