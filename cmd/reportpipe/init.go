package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/reportpipe/reportpipe/internal/config"
	"github.com/spf13/cobra"
)

//go:embed templates/reportpipe.yaml
var configTemplate embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new reportpipe configuration file",
		Long: `Initialize creates a new .reportpipe configuration file in the current directory.

The generated file includes:
- Default settings for format, channel, and download directory
- Commented examples for per-report-type configurations
- Documentation for all available options

Examples:
  # Create .reportpipe in current directory
  reportpipe init

  # Create config file at a specific path
  reportpipe init -o myconfig.yaml

  # Force overwrite existing file
  reportpipe init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	// Check if file already exists
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	// Read template from embedded filesystem
	content, err := configTemplate.ReadFile("templates/reportpipe.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	// Create parent directories if needed
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write configuration file
	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	fmt.Printf("Created configuration file: %s\n", outputPath)
	fmt.Println("\nEdit this file to configure per-report-type settings such as:")
	fmt.Println("  - Output format and delivery channel")
	fmt.Println("  - Email recipient addresses")
	fmt.Println("  - Download directory and cloud key prefix")

	return nil
}
