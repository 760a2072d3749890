package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dstrand/asmfix/config"
	"github.com/dstrand/asmfix/formatter"
)

var (
	errorColor = color.New(color.FgRed)
	warnColor  = color.New(color.FgYellow)
)

func runRoot(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	flags := cmd.Flags()
	configPath, err := flags.GetString("config")
	if err != nil {
		return err
	}
	outputPath, err := flags.GetString("output")
	if err != nil {
		return err
	}
	overwrite, err := flags.GetBool("overwrite")
	if err != nil {
		return err
	}
	safe, err := flags.GetBool("safe")
	if err != nil {
		return err
	}
	unsafe, err := flags.GetBool("unsafe")
	if err != nil {
		return err
	}
	backupPath, err := flags.GetString("backup")
	if err != nil {
		return err
	}
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return err
	}
	verbose, err := flags.GetBool("verbose")
	if err != nil {
		return err
	}
	colorMode, err := flags.GetString("color")
	if err != nil {
		return err
	}
	if err := setupColor(colorMode); err != nil {
		return err
	}
	log := newLogger(verbose)

	inputPath := args[0]
	if overwrite {
		outputPath = inputPath
	}
	// Safe mode when asked for outright, when a backup name was given, or
	// when overwriting without --unsafe.
	safeMode := safe || flags.Changed("backup") || (overwrite && !unsafe)
	if backupPath == "" {
		backupPath = config.DefaultBackupFile
	}

	cfg, migrated, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if migrated && !quiet {
		warnColor.Fprintf(os.Stderr, "Warning: config file out of date; updated %s\n", configPath)
	}
	log.Debug().Str("config", configPath).Bool("migrated", migrated).Msg("config loaded")

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}
	if safeMode {
		if err := os.WriteFile(backupPath, data, 0644); err != nil {
			return fmt.Errorf("writing backup %s: %w", backupPath, err)
		}
		log.Debug().Str("backup", backupPath).Msg("backup written")
	}

	out, diags := formatter.New(&cfg).Format(string(data))
	log.Debug().
		Int("lines", strings.Count(out, "\n")).
		Int("diagnostics", len(diags)).
		Msg("formatted")

	for _, d := range diags {
		errorColor.Fprintf(os.Stderr, "Error on line %d: %s\n  %s\n", d.Line, d.Message, d.Text)
	}

	if outputPath == "" {
		_, err = os.Stdout.WriteString(out)
		return err
	}
	if err := os.WriteFile(outputPath, []byte(out), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	return nil
}

// setupColor resolves the --color mode; auto enables color only on a
// terminal.
func setupColor(mode string) error {
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		color.NoColor = !isTerminal(os.Stderr)
	default:
		return fmt.Errorf("invalid --color mode %q (want auto, on or off)", mode)
	}
	return nil
}

// newLogger returns a console logger that is silent unless --verbose.
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.Disabled
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}
