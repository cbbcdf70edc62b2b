package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/averycrespi/calc-mcp/internal/config"
	"github.com/averycrespi/calc-mcp/internal/keypad"
	"github.com/averycrespi/calc-mcp/internal/render"
	"github.com/averycrespi/calc-mcp/internal/server"
	"github.com/averycrespi/calc-mcp/pkg/project"
	"github.com/averycrespi/calc-mcp/pkg/types"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// errCalculationFailed marks a key sequence that ended in the error state.
// The display has already been printed when it is returned.
var errCalculationFailed = errors.New("calculation failed")

type app struct {
	fs         afero.Fs
	configPath string
	logLevel   string
	config     *types.Config
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	a := &app{fs: fs}

	root := &cobra.Command{
		Use:               project.Name,
		Short:             "Calculator keypad served over the Model Context Protocol",
		Version:           project.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.serve,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a TOML or YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the calculator tools on stdio",
			Args:  cobra.NoArgs,
			RunE:  a.serve,
		},
		&cobra.Command{
			Use:   "press KEY...",
			Short: "Press keys on a fresh calculator and print the display",
			Args:  cobra.MinimumNArgs(1),
			RunE:  a.press,
		},
		a.renderCmd(),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.fs, a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	a.config = cfg
	slog.Debug("Loaded config", "path", a.configPath, "config", fmt.Sprintf("%+v", *cfg))
	return nil
}

func (a *app) serve(cmd *cobra.Command, _ []string) error {
	s, err := server.NewCalcServer(a.config, server.WithIO(cmd.InOrStdin(), cmd.OutOrStdout()))
	if err != nil {
		return err
	}
	return s.Serve(cmd.Context())
}

func (a *app) press(cmd *cobra.Command, args []string) error {
	display, err := runKeys(args)
	if err != nil {
		return err
	}
	return printDisplay(cmd, display)
}

func (a *app) renderCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render KEY...",
		Short: "Press keys on a fresh calculator and write the face as PNG",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			display, err := runKeys(args)
			if err != nil {
				return err
			}

			renderer, err := render.NewRenderer(a.config.Render)
			if err != nil {
				return err
			}
			data, err := renderer.PNG(display)
			if err != nil {
				return err
			}
			if err := afero.WriteFile(a.fs, output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			slog.Info("Wrote calculator face", "path", output, "bytes", len(data))

			return printDisplay(cmd, display)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "calc.png", "PNG file to write")

	return cmd
}

// runKeys presses the keys on a fresh accumulator. Arguments may hold several
// space separated keys. Every key is checked before the first press.
func runKeys(args []string) (keypad.Display, error) {
	keys := strings.Fields(strings.Join(args, " "))
	for _, key := range keys {
		if _, err := keypad.ParseKey(key); err != nil {
			return keypad.Display{}, err
		}
	}

	acc := keypad.New()
	for _, key := range keys {
		accepted, err := acc.Press(key)
		slog.Debug("Pressed key", "key", key, "accepted", accepted, "error", err)
	}
	return acc.Display(), nil
}

func printDisplay(cmd *cobra.Command, d keypad.Display) error {
	fmt.Fprintln(cmd.OutOrStdout(), d.Expression)
	fmt.Fprintln(cmd.OutOrStdout(), d.OperandText)

	if d.Error != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %s\n", d.Error)
		return errCalculationFailed
	}
	return nil
}
