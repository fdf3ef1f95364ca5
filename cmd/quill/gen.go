package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"quill/internal/driver"
	"quill/internal/ui"
)

var genCmd = &cobra.Command{
	Use:   "gen [flags] [path...]",
	Short: "Generate Java source from analyzed snapshots",
	Long: "Generate Java source files from resolved program snapshots (" + driver.SnapshotExt + ").\n" +
		"Paths may be snapshot files or directories; without arguments the\n" +
		"project's quill.toml supplies the snapshot and output directories.",
	RunE: runGen,
}

func init() {
	genCmd.Flags().String("out", "", "output directory (default: next to each snapshot)")
	genCmd.Flags().Bool("check", false, "syntax-check every generated file")
	genCmd.Flags().Int("jobs", 0, "max parallel generations (0 = one per CPU)")
	genCmd.Flags().String("newline", "platform", "line terminator (lf|crlf|platform)")
	genCmd.Flags().String("ui", "auto", "progress interface (auto|on|off)")
}

func runGen(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	colorValue, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	mode, err := readColorMode(colorValue)
	if err != nil {
		return err
	}
	applyColorMode(mode)

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	opts, err := readGenOptions(cmd)
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	uiModeValue, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	inputs, err := resolveGenInputs(cmd, args, &opts)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no %s files to generate", driver.SnapshotExt)
	}

	var results []driver.Result
	if shouldUseTUI(uiModeValue) && !quiet {
		results, err = runGenWithUI(cmd.Context(), inputs, opts)
	} else {
		results, err = driver.GenAll(cmd.Context(), inputs, opts)
	}
	if err != nil {
		return err
	}
	return reportGenResults(results, quiet)
}

func readGenOptions(cmd *cobra.Command) (driver.Options, error) {
	var opts driver.Options
	var err error
	if opts.OutDir, err = cmd.Flags().GetString("out"); err != nil {
		return opts, err
	}
	if opts.Check, err = cmd.Flags().GetBool("check"); err != nil {
		return opts, err
	}
	if opts.Jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return opts, err
	}
	newlineValue, err := cmd.Flags().GetString("newline")
	if err != nil {
		return opts, err
	}
	if opts.Newline, err = readNewline(newlineValue); err != nil {
		return opts, err
	}
	return opts, nil
}

func readNewline(value string) (string, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "platform":
		return "", nil // backend picks the platform terminator
	case "lf":
		return "\n", nil
	case "crlf":
		return "\r\n", nil
	default:
		return "", fmt.Errorf("invalid --newline value %q (expected lf|crlf|platform)", value)
	}
}

// resolveGenInputs expands files and directories from args, or falls back
// to the project manifest when no args are given.
func resolveGenInputs(cmd *cobra.Command, args []string, opts *driver.Options) ([]string, error) {
	if len(args) == 0 {
		manifest, found, err := loadProjectManifest(".")
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, errors.New(noQuillTomlMessage)
		}
		src, out := resolveManifestGen(manifest)
		if opts.OutDir == "" {
			opts.OutDir = out
		}
		if manifest.Config.Gen.Check {
			opts.Check = true
		}
		return driver.ListSnapshots(src)
	}

	var inputs []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			found, err := driver.ListSnapshots(arg)
			if err != nil {
				return nil, err
			}
			inputs = append(inputs, found...)
			continue
		}
		if !strings.HasSuffix(arg, driver.SnapshotExt) {
			return nil, fmt.Errorf("%s: not a %s file", arg, driver.SnapshotExt)
		}
		inputs = append(inputs, arg)
	}
	return inputs, nil
}

type genOutcome struct {
	results []driver.Result
	err     error
}

func runGenWithUI(ctx context.Context, inputs []string, opts driver.Options) ([]driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan genOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Events = events
		results, err := driver.GenAll(ctx, inputs, optsCopy)
		outcomeCh <- genOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("quill gen", inputs, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

func reportGenResults(results []driver.Result, quiet bool) error {
	okColor := color.New(color.FgGreen)
	errColor := color.New(color.FgRed, color.Bold)

	generated, bytes, failed := 0, 0, 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			errColor.Fprintf(os.Stderr, "error: ")
			fmt.Fprintf(os.Stderr, "%s: %v\n", res.Path, res.Err)
			continue
		}
		generated++
		bytes += res.Bytes
		if !quiet {
			fmt.Printf("%s %s -> %s (%d bytes)\n", okColor.Sprint("ok"), res.Path, res.OutPath, res.Bytes)
		}
	}
	if !quiet {
		fmt.Printf("generated %d file(s), %d bytes\n", generated, bytes)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", failed, len(results))
	}
	return nil
}
