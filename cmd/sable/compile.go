package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sable/internal/diagfmt"
	"sable/internal/driver"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] path",
	Short: "Compile a sable source file or directory",
	Long: `Compile runs the full front end (preprocess, parse) on one .sbl file,
or on every .sbl file under a directory, and reports diagnostics`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runCompile,
}

func init() {
	compileCmd.Flags().String("format", "pretty", "diagnostic format (pretty|json)")
	compileCmd.Flags().Bool("strict", false, "treat advisory warnings as errors")
	compileCmd.Flags().Bool("warnings-as-errors", false, "promote all warnings to errors")
	compileCmd.Flags().Uint("max-include-depth", 0, "override the include depth limit")
	compileCmd.Flags().Uint("max-macro-depth", 0, "override the macro expansion depth limit")
	compileCmd.Flags().Int("jobs", 0, "parallel compiles for a directory (0 = all CPUs)")
}

func runCompile(cmd *cobra.Command, args []string) error {
	path := args[0]

	flags, err := compileFlags(cmd, path)
	if err != nil {
		return err
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return runCompileDir(cmd, path, flags, format)
	}

	result, err := driver.Compile(path, flags)
	if err != nil {
		return fmt.Errorf("compilation failed: %w", err)
	}
	renderDiagnostics(cmd, result, format)

	if result.HasErrors() {
		return fmt.Errorf("%s: compilation finished with errors", path)
	}
	return nil
}

func runCompileDir(cmd *cobra.Command, dir string, flags driver.Flags, format string) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	results, err := driver.CompileDir(context.Background(), dir, flags, jobs)
	if err != nil {
		return fmt.Errorf("compilation failed: %w", err)
	}

	failed := 0
	for _, r := range results {
		if len(r.Result.Diagnostics) > 0 {
			fmt.Fprintf(os.Stderr, "== %s ==\n", r.Path)
			renderDiagnostics(cmd, r.Result, format)
		}
		if r.Result.HasErrors() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to compile", failed, len(results))
	}
	return nil
}

// compileFlags resolves the effective Flags: defaults, then the nearest
// sable.toml, then explicit CLI flags.
func compileFlags(cmd *cobra.Command, path string) (driver.Flags, error) {
	flags, err := resolveFlags(filepath.Dir(path))
	if err != nil {
		return flags, err
	}

	if cmd.Flags().Changed("strict") {
		flags.StrictMode, _ = cmd.Flags().GetBool("strict")
	}
	if cmd.Flags().Changed("warnings-as-errors") {
		flags.WarningsAsErrors, _ = cmd.Flags().GetBool("warnings-as-errors")
	}
	if cmd.Flags().Changed("max-include-depth") {
		flags.MaxIncludeDepth, _ = cmd.Flags().GetUint("max-include-depth")
	}
	if cmd.Flags().Changed("max-macro-depth") {
		flags.MaxMacroDepth, _ = cmd.Flags().GetUint("max-macro-depth")
	}
	if cmd.Root().PersistentFlags().Changed("max-diagnostics") {
		flags.MaxDiagnostics, _ = cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	}
	return flags, nil
}

func renderDiagnostics(cmd *cobra.Command, result *driver.Result, format string) {
	if len(result.Diagnostics) == 0 {
		return
	}
	switch format {
	case "json":
		_ = diagfmt.JSON(os.Stdout, result.Diagnostics, result.FileSet, result.Buffer, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		})
	default:
		diagfmt.Pretty(os.Stderr, result.Diagnostics, result.FileSet, result.Buffer, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			ShowNotes: true,
		})
	}
}
