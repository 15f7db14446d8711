// Package host implements the wisp CLI: run/check/tokens/version
// subcommands wired through github.com/ComedicChimera/olive, exactly as
// the teacher's src/cmd/execute.go builds its own argument parser. Unlike
// the teacher, there is no module/profile system to load (spec Non-goals)
// -- the host instead loads an optional src/config.RunConfig next to the
// source file being operated on.
package host

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/ComedicChimera/olive"

	"wisp/src/analyze"
	"wisp/src/common"
	"wisp/src/config"
	"wisp/src/interp"
	"wisp/src/logging"
	"wisp/src/syntax"
)

// Execute runs the wisp CLI application.
func Execute() {
	cli := olive.NewCLI("wisp", "wisp is a toolchain for the Wisp teaching language", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the toolchain log level", false, []string{"silent", "error", "warning", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	runCmd := cli.AddSubcommand("run", "lex, parse, analyze, and run a source file", true)
	runCmd.AddPrimaryArg("file", "the path to the source file", true)
	runCmd.AddStringArg("config", "c", "path to a wisp.toml run descriptor", false)
	runCmd.AddStringArg("trace", "t", "path to write the event trace to (or \"stdout\")", false)

	checkCmd := cli.AddSubcommand("check", "lex, parse, and analyze a source file without running it", true)
	checkCmd.AddPrimaryArg("file", "the path to the source file", true)

	tokensCmd := cli.AddSubcommand("tokens", "dump the raw token stream for a source file", true)
	tokensCmd.AddPrimaryArg("file", "the path to the source file", true)

	cli.AddSubcommand("version", "print the wisp toolchain version", false)

	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		logging.PrintErrorMessage("CLI Usage Error", err)
		return
	}

	subcmdName, subResult, _ := result.Subcommand()
	loglevel, _ := result.Arguments["loglevel"].(string)
	if loglevel == "" {
		loglevel = "verbose"
	}

	switch subcmdName {
	case "run":
		execRun(subResult, loglevel)
	case "check":
		execCheck(subResult, loglevel)
	case "tokens":
		execTokens(subResult)
	case "version":
		logging.PrintInfoMessage("Wisp Version", common.WispVersion)
	}
}

func readSource(path string) (string, error) {
	buff, err := ioutil.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(buff), nil
}

func execRun(result *olive.ArgParseResult, loglevel string) {
	filePath, _ := result.PrimaryArg()
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		return
	}

	cfg, err := config.LoadNear(absPath)
	if err != nil {
		logging.PrintErrorMessage("Config Error", err)
		return
	}
	if cfgPath, ok := result.Arguments["config"].(string); ok && cfgPath != "" {
		cfg, err = config.Load(cfgPath)
		if err != nil {
			logging.PrintErrorMessage("Config Error", err)
			return
		}
	}
	effectiveLevel := loglevel
	if cfg.LogLevel != "" {
		effectiveLevel = cfg.LogLevel
	}

	src, err := readSource(absPath)
	if err != nil {
		logging.PrintErrorMessage("File Error", err)
		return
	}

	logging.Initialize(filepath.Base(absPath), effectiveLevel)
	logging.DisplayRunHeader(filepath.Base(absPath))

	lctx := &logging.LogContext{Label: filepath.Base(absPath), Source: src}

	logging.DisplayBeginPhase("Lexing")
	if _, err := syntax.Lex(src); err != nil {
		logging.DisplayEndPhase(false)
		syntax.ReportSyntaxError(lctx, err)
		return
	}
	logging.DisplayEndPhase(true)

	logging.DisplayBeginPhase("Parsing")
	prog, err := syntax.Parse(src)
	if err != nil {
		logging.DisplayEndPhase(false)
		syntax.ReportSyntaxError(lctx, err)
		return
	}
	logging.DisplayEndPhase(true)

	logging.DisplayBeginPhase("Analyzing")
	diagnostics := analyze.Analyze(prog, lctx)
	logging.DisplayEndPhase(len(diagnostics) == 0)

	if len(diagnostics) > 0 {
		for _, d := range diagnostics {
			logging.PrintWarningMessage("Analysis", d)
		}
		logging.DisplayRunFinished(false, logging.ErrorCount(), len(diagnostics))
		return
	}

	logging.DisplayBeginPhase("Running")
	var events []interp.Event
	traceSink := func(e interp.Event) {
		events = append(events, e)
	}
	outputSink := func(line string) {
		fmt.Println(line)
	}
	opts := &interp.RunOptions{Externs: externBindingsFrom(cfg)}
	runErr := interp.Run(prog, outputSink, traceSink, opts)
	logging.DisplayEndPhase(runErr == nil)

	if runErr != nil {
		logging.PrintErrorMessage("Runtime Error", runErr)
	}

	if traceArg, ok := result.Arguments["trace"].(string); ok && traceArg != "" {
		writeTrace(traceArg, events, cfg.TraceFormat)
	} else if cfg.TraceOutput != "" && cfg.TraceOutput != "none" {
		writeTrace(cfg.TraceOutput, events, cfg.TraceFormat)
	}

	logging.DisplayRunFinished(runErr == nil, logging.ErrorCount(), 0)
}

// externBindingsFrom turns config-declared extern bindings into runtime
// implementations. Only the `alert` capability has a concrete built-in
// behavior (routing through the logger rather than stdout); any other
// declared extern is acknowledged but left a no-op, since this CLI host has
// no further host capabilities to offer (spec.md §4.4 leaves a non-alert
// extern "undefined behavior... implementers should document it").
func externBindingsFrom(cfg *config.RunConfig) map[string]interp.ExternBinding {
	bindings := map[string]interp.ExternBinding{}
	for _, e := range cfg.Externs {
		if e.Alert {
			bindings[e.Name] = func(args []interp.Value) interp.Value {
				msg := ""
				if len(args) > 0 {
					if s, ok := args[0].(interp.StrValue); ok {
						msg = string(s)
					}
				}
				logging.PrintWarningMessage("Alert", msg)
				return interp.NullValue{}
			}
		}
	}
	return bindings
}

func writeTrace(dest string, events []interp.Event, format string) {
	if dest == "stdout" {
		renderTrace(events, format)
		return
	}
	f, err := os.Create(dest)
	if err != nil {
		logging.PrintErrorMessage("Trace Error", err)
		return
	}
	defer f.Close()
	for _, e := range events {
		fmt.Fprintf(f, "%s scope=%d name=%s\n", e.Kind, e.ScopeID, e.Name)
	}
}

func renderTrace(events []interp.Event, format string) {
	switch format {
	case "table":
		interp.RenderTable(events)
	default:
		interp.RenderTree(events)
	}
}

func execCheck(result *olive.ArgParseResult, loglevel string) {
	filePath, _ := result.PrimaryArg()
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		return
	}

	src, err := readSource(absPath)
	if err != nil {
		logging.PrintErrorMessage("File Error", err)
		return
	}

	logging.Initialize(filepath.Base(absPath), loglevel)
	lctx := &logging.LogContext{Label: filepath.Base(absPath), Source: src}

	prog, err := syntax.Parse(src)
	if err != nil {
		syntax.ReportSyntaxError(lctx, err)
		return
	}

	diagnostics := analyze.Analyze(prog, lctx)
	if len(diagnostics) == 0 {
		logging.PrintInfoMessage("Check", "no errors found")
		return
	}
	for _, d := range diagnostics {
		logging.PrintWarningMessage("Check", d)
	}
	logging.PrintErrorMessage("Check", fmt.Errorf("%d diagnostic(s) found", len(diagnostics)))
}

func execTokens(result *olive.ArgParseResult) {
	filePath, _ := result.PrimaryArg()
	src, err := readSource(filePath)
	if err != nil {
		logging.PrintErrorMessage("File Error", err)
		return
	}

	toks, err := syntax.Lex(src)
	if err != nil {
		lctx := &logging.LogContext{Label: filepath.Base(filePath), Source: src}
		syntax.ReportSyntaxError(lctx, err)
		return
	}

	for _, t := range toks {
		fmt.Printf("%-12s %-10q line=%d col=%d\n", syntax.TokenKindName(t.Kind), t.Value, t.Line, t.Col)
	}
}
