package logging

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"wisp/src/common"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// PrintErrorMessage prints a standard Go error to the console
func PrintErrorMessage(tag string, err error) {
	ErrorStyleBG.Print(tag)
	ErrorColorFG.Println(" " + err.Error())
}

// PrintWarningMessage prints a warning message to the console
func PrintWarningMessage(tag, msg string) {
	WarnStyleBG.Print(tag)
	WarnColorFG.Println(" " + msg)
}

// PrintInfoMessage prints an informational message to the user
func PrintInfoMessage(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// -----------------------------------------------------------------------------
// This section contains all the display functions for the different kinds of
// errors that can be logged -- these functions are called to print the error
// to the screen.

func (ce *ConfigError) display() {
	PrintErrorMessage(ce.Kind+" Error", fmt.Errorf("%s", ce.Message))
}

func (cm *CompileMessage) display() {
	cm.displayBanner()
	fmt.Println(cm.Message)

	if cm.Position != nil {
		cm.displayCodeSelection()
	}
}

// displayBanner displays the banner on top of all diagnostics
func (cm *CompileMessage) displayBanner() {
	fmt.Print("\n\n-- ")
	kindStr := messageKindNames[cm.Kind]
	kindLen := len(kindStr)
	if cm.isError() {
		ErrorStyleBG.Print(kindStr + " Error")
		kindLen += 7
	} else {
		WarnStyleBG.Print(kindStr + " Warning")
		kindLen += 9
	}

	fmt.Print(" ")

	label := cm.Context.Label
	bannerLen := pterm.GetTerminalWidth() / 2
	if bannerLen > 50 {
		bannerLen = 50
	}
	dashCount := bannerLen - len(label) - kindLen - 1
	if dashCount < 1 {
		dashCount = 1
	}

	fmt.Print(strings.Repeat("-", dashCount) + " ")
	InfoColorFG.Println(label)
}

// displayCodeSelection displays the erroneous source text (with line
// numbers) and highlights the reported span. Unlike the teacher, which
// re-opens the source file from disk, a Wisp diagnostic's LogContext always
// carries the full source string directly (the library surface takes a
// string, not a path -- see spec.md §6.1), so this reads from memory.
func (cm *CompileMessage) displayCodeSelection() {
	fmt.Println()

	allLines := strings.Split(cm.Context.Source, "\n")
	lines := make([]string, cm.Position.EndLn-cm.Position.StartLn+1)
	for lineNumber := 1; lineNumber <= len(allLines); lineNumber++ {
		if lineNumber >= cm.Position.StartLn && lineNumber <= cm.Position.EndLn {
			lines[lineNumber-cm.Position.StartLn] = allLines[lineNumber-1]
		}
	}

	// calculate whitespace to trim
	minWhitespace := -1
	for _, line := range lines {
		leadingWhitespace := 0
		for _, c := range line {
			if c == ' ' {
				leadingWhitespace++
			} else if c == '\t' {
				leadingWhitespace += 4
			} else {
				break
			}
		}

		if minWhitespace == -1 {
			minWhitespace = leadingWhitespace
		} else if minWhitespace > leadingWhitespace {
			minWhitespace = leadingWhitespace
		}
	}
	if minWhitespace < 0 {
		minWhitespace = 0
	}

	// calculate the amount to pad line numbers by and use it to build a
	// padding format string (so we can print line numbers neatly)
	maxLineNumberWidth := len(strconv.Itoa(cm.Position.EndLn)) + 1
	lineNumberFmtStr := "%-" + strconv.Itoa(maxLineNumberWidth) + "v"

	// print each line followed by a line of selecting carets
	for i, line := range lines {
		InfoColorFG.Print(fmt.Sprintf(lineNumberFmtStr, i+cm.Position.StartLn))
		fmt.Print("|  ")
		trimmed := strings.ReplaceAll(line, "\t", "    ")
		if minWhitespace <= len(trimmed) {
			trimmed = trimmed[minWhitespace:]
		}
		fmt.Println(trimmed)

		fmt.Print(strings.Repeat(" ", maxLineNumberWidth), "|  ")
		if i == 0 {
			fmt.Print(strings.Repeat(" ", max0(cm.Position.StartCol-minWhitespace)))

			if i == len(lines)-1 {
				ErrorColorFG.Print(strings.Repeat("^", max0(cm.Position.EndCol-cm.Position.StartCol)))
				fmt.Println()
			} else {
				ErrorColorFG.Println(strings.Repeat("^", max0(len(line)-cm.Position.StartCol-minWhitespace)))
			}
		} else if i == len(lines)-1 {
			ErrorColorFG.Println(strings.Repeat("^", max0(cm.Position.EndCol-minWhitespace)))
		} else {
			ErrorColorFG.Println(strings.Repeat("^", max0(len(line)-minWhitespace)))
		}
	}

	fmt.Println()
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

const fatalErrorPostlude = `
This is likely a bug in the toolchain itself, not the source program.`

func displayFatalError(msg string) {
	fmt.Print("\n\n")
	ErrorStyleBG.Print("Fatal Error ")
	ErrorColorFG.Println(msg)
	InfoColorFG.Println(fatalErrorPostlude)
}

// -----------------------------------------------------------------------------

// DisplayRunHeader displays toolchain information before starting a run.
func DisplayRunHeader(label string) {
	fmt.Print("wisp ")
	InfoColorFG.Print("v" + common.WispVersion)
	fmt.Print(" -- ")
	InfoColorFG.Println(label)
}

// phaseSpinner stores the current stage spinner (Lexing, Parsing, Analyzing,
// Running -- the four pipeline stages of spec.md §2)
var phaseSpinner *pterm.SpinnerPrinter
var currentPhase string
var phaseStartTime time.Time

const maxPhaseLength = len("Analyzing")

// DisplayBeginPhase displays the beginning of a pipeline stage
func DisplayBeginPhase(phase string) {
	currentPhase = phase
	phaseText := phase + "..." + strings.Repeat(" ", max0(maxPhaseLength-len(phase)+2))
	phaseSpinner = pterm.DefaultSpinner.WithStyle(pterm.NewStyle(InfoColorFG))

	phaseSpinner.SuccessPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: SuccessStyleBG,
			Text:  "Done",
		},
	}

	phaseSpinner.FailPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: ErrorStyleBG,
			Text:  "Fail",
		},
	}

	phaseSpinner.Start(phaseText)
	phaseStartTime = time.Now()
}

// displayEndPhase displays the end of a pipeline stage
func displayEndPhase(success bool) {
	if phaseSpinner != nil {
		if success {
			phaseSpinner.Success(
				currentPhase+strings.Repeat(" ", max0(maxPhaseLength-len(currentPhase)+2)),
				fmt.Sprintf("(%.3fs)", time.Since(phaseStartTime).Seconds()),
			)
		} else {
			phaseSpinner.Fail(currentPhase + strings.Repeat(" ", max0(maxPhaseLength-len(currentPhase)+2)))
		}

		phaseSpinner = nil
	}
}

// DisplayEndPhase is the exported form used by the host after a stage
// completes successfully.
func DisplayEndPhase(success bool) {
	displayEndPhase(success)
}

// DisplayRunFinished displays a closing summary after the pipeline halts.
func DisplayRunFinished(success bool, errorCount, warningCount int) {
	fmt.Print("\n")

	if success {
		SuccessColorFG.Print("All done! ")
	} else {
		ErrorColorFG.Print("Oh no! ")
	}

	fmt.Print("(")

	switch errorCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Print(" errors, ")
	case 1:
		ErrorColorFG.Print(1)
		fmt.Print(" error, ")
	default:
		ErrorColorFG.Print(errorCount)
		fmt.Print(" errors, ")
	}

	switch warningCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Println(" warnings)")
	case 1:
		WarnColorFG.Print(1)
		fmt.Println(" warning)")
	default:
		WarnColorFG.Print(warningCount)
		fmt.Println(" warnings)")
	}
}
