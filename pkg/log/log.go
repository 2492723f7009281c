// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 45 // Base width for source filename
	statusWidth = 12 // Width for status text
)

// 🎯 Outcome is the per-file result shown on the console
type Outcome string

const (
	OutcomeCopied     Outcome = "copied"
	OutcomeDryRun     Outcome = "would copy"
	OutcomeSkipped    Outcome = "skipped"
	OutcomeRejected   Outcome = "rejected"
	OutcomeFailed     Outcome = "failed"
	OutcomeUnreadable Outcome = "unreadable"
)

// 🎯 FileOperation represents one processed file for logging
type FileOperation struct {
	Source  string  // Source file path
	Dest    string  // Destination path (empty when rejected)
	Type    string  // Frame type directory name, when classified
	Outcome Outcome // Final per-file outcome
	Reason  string  // Rejection reason or failure detail
}

// 🎯 Logger pairs human console output with zerolog structured events.
// Quiet mode suppresses per-file lines; headers and the final summary
// always print.
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	quiet   bool
	mu      sync.Mutex
}

// 🏭 New creates a new logger writing human output to console
func New(console io.Writer, zlog zerolog.Logger, quiet bool) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
		quiet:   quiet,
	}
}

// Console returns the writer human-facing output goes to
func (l *Logger) Console() io.Writer {
	return l.console
}

// 📝 formatFileOperation formats a file operation for display
func (l *Logger) formatFileOperation(op FileOperation) string {
	var symbol string
	switch op.Outcome {
	case OutcomeCopied:
		symbol = color.GreenString("✓")
	case OutcomeDryRun:
		symbol = color.CyanString("~")
	case OutcomeSkipped:
		symbol = color.YellowString("-")
	case OutcomeFailed, OutcomeUnreadable:
		symbol = color.RedString("✗")
	default:
		symbol = color.HiBlackString("·")
	}

	line := fmt.Sprintf("%*s%s %-*s %-*s",
		fileIndent, "", symbol, nameWidth, op.Source, statusWidth, string(op.Outcome))

	switch {
	case op.Reason != "":
		line += " " + color.New(color.Faint).Sprint(op.Reason)
	case op.Dest != "":
		line += " " + color.New(color.Faint).Sprint("-> "+op.Dest)
	}
	return line
}

// 📝 LogFileOperation logs one processed file
func (l *Logger) LogFileOperation(op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.quiet {
		fmt.Fprintln(l.console, l.formatFileOperation(op))
	}

	l.zlog.Info().
		Str("source", op.Source).
		Str("dest", op.Dest).
		Str("frame_type", op.Type).
		Str("outcome", string(op.Outcome)).
		Str("reason", op.Reason).
		Msg("file processed")
}

// 📝 Header prints the run banner
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("masterlib")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	pterm.Success.WithWriter(l.console).Println(msg)
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	pterm.Warning.WithWriter(l.console).Println(msg)
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	pterm.Error.WithWriter(l.console).Println(msg)
	l.zlog.Error().Msg(msg)
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
