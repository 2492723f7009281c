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

package status

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/walteh/masterlib/pkg/frame"
)

// 📋 Report renders final run statistics. Pure formatting, no decision
// logic: the numbers are taken as-is from the accumulator.
type Report struct {
	Stats  *RunStatistics
	DryRun bool
}

// Render writes the summary table (and dry-run trailer) to w
func (r *Report) Render(w io.Writer) {
	tw := table.NewWriter()
	if isTerminal(w) {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}

	tw.AppendHeader(table.Row{"TYPE", "CLASSIFIED", "COPIED", "SKIPPED", "FAILED"})
	for _, t := range []frame.Type{frame.TypeBias, frame.TypeDark, frame.TypeFlat} {
		c := r.Stats.PerType[t]
		tw.AppendRow(table.Row{t.String(), c.Classified, c.Copied, c.SkippedExists, c.Failed})
	}
	tw.AppendFooter(table.Row{
		"TOTAL",
		r.Stats.Total.Classified,
		r.Stats.Total.Copied,
		r.Stats.Total.SkippedExists,
		r.Stats.Total.Failed,
	})

	columnConfigs := make([]table.ColumnConfig, 0, 5)
	for i := 2; i <= 5; i++ {
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i,
			Align:       text.AlignRight,
			AlignFooter: text.AlignRight,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	fmt.Fprintln(w, tw.Render())
	fmt.Fprintf(w, "scanned=%d  unrecognized=%d  rejected=%d\n",
		r.Stats.Total.Scanned,
		r.Stats.Total.SkippedUnrecognized,
		r.Stats.Total.Rejected,
	)

	if r.DryRun {
		fmt.Fprintln(w, "(DRY RUN - no files were actually copied)")
	}
}

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
