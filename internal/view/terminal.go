package view

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/kurochkinivan/dashboard_client/internal/domain"
	"github.com/kurochkinivan/dashboard_client/internal/uploader"
)

const barWidth = 30

// Terminal projects upload session snapshots onto a terminal. It only
// prints what changed since the previous snapshot.
type Terminal struct {
	out io.Writer

	phase    uploader.Phase
	progress int
	files    []*domain.FileHandle
	rendered bool
}

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out, progress: -1}
}

func (t *Terminal) Render(s uploader.Snapshot) {
	prev := t.phase
	t.phase = s.State.Phase

	switch s.State.Phase {
	case uploader.PhaseInFlight:
		if prev != uploader.PhaseInFlight {
			t.progress = -1
		}
		if s.State.Progress != t.progress {
			t.progress = s.State.Progress
			fmt.Fprintf(t.out, "\ruploading %s %3d%%", ProgressBar(s.State.Progress, barWidth), s.State.Progress)
		}

	case uploader.PhaseCompleted:
		fmt.Fprintln(t.out)
		if s.State.Outcomes != nil {
			fmt.Fprint(t.out, Outcomes(s.State.Outcomes))
		}

	case uploader.PhaseFailed:
		fmt.Fprintln(t.out)

	case uploader.PhaseIdle:
		if prev == uploader.PhaseCompleted || prev == uploader.PhaseFailed {
			t.files = s.Files
			return
		}

		if t.rendered && sameFiles(t.files, s.Files) {
			return
		}

		t.files = s.Files
		fmt.Fprint(t.out, Selection(s.Files))
	}

	t.rendered = true
}

func (t *Terminal) Advise(message string) {
	fmt.Fprintln(t.out, warnStyle.Render("! "+message))
}

// Selection lists the pending files; an empty selection is a single line.
func Selection(files []*domain.FileHandle) string {
	if len(files) == 0 {
		return mutedStyle.Render("no files selected") + "\n"
	}

	var total int64
	tbl := newTable("#", "File", "Size")
	for i, f := range files {
		total += f.Size
		tbl.Row(fmt.Sprint(i+1), f.Name, HumanSize(f.Size))
	}

	return tbl.String() + "\n" + fmt.Sprintf("%d file(s), %s\n", len(files), HumanSize(total))
}

// Outcomes renders the per-file results of one upload.
func Outcomes(resp *domain.UploadResponse) string {
	var b strings.Builder

	if resp.Message != "" {
		b.WriteString(titleStyle.Render(resp.Message) + "\n")
	}

	tbl := newTable("File", "Result", "Message", "Date", "Operations", "People")
	for _, o := range resp.Results {
		result := okStyle.Render("ok")
		if !o.Success {
			result = failStyle.Render("failed")
		}

		date, ops, people := "", "", ""
		if o.Data != nil {
			date = o.Data.Date
			ops = fmt.Sprint(o.Data.TotalOperations)
			people = fmt.Sprint(o.Data.People)
		}

		tbl.Row(o.Filename, result, o.Message, date, ops, people)
	}

	b.WriteString(tbl.String() + "\n")
	fmt.Fprintf(&b, "%d of %d file(s) processed\n", resp.Succeeded(), len(resp.Results))

	return b.String()
}

// ProgressBar draws percent as a bar of width cells.
func ProgressBar(percent, width int) string {
	percent = min(max(percent, 0), 100)
	full := percent * width / 100

	return "[" + barFullStyle.Render(strings.Repeat("#", full)) + strings.Repeat(".", width-full) + "]"
}

func sameFiles(a, b []*domain.FileHandle) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// LogRenderer reports upload session transitions through the logger, for
// unattended runs where nobody watches a progress bar.
type LogRenderer struct {
	log   *slog.Logger
	phase uploader.Phase
}

func NewLogRenderer(log *slog.Logger) *LogRenderer {
	return &LogRenderer{log: log}
}

func (r *LogRenderer) Render(s uploader.Snapshot) {
	if s.State.Phase == r.phase {
		return
	}
	r.phase = s.State.Phase

	r.log.Debug("upload session changed",
		slog.String("phase", s.State.Phase.String()),
		slog.Int("pending", len(s.Files)),
		slog.Int("progress", s.State.Progress),
	)
}

func (r *LogRenderer) Advise(message string) {
	r.log.Warn(message)
}
