package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/kurochkinivan/dashboard_client/internal/domain"
)

func RemoteFiles(w io.Writer, files []*domain.RemoteFile) {
	if len(files) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("no uploaded files"))
		return
	}

	tbl := newTable("File", "Size", "Modified")
	for _, f := range files {
		tbl.Row(f.Filename, HumanSize(f.Size), f.Modified)
	}

	fmt.Fprintln(w, tbl.String())
}

func DailyReport(w io.Writer, r *domain.DailyReport) {
	fmt.Fprintln(w, titleStyle.Render("Daily report "+r.Date))
	fmt.Fprint(w, reportSummary(r.TotalOperations, r.PeopleCount, r.Average()))

	tbl := newTable("#", "Team", "Name", "Account", "Today", "Month")
	for i, row := range r.Ranked() {
		tbl.Row(fmt.Sprint(i+1), row.Team, row.Name, row.Account, fmt.Sprint(row.DailyCount), fmt.Sprint(row.MonthlyCount))
	}

	fmt.Fprintln(w, tbl.String())
}

func MonthlyReport(w io.Writer, r *domain.MonthlyReport) {
	fmt.Fprintln(w, titleStyle.Render("Monthly report "+r.YearMonth))
	fmt.Fprint(w, reportSummary(r.TotalOperations, r.PeopleCount, r.Average()))

	tbl := newTable("#", "Team", "Name", "Account", "Total")
	for i, row := range r.Ranked() {
		tbl.Row(fmt.Sprint(i+1), row.Team, row.Name, row.Account, fmt.Sprint(row.TotalCount))
	}

	fmt.Fprintln(w, tbl.String())
}

func reportSummary(total, people int, avg float64) string {
	return fmt.Sprintf("Total operations: %d\nParticipants: %d\nAverage per person: %.1f\n", total, people, avg)
}

func TeamLeaders(w io.Writer, leaders []*domain.TeamLeader) {
	if len(leaders) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("no team leaders"))
		return
	}

	tbl := newTable("ID", "Team", "Account", "Name")
	for _, l := range leaders {
		tbl.Row(fmt.Sprint(l.ID), l.TeamName, l.AccountID, l.Name)
	}

	fmt.Fprintln(w, tbl.String())
}

func Schedule(w io.Writer, s *domain.Schedule) {
	state := failStyle.Render("disabled")
	if s.Enabled {
		state = okStyle.Render("enabled")
	}

	fmt.Fprintf(w, "Scheduled report: %s, daily at %s\n", state, s.Time)
}

// ImportResult is the outcome of importing one roster row.
type ImportResult struct {
	Line   int
	Leader *domain.TeamLeader
	Err    error
}

func ImportResults(w io.Writer, results []ImportResult) {
	tbl := newTable("Line", "Account", "Name", "Result")

	failed := 0
	for _, r := range results {
		account, name := "", ""
		if r.Leader != nil {
			account, name = r.Leader.AccountID, r.Leader.Name
		}

		result := okStyle.Render("added")
		if r.Err != nil {
			failed++
			result = failStyle.Render(strings.TrimSpace(r.Err.Error()))
		}

		tbl.Row(fmt.Sprint(r.Line), account, name, result)
	}

	fmt.Fprintln(w, tbl.String())
	fmt.Fprintf(w, "%d imported, %d failed\n", len(results)-failed, failed)
}

func Message(w io.Writer, msg string) {
	fmt.Fprintln(w, okStyle.Render(msg))
}
