package report_generator

import (
	"fmt"
	"strconv"

	"github.com/kurochkinivan/dashboard_client/internal/domain"
)

// sheet is a report flattened to the table every document format draws.
type sheet struct {
	Title   string
	Summary []string
	Headers []string
	Rows    [][]string
	Widths  []int // grid columns out of 12, one per header
}

func dailySheet(r *domain.DailyReport) *sheet {
	s := &sheet{
		Title:   "Daily report " + r.Date,
		Summary: summary(r.TotalOperations, r.PeopleCount, r.Average()),
		Headers: []string{"#", "Team", "Name", "Account", "Today", "Month"},
		Widths:  []int{1, 3, 2, 2, 2, 2},
	}

	for i, row := range r.Ranked() {
		s.Rows = append(s.Rows, []string{
			strconv.Itoa(i + 1),
			row.Team,
			row.Name,
			row.Account,
			strconv.Itoa(row.DailyCount),
			strconv.Itoa(row.MonthlyCount),
		})
	}

	return s
}

func monthlySheet(r *domain.MonthlyReport) *sheet {
	s := &sheet{
		Title:   "Monthly report " + r.YearMonth,
		Summary: summary(r.TotalOperations, r.PeopleCount, r.Average()),
		Headers: []string{"#", "Team", "Name", "Account", "Total"},
		Widths:  []int{1, 4, 3, 2, 2},
	}

	for i, row := range r.Ranked() {
		s.Rows = append(s.Rows, []string{
			strconv.Itoa(i + 1),
			row.Team,
			row.Name,
			row.Account,
			strconv.Itoa(row.TotalCount),
		})
	}

	return s
}

func summary(total, people int, avg float64) []string {
	return []string{
		fmt.Sprintf("Total operations: %d", total),
		fmt.Sprintf("Participants: %d", people),
		fmt.Sprintf("Average per person: %.1f", avg),
	}
}
