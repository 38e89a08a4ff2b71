package domain

import (
	"cmp"
	"slices"
)

type DailyRow struct {
	Account      string `json:"account"       csv:"account"`
	Name         string `json:"name"          csv:"name"`
	Team         string `json:"team"          csv:"team"`
	DailyCount   int    `json:"daily_count"   csv:"daily_count"`
	MonthlyCount int    `json:"monthly_count" csv:"monthly_count"`
}

type DailyReport struct {
	Date            string      `json:"date"`
	TotalOperations int         `json:"total_operations"`
	PeopleCount     int         `json:"people_count"`
	Data            []*DailyRow `json:"data"`
}

func (r *DailyReport) Average() float64 {
	return average(r.TotalOperations, r.PeopleCount)
}

type MonthlyRow struct {
	Account    string `json:"account"     csv:"account"`
	Name       string `json:"name"        csv:"name"`
	Team       string `json:"team"        csv:"team"`
	TotalCount int    `json:"total_count" csv:"total_count"`
}

type MonthlyReport struct {
	YearMonth       string        `json:"year_month"`
	TotalOperations int           `json:"total_operations"`
	PeopleCount     int           `json:"people_count"`
	Data            []*MonthlyRow `json:"data"`
}

func (r *MonthlyReport) Average() float64 {
	return average(r.TotalOperations, r.PeopleCount)
}

func average(total, people int) float64 {
	if people == 0 {
		return 0
	}

	return float64(total) / float64(people)
}

// Ranked returns the rows ordered by daily count, highest first.
func (r *DailyReport) Ranked() []*DailyRow {
	rows := slices.Clone(r.Data)
	slices.SortStableFunc(rows, func(a, b *DailyRow) int {
		if c := cmp.Compare(b.DailyCount, a.DailyCount); c != 0 {
			return c
		}
		return cmp.Compare(a.Account, b.Account)
	})

	return rows
}

// Ranked returns the rows ordered by monthly total, highest first.
func (r *MonthlyReport) Ranked() []*MonthlyRow {
	rows := slices.Clone(r.Data)
	slices.SortStableFunc(rows, func(a, b *MonthlyRow) int {
		if c := cmp.Compare(b.TotalCount, a.TotalCount); c != 0 {
			return c
		}
		return cmp.Compare(a.Account, b.Account)
	})

	return rows
}
