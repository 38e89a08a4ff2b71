package report_generator_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jszwec/csvutil"
	"github.com/kurochkinivan/dashboard_client/internal/domain"
	"github.com/kurochkinivan/dashboard_client/internal/infrastructure/report_generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func dailyReport() *domain.DailyReport {
	return &domain.DailyReport{
		Date:            "2024-01-01",
		TotalOperations: 12,
		PeopleCount:     3,
		Data: []*domain.DailyRow{
			{Account: "a1", Name: "Ann", Team: "North", DailyCount: 2, MonthlyCount: 20},
			{Account: "a2", Name: "Bob", Team: "South", DailyCount: 7, MonthlyCount: 30},
			{Account: "a3", Name: "Cid", Team: "North", DailyCount: 3, MonthlyCount: 9},
		},
	}
}

func monthlyReport() *domain.MonthlyReport {
	return &domain.MonthlyReport{
		YearMonth:       "2024-01",
		TotalOperations: 59,
		PeopleCount:     2,
		Data: []*domain.MonthlyRow{
			{Account: "a1", Name: "Ann", Team: "North", TotalCount: 20},
			{Account: "a2", Name: "Bob", Team: "South", TotalCount: 39},
		},
	}
}

func TestFormatOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		want    report_generator.Format
		wantErr bool
	}{
		{path: "out/daily.pdf", want: report_generator.FormatPDF},
		{path: "daily.XLSX", want: report_generator.FormatXLSX},
		{path: "daily.csv", want: report_generator.FormatCSV},
		{path: "daily.txt", wantErr: true},
		{path: "daily", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			got, err := report_generator.FormatOf(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, domain.IsValidation(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerator_GenerateDaily_CSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "daily.csv")

	err := report_generator.New("").GenerateDaily(path, dailyReport())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var rows []*domain.DailyRow
	require.NoError(t, csvutil.Unmarshal(data, &rows))

	require.Len(t, rows, 3)
	// строки отсортированы по убыванию дневного счетчика
	assert.Equal(t, []string{"a2", "a3", "a1"}, []string{rows[0].Account, rows[1].Account, rows[2].Account})
	assert.Equal(t, 30, rows[0].MonthlyCount)
}

func TestGenerator_GenerateMonthly_XLSX(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "monthly.xlsx")

	err := report_generator.New("").GenerateMonthly(path, monthlyReport())
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	rows, err := f.GetRows("Report")
	require.NoError(t, err)

	require.NotEmpty(t, rows)
	assert.Equal(t, "Monthly report 2024-01", rows[0][0])
	assert.Equal(t, "Average per person: 29.5", rows[3][0])

	last := rows[len(rows)-2:]
	assert.Equal(t, []string{"1", "South", "Bob", "a2", "39"}, last[0])
	assert.Equal(t, []string{"2", "North", "Ann", "a1", "20"}, last[1])
}

func TestGenerator_GenerateDaily_PDF(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "daily.pdf")

	err := report_generator.New("").GenerateDaily(path, dailyReport())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestGenerator_UnsupportedExtension(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "daily.doc")

	err := report_generator.New("").GenerateDaily(path, dailyReport())
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func cjkDailyReport() *domain.DailyReport {
	return &domain.DailyReport{
		Date:            "2024-01-01",
		TotalOperations: 4,
		PeopleCount:     2,
		Data: []*domain.DailyRow{
			{Account: "acc1", Name: "张三", Team: "一组", DailyCount: 3, MonthlyCount: 10},
			{Account: "acc2", Name: "李四", Team: "二组", DailyCount: 1, MonthlyCount: 4},
		},
	}
}

func TestGenerator_GenerateDaily_PDF_CJKNeedsFont(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "daily.pdf")

	err := report_generator.New("").GenerateDaily(path, cjkDailyReport())
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "reports.font")

	// без шрифта файл не создается, вместо него ошибка
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerator_GenerateDaily_PDF_MissingFont(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	err := report_generator.New(filepath.Join(dir, "missing.ttf")).GenerateDaily(filepath.Join(dir, "daily.pdf"), cjkDailyReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load font")
}

func TestGenerator_GenerateDaily_PDF_CJK(t *testing.T) {
	t.Parallel()

	font := report_generator.FindFont()
	if font == "" {
		t.Skip("no CJK TrueType font installed")
	}

	path := filepath.Join(t.TempDir(), "daily.pdf")

	err := report_generator.New(font).GenerateDaily(path, cjkDailyReport())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
	// шрифт встроен как составной Unicode-шрифт, а не как core-шрифт
	assert.Contains(t, string(data), "Identity-H")
	assert.NotContains(t, string(data), "(..) Tj")
}
