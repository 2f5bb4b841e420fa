package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ivanoskov/smartbalance_bot/internal/locale"
	"github.com/ivanoskov/smartbalance_bot/internal/service"
)

// ChartGenerator рисует PNG-графики к отчетам
type ChartGenerator struct {
	width  int
	height int
}

// NewChartGenerator создает новый генератор графиков
func NewChartGenerator() *ChartGenerator {
	return &ChartGenerator{width: 1000, height: 600}
}

var background = chart.Style{
	Padding: chart.Box{
		Top:    50,
		Left:   50,
		Right:  50,
		Bottom: 50,
	},
	FillColor: chart.ColorWhite,
}

var (
	colorIncome  = drawing.ColorFromHex("2e7d32")
	colorExpense = drawing.ColorFromHex("c62828")
	colorNet     = drawing.ColorFromHex("1565c0")
)

// CategoryPie круговая диаграмма коммунальных платежей по категориям.
// Без данных возвращает nil без ошибки.
func (g *ChartGenerator) CategoryPie(lang string, stats []service.CategoryAmount, currency string) ([]byte, error) {
	total := 0.0
	for _, c := range stats {
		if c.Amount.IsPositive() {
			total += c.Amount.InexactFloat64()
		}
	}
	if total == 0 {
		return nil, nil
	}

	values := make([]chart.Value, 0, len(stats))
	for _, c := range stats {
		if !c.Amount.IsPositive() {
			continue
		}
		amount := c.Amount.InexactFloat64()
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: %s (%.1f%%)",
				locale.CategoryLabel(lang, c.Category),
				locale.FormatMoney(c.Amount, currency),
				amount/total*100),
			Value: amount,
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		})
	}

	pie := chart.PieChart{
		Title:      locale.Label(lang, locale.UtilityStats),
		Width:      g.height,
		Height:     g.height,
		Values:     values,
		Background: background,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render category pie chart: %w", err)
	}
	return buffer.Bytes(), nil
}

// BalanceChart столбцы доходов, расходов и чистого результата.
// Пустой период (нет ни доходов, ни расходов) дает nil.
func (g *ChartGenerator) BalanceChart(lang, title string, totals service.Totals) ([]byte, error) {
	if totals.Income.IsZero() && totals.Expense.IsZero() {
		return nil, nil
	}

	bar := func(key locale.Key, value float64, color drawing.Color) chart.Value {
		return chart.Value{
			Label: locale.Label(lang, key),
			Value: value,
			Style: chart.Style{
				StrokeColor: color,
				FillColor:   color,
				FontSize:    12,
				FontColor:   chart.ColorBlack,
			},
		}
	}

	graph := chart.BarChart{
		Title: title,
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: chart.ColorBlack,
		},
		Width:      g.width,
		Height:     g.height,
		BarWidth:   120,
		Background: background,
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f %s", f, totals.Currency)
				}
				return ""
			},
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Bars: []chart.Value{
			bar(locale.TotalIncome, totals.Income.InexactFloat64(), colorIncome),
			bar(locale.TotalExpense, totals.Expense.InexactFloat64(), colorExpense),
			bar(locale.NetProfit, totals.Net.InexactFloat64(), colorNet),
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render balance chart: %w", err)
	}
	return buffer.Bytes(), nil
}

// MonthlyChart график месячного отчета с названием месяца в заголовке
func (g *ChartGenerator) MonthlyChart(lang string, report *service.MonthlyReport) ([]byte, error) {
	title := fmt.Sprintf("%s %d", locale.MonthName(lang, report.Month), report.Year)
	return g.BalanceChart(lang, title, report.Totals)
}
