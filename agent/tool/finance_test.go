package tool

import (
	"context"
	"strings"
	"testing"

	contractx "github.com/surrogate-labs/surrogate-agent/agent/contract"
)

func TestFinanceAnalyzeStockLive(t *testing.T) {
	t.Parallel()

	h := NewFinanceHandler()
	res, err := h.Execute(context.Background(), "analyze_stock", map[string]any{
		"symbol": "aapl",
		"price":  "150.25",
		"change": "-2.1",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !res.Success {
		t.Fatalf("Execute() failed: %s", res.Message)
	}
	if res.Kind != contractx.PayloadFinanceReport {
		t.Fatalf("Kind = %s, want FINANCE_REPORT", res.Kind)
	}

	report, ok := res.Data.(FinancialReport)
	if !ok {
		t.Fatalf("unexpected payload type %T", res.Data)
	}
	if report.Symbol != "AAPL" {
		t.Fatalf("Symbol = %s, want AAPL", report.Symbol)
	}
	if report.Price != 150.25 {
		t.Fatalf("Price = %v", report.Price)
	}
	if report.ChangePercent != -1.4 {
		t.Fatalf("ChangePercent = %v, want -1.4", report.ChangePercent)
	}
	if report.Recommendation != "SELL" {
		t.Fatalf("Recommendation = %s, want SELL", report.Recommendation)
	}
	if strings.Contains(report.Analysis, "Simulated Data") {
		t.Fatalf("live report flagged as simulated: %s", report.Analysis)
	}
	if report.Week52High != 150.25*1.25 || report.Week52Low != 150.25*0.75 {
		t.Fatalf("52-week fallback wrong: %v / %v", report.Week52High, report.Week52Low)
	}
	if report.PERatio != nil {
		t.Fatal("PERatio must stay nil when the model sent none")
	}
}

func TestFinanceAnalyzeStockRespectsModelRecommendation(t *testing.T) {
	t.Parallel()

	h := NewFinanceHandler()
	res, err := h.Execute(context.Background(), "analyze_stock", map[string]any{
		"symbol":         "MSFT",
		"price":          400,
		"change":         -8,
		"recommendation": "BUY",
		"peRatio":        "35.2",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	report := res.Data.(FinancialReport)
	if report.Recommendation != "BUY" {
		t.Fatalf("Recommendation = %s, want model-supplied BUY", report.Recommendation)
	}
	if report.PERatio == nil || *report.PERatio != 35.2 {
		t.Fatalf("PERatio = %v", report.PERatio)
	}
}

func TestFinanceAnalyzeStockNullPERatio(t *testing.T) {
	t.Parallel()

	h := NewFinanceHandler()
	for _, pe := range []any{nil, "N/A", 0} {
		res, err := h.Execute(context.Background(), "analyze_stock", map[string]any{
			"symbol":  "AAPL",
			"price":   150.25,
			"peRatio": pe,
		})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		report := res.Data.(FinancialReport)
		if report.PERatio != nil {
			t.Fatalf("PERatio = %v for peRatio=%v, want nil", *report.PERatio, pe)
		}
	}
}

func TestFinanceAnalyzeStockSimulated(t *testing.T) {
	t.Parallel()

	h := NewFinanceHandler()
	ctx := context.Background()

	var reports []FinancialReport
	for i := 0; i < 2; i++ {
		res, err := h.Execute(ctx, "analyze_stock", map[string]any{
			"symbol": "BTC",
			"price":  "N/A",
		})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		report := res.Data.(FinancialReport)
		if !strings.Contains(report.Analysis, "Simulated Data") {
			t.Fatalf("simulated report missing note: %s", report.Analysis)
		}
		if report.Price <= 0 || report.Week52High <= report.Week52Low {
			t.Fatalf("incoherent simulated report: %+v", report)
		}
		switch report.Recommendation {
		case "BUY", "SELL", "HOLD":
		default:
			t.Fatalf("Recommendation = %s", report.Recommendation)
		}
		reports = append(reports, report)
	}

	if reports[0].Price == reports[1].Price && reports[0].Change == reports[1].Change {
		t.Fatal("simulated runs should vary")
	}
}

func TestFinanceAnalyzeStockMissingSymbol(t *testing.T) {
	t.Parallel()

	h := NewFinanceHandler()
	res, err := h.Execute(context.Background(), "analyze_stock", map[string]any{})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Success {
		t.Fatal("expected failure without symbol")
	}
	if res.Message != "Missing stock symbol (e.g., AAPL, BTC)." {
		t.Fatalf("Message = %q", res.Message)
	}
}

func TestRecommend(t *testing.T) {
	t.Parallel()

	cases := []struct {
		percent float64
		want    string
	}{
		{2.5, "BUY"},
		{1.01, "BUY"},
		{1, "HOLD"},
		{0, "HOLD"},
		{-1, "HOLD"},
		{-1.01, "SELL"},
		{-5, "SELL"},
	}
	for _, tc := range cases {
		if got := recommend(tc.percent); got != tc.want {
			t.Errorf("recommend(%v) = %s, want %s", tc.percent, got, tc.want)
		}
	}
}
