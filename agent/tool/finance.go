package tool

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"

	contractx "github.com/surrogate-labs/surrogate-agent/agent/contract"
	"github.com/surrogate-labs/surrogate-agent/agent/numeric"
)

const simulatedDataNote = " (Note: Simulated Data - Search failed to retrieve live price)"

// FinancialReport is a derived, per-request view; it is never persisted.
type FinancialReport struct {
	Symbol         string   `json:"symbol"`
	Price          float64  `json:"price"`
	Currency       string   `json:"currency"`
	Change         float64  `json:"change"`
	ChangePercent  float64  `json:"changePercent"`
	MarketCap      string   `json:"marketCap"`
	PERatio        *float64 `json:"peRatio"`
	Week52High     float64  `json:"week52High"`
	Week52Low      float64  `json:"week52Low"`
	Recommendation string   `json:"recommendation"`
	Analysis       string   `json:"analysis"`
}

// FinanceHandler builds market reports from model-supplied fields, falling
// back to internally consistent simulated data when no usable price came
// through. It degrades instead of failing: the only failure modes are a
// missing symbol and an unknown command.
type FinanceHandler struct{}

var _ contractx.Handler = (*FinanceHandler)(nil)

func NewFinanceHandler() *FinanceHandler {
	return &FinanceHandler{}
}

func (h *FinanceHandler) Execute(ctx context.Context, command string, params map[string]any) (contractx.AgentResult, error) {
	switch command {
	case "analyze_stock":
		return h.analyzeStock(params), nil
	default:
		return unknownCommand("finance"), nil
	}
}

func (h *FinanceHandler) analyzeStock(params map[string]any) contractx.AgentResult {
	symbol := stringParam(params, "symbol")
	if symbol == "" {
		return failure("Missing stock symbol (e.g., AAPL, BTC).")
	}
	symbol = strings.ToUpper(symbol)

	var report FinancialReport
	// A price of 0 means the model sent nothing usable ("N/A", absent,
	// unparseable); only a strictly positive price selects the live path.
	if price := numeric.Normalize(params["price"]); price > 0 {
		report = liveReport(symbol, price, params)
	} else {
		report = simulatedReport(symbol)
	}

	return contractx.AgentResult{
		Success: true,
		Message: fmt.Sprintf("I've analyzed the latest market data for %s.", report.Symbol),
		Data:    report,
		Kind:    contractx.PayloadFinanceReport,
	}
}

func liveReport(symbol string, price float64, params map[string]any) FinancialReport {
	change := numeric.Normalize(params["change"])
	changePercent := numeric.Normalize(params["changePercent"])
	if changePercent == 0 && change != 0 {
		changePercent = round2(change / price * 100)
	}

	week52High := numeric.Normalize(params["week52High"])
	week52Low := numeric.Normalize(params["week52Low"])
	if week52High == 0 || week52Low == 0 {
		week52High = price * 1.25
		week52Low = price * 0.75
	}

	var peRatio *float64
	if pe := numeric.Normalize(params["peRatio"]); pe != 0 {
		peRatio = &pe
	}

	marketCap := stringParam(params, "marketCap")
	if marketCap == "" {
		marketCap = "N/A"
	}
	currency := stringParam(params, "currency")
	if currency == "" {
		currency = "USD"
	}

	recommendation := stringParam(params, "recommendation")
	switch recommendation {
	case "BUY", "SELL", "HOLD":
	default:
		recommendation = recommend(changePercent)
	}

	analysis := stringParam(params, "analysis")
	if analysis == "" {
		analysis = fmt.Sprintf("Real-time market data retrieved for %s.", symbol)
	}

	return FinancialReport{
		Symbol:         symbol,
		Price:          price,
		Currency:       currency,
		Change:         change,
		ChangePercent:  changePercent,
		MarketCap:      marketCap,
		PERatio:        peRatio,
		Week52High:     week52High,
		Week52Low:      week52Low,
		Recommendation: recommendation,
		Analysis:       analysis,
	}
}

// simulatedReport synthesizes a random but internally consistent report:
// the percent change derives from the same random delta as the absolute
// change, so the recommendation stays coherent with the numbers shown.
func simulatedReport(symbol string) FinancialReport {
	basePrice := rand.Float64()*1000 + 50
	change := rand.Float64()*20 - 10
	percent := change / basePrice * 100
	peRatio := round2(rand.Float64()*50 + 10)

	return FinancialReport{
		Symbol:         symbol,
		Price:          round2(basePrice),
		Currency:       "USD",
		Change:         round2(change),
		ChangePercent:  round2(percent),
		MarketCap:      fmt.Sprintf("%.1fT", rand.Float64()*2+0.5),
		PERatio:        &peRatio,
		Week52High:     round2(basePrice * 1.2),
		Week52Low:      round2(basePrice * 0.8),
		Recommendation: recommend(percent),
		Analysis:       "Generated based on simulated market volatility and technical indicators." + simulatedDataNote,
	}
}

func recommend(changePercent float64) string {
	switch {
	case changePercent > 1:
		return "BUY"
	case changePercent < -1:
		return "SELL"
	default:
		return "HOLD"
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
