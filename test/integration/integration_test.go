package integration

import (
	"bytes"
	"encoding/csv"
	"math"
	"strings"
	"testing"

	"github.com/iwvelando/deal-metrics/internal/config"
	"github.com/iwvelando/deal-metrics/internal/scenario"
	"github.com/iwvelando/deal-metrics/pkg/output"
	"github.com/iwvelando/deal-metrics/pkg/testutil"
	"go.uber.org/zap"
)

func analyzeDealBook(t *testing.T, path string) []scenario.Result {
	t.Helper()
	logger := zap.NewNop()

	conf, err := config.LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Fatalf("unexpected configuration warnings: %v", warnings)
	}

	deals, err := conf.Assumptions()
	if err != nil {
		t.Fatalf("Assumptions() error = %v", err)
	}

	orchestrator, err := scenario.NewOrchestrator(logger, scenario.DefaultAnalyzers(logger)...)
	if err != nil {
		t.Fatalf("NewOrchestrator() error = %v", err)
	}

	results, err := orchestrator.AnalyzeAll(deals)
	if err != nil {
		t.Fatalf("AnalyzeAll() error = %v", err)
	}
	return results
}

// TestDealBookBaseline runs the sample deal book exactly as main() does and
// checks headline metrics against hand-computed values.
func TestDealBookBaseline(t *testing.T) {
	results := analyzeDealBook(t, "../test_deals.yaml")

	expectedDeals := []string{"Elm Street Duplex", "Lake Cabin", "Oak Fixer", "Maple Comps Flip"}
	if len(results) != len(expectedDeals) {
		t.Fatalf("Expected %d deals, got %d", len(expectedDeals), len(results))
	}
	for i, expected := range expectedDeals {
		if results[i].Name != expected {
			t.Errorf("Expected deal %s at position %d, got %s", expected, i, results[i].Name)
		}
	}

	baselineChecks := []struct {
		deal      string
		metric    string
		value     func(scenario.Result) float64
		expected  float64
		tolerance float64
	}{
		{"Elm Street Duplex", "noi", func(r scenario.Result) float64 { return r.NOI }, 15600, 1e-6},
		{"Elm Street Duplex", "capRate", func(r scenario.Result) float64 { return r.CapRate }, 7.8, 1e-9},
		{"Elm Street Duplex", "monthlyDebtService", func(r scenario.Result) float64 { return r.MonthlyDebtService }, 899.33, 0.01},
		{"Elm Street Duplex", "npv", func(r scenario.Result) float64 { return r.NPV }, 12740.03, 0.05},
		{"Elm Street Duplex", "irr", func(r scenario.Result) float64 { return r.IRRPercent }, 12.4425, 0.001},
		{"Lake Cabin", "noi", func(r scenario.Result) float64 { return r.NOI }, 14850, 1e-6},
		{"Oak Fixer", "profit", func(r scenario.Result) float64 { return r.Profit }, 70000, 1e-9},
		{"Oak Fixer", "annualizedReturn", func(r scenario.Result) float64 { return r.AnnualizedReturn }, 42.6698, 0.001},
		{"Maple Comps Flip", "estimatedArv", func(r scenario.Result) float64 { return r.EstimatedARV }, 350000, 1e-6},
		{"Maple Comps Flip", "profit", func(r scenario.Result) float64 { return r.Profit }, 75000, 1e-6},
	}

	for _, check := range baselineChecks {
		result := testutil.FindResult(results, check.deal)
		if result == nil {
			t.Errorf("Deal '%s' not found in results", check.deal)
			continue
		}
		if got := check.value(*result); math.Abs(got-check.expected) > check.tolerance {
			t.Errorf("Deal '%s' %s: expected %.4f, got %.4f", check.deal, check.metric, check.expected, got)
		}
	}
}

// TestCSVOutputFormat checks that the CSV report has one row per deal and
// round-trips through a CSV reader.
func TestCSVOutputFormat(t *testing.T) {
	results := analyzeDealBook(t, "../test_deals.yaml")

	var buf bytes.Buffer
	if err := output.CsvFormat(&buf, results); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("CSV output is not readable: %v", err)
	}
	if len(records) != len(results)+1 {
		t.Fatalf("Expected %d CSV rows, got %d", len(results)+1, len(records))
	}
	if records[0][0] != "deal" {
		t.Errorf("Expected header to start with deal, got %q", records[0][0])
	}
	for i, result := range results {
		if records[i+1][0] != result.Name {
			t.Errorf("Row %d: expected deal %q, got %q", i+1, result.Name, records[i+1][0])
		}
	}
}

func TestPrettyOutputFormat(t *testing.T) {
	results := analyzeDealBook(t, "../test_deals.yaml")

	var buf bytes.Buffer
	if err := output.PrettyFormat(&buf, results); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}

	report := buf.String()
	for _, result := range results {
		header := "--- Results for deal " + result.Name
		if !strings.Contains(report, header) {
			t.Errorf("Pretty output missing section for %s", result.Name)
		}
	}
	if !strings.Contains(report, "$15,600.00") {
		t.Errorf("Pretty output missing duplex NOI")
	}
}

func TestExampleDealBook(t *testing.T) {
	results := analyzeDealBook(t, "../../deals.yaml.example")
	if len(results) == 0 {
		t.Fatalf("Expected results from the example deal book")
	}
}
