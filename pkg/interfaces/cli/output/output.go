package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/solvex/demandplan/pkg/application/dto"
	"github.com/solvex/demandplan/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
}

// RenderMasterPlan creates master plan output in the specified format
func RenderMasterPlan(master *dto.MasterPlan, config Config) error {
	switch config.Format {
	case "text":
		return renderMasterPlanText(master, config)
	case "json":
		return renderJSON(master, "master_plan.json", config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// RenderForecasts creates forecast output in the specified format
func RenderForecasts(forecasts []*entities.ForecastResult, config Config) error {
	switch config.Format {
	case "text":
		return renderForecastsText(forecasts)
	case "json":
		return renderJSON(forecasts, "forecasts.json", config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// RenderClassification creates ABC/XYZ classification output in the specified
// format
func RenderClassification(result *dto.ClassificationResult, config Config) error {
	switch config.Format {
	case "text":
		return renderClassificationText(result)
	case "json":
		return renderJSON(result, "classification.json", config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// RenderCustomerReport creates customer analysis output in the specified
// format
func RenderCustomerReport(report *entities.CustomerReport, config Config) error {
	switch config.Format {
	case "text":
		return renderCustomerReportText(report)
	case "json":
		return renderJSON(report, "customer_report.json", config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

func renderMasterPlanText(master *dto.MasterPlan, config Config) error {
	fmt.Printf("Master Plan Summary\n")
	fmt.Printf("===================\n\n")

	fmt.Printf("Run ID: %s\n", master.RunID)
	fmt.Printf("Generated: %s\n", master.GeneratedAt.Format("2006-01-02"))
	fmt.Printf("Products Planned: %d\n", len(master.Plans))
	fmt.Printf("Products Skipped: %d\n", len(master.Skipped))
	fmt.Printf("Alerts: %d\n\n", len(master.Alerts))

	if len(master.Plans) > 0 {
		fmt.Printf("Product Plans:\n")
		fmt.Printf("%-15s %-10s %-10s %-10s %-12s %-15s\n",
			"Product", "Priority", "Net 30d", "EOQ", "Coverage", "Supplier")
		fmt.Printf("%-15s %-10s %-10s %-10s %-12s %-15s\n",
			"---------------", "----------", "----------", "----------", "------------", "---------------")

		for _, plan := range master.Plans {
			fmt.Printf("%-15s %-10s %-10d %-10d %-12.1f %-15s\n",
				plan.ProductID,
				plan.PriorityLabel,
				plan.NetRequirement(30),
				plan.EOQ,
				plan.CoverageDays,
				plan.SupplierID)
		}
		fmt.Println()
	}

	if len(master.InvestmentByPeriod) > 0 {
		fmt.Printf("Investment by Period:\n")
		periods := make([]int, 0, len(master.InvestmentByPeriod))
		for period := range master.InvestmentByPeriod {
			periods = append(periods, period)
		}
		sort.Ints(periods)
		for _, period := range periods {
			fmt.Printf("  %3d days: %s\n", period, master.InvestmentByPeriod[period].StringFixed(2))
		}
		fmt.Println()
	}

	if len(master.Alerts) > 0 {
		fmt.Printf("Alerts:\n")
		for _, alert := range master.Alerts {
			fmt.Printf("  [%s] %s\n", alert.ProductID, alert.Message)
		}
		fmt.Println()
	}

	if len(master.Skipped) > 0 {
		fmt.Printf("Skipped Products:\n")
		for _, skipped := range master.Skipped {
			fmt.Printf("  [%s] %s\n", skipped.ProductID, skipped.Reason)
		}
		fmt.Println()
	}

	if master.Calendar != nil {
		renderCalendarText(master.Calendar)
	}

	return nil
}

func renderCalendarText(calendar *dto.PurchaseCalendar) {
	fmt.Printf("Purchase Calendar:\n")
	for _, week := range calendar.Weeks {
		fmt.Printf("  Week %d:\n", week.Week)

		suppliers := make([]entities.SupplierID, 0, len(week.Suppliers))
		for supplierID := range week.Suppliers {
			suppliers = append(suppliers, supplierID)
		}
		sort.Slice(suppliers, func(i, j int) bool { return suppliers[i] < suppliers[j] })

		for _, supplierID := range suppliers {
			label := string(supplierID)
			if label == "" {
				label = "(no supplier)"
			}
			fmt.Printf("    %s:\n", label)
			for _, entry := range week.Suppliers[supplierID] {
				fmt.Printf("      %-15s qty %-8d cost %s\n",
					entry.ProductID, entry.Quantity, entry.EstimatedCost.StringFixed(2))
			}
		}
	}
	fmt.Println()
}

func renderForecastsText(forecasts []*entities.ForecastResult) error {
	fmt.Printf("Demand Forecasts\n")
	fmt.Printf("================\n\n")

	fmt.Printf("%-15s %-10s %-12s %-18s %-12s\n",
		"Product", "Horizon", "Predicted", "Model", "Confidence")
	fmt.Printf("%-15s %-10s %-12s %-18s %-12s\n",
		"---------------", "----------", "------------", "------------------", "------------")

	for _, forecast := range forecasts {
		fmt.Printf("%-15s %-10d %-12d %-18s %-12.2f\n",
			forecast.ProductID,
			forecast.HorizonDays,
			forecast.PredictedQuantity,
			forecast.ModelUsed,
			forecast.ConfidenceScore)
	}
	fmt.Println()

	return nil
}

func renderClassificationText(result *dto.ClassificationResult) error {
	fmt.Printf("ABC/XYZ Classification\n")
	fmt.Printf("======================\n\n")

	fmt.Printf("Products Classified: %d\n\n", len(result.Classes))

	fmt.Printf("%-15s %-8s %-15s %-12s %-8s\n",
		"Product", "Class", "Annual Value", "Annual Qty", "CV")
	fmt.Printf("%-15s %-8s %-15s %-12s %-8s\n",
		"---------------", "--------", "---------------", "------------", "--------")

	for _, class := range result.Classes {
		fmt.Printf("%-15s %-8s %-15s %-12d %-8.2f\n",
			class.ProductID,
			class.Label(),
			class.AnnualValue.StringFixed(2),
			class.AnnualQuantity,
			class.CoefficientOfVariation)
	}
	fmt.Println()

	labels := make([]string, 0, len(result.Groups))
	for label := range result.Groups {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	fmt.Printf("Groups:\n")
	for _, label := range labels {
		fmt.Printf("  %s: %d products\n", label, len(result.Groups[label]))
	}
	fmt.Println()

	return nil
}

func renderCustomerReportText(report *entities.CustomerReport) error {
	metrics := report.Metrics

	fmt.Printf("Customer Analysis: %s\n", metrics.CustomerID)
	fmt.Printf("========================\n\n")

	fmt.Printf("Segment: %s\n", report.Segment)
	fmt.Printf("Total Orders: %d\n", metrics.TotalOrders)
	fmt.Printf("Total Value: %s\n", metrics.TotalValue.StringFixed(2))
	fmt.Printf("Average Ticket: %s\n", metrics.AvgTicket.StringFixed(2))
	fmt.Printf("Purchase Frequency: %.1f days\n", metrics.PurchaseFrequencyDays)
	fmt.Printf("Recency: %d days\n", metrics.RecencyDays)
	fmt.Printf("Preferred Weekday: %s\n", metrics.PreferredWeekday)
	fmt.Printf("Preferred Month: %s\n\n", metrics.PreferredMonth)

	if len(report.Repurchases) > 0 {
		fmt.Printf("Repurchase Predictions:\n")
		fmt.Printf("%-15s %-12s %-12s %-12s\n",
			"Product", "Probability", "Qty", "Days Since")
		fmt.Printf("%-15s %-12s %-12s %-12s\n",
			"---------------", "------------", "------------", "------------")
		for _, prediction := range report.Repurchases {
			fmt.Printf("%-15s %-12.2f %-12.1f %-12d\n",
				prediction.ProductID,
				prediction.Probability,
				prediction.PredictedQuantity,
				prediction.DaysSinceLast)
		}
		fmt.Println()
	}

	if len(report.Actions) > 0 {
		fmt.Printf("Recommended Actions:\n")
		for _, action := range report.Actions {
			fmt.Printf("  [%s/%s] %s\n", action.Type, action.Priority, action.Message)
		}
		fmt.Println()
	}

	return nil
}

func renderJSON(payload any, filename string, config Config) error {
	jsonData, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Println(string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(config.OutputDir, filename)
	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	if config.Verbose {
		fmt.Printf("JSON results saved to: %s\n", path)
	}

	return nil
}
