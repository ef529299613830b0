package planning

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vfg2006/media-planner-api/internal/domain"
	"github.com/vfg2006/media-planner-api/pkg/utils"
)

var hundred = decimal.NewFromInt(100)

func (p *Planner) summarize(req domain.PlanRequest, resp *domain.PlanResponse) *domain.PlanSummary {
	totals := resp.Totals

	net := decimal.NewFromFloat(totals.Budget)
	rate := decimal.NewFromFloat(req.AgencyFeePercent).
		Add(decimal.NewFromFloat(req.VATPercent)).
		Div(hundred)
	overhead := net.Mul(rate).Round(2)

	summary := &domain.PlanSummary{
		BudgetNet:   net.Round(2).InexactFloat64(),
		Overhead:    overhead.InexactFloat64(),
		BudgetGross: net.Add(overhead).Round(2).InexactFloat64(),
		CPC:         utils.Ratio(totals.Budget, totals.Clicks),
		CPL:         utils.Ratio(totals.Budget, totals.Leads),
		CPA:         utils.Ratio(totals.Budget, totals.Conversions),
		Frequency:   utils.Ratio(totals.Impressions, totals.Reach),
	}

	if cpm := utils.Ratio(totals.Budget, totals.Impressions); cpm != nil {
		v := *cpm * impressionsUnit
		summary.CPM = &v
	}

	if req.KPITarget != nil && *req.KPITarget > 0 && resp.PlannedKPI != nil {
		summary.KPI = &domain.KPIComparison{
			Type:      req.KPIType,
			Target:    *req.KPITarget,
			Planned:   *resp.PlannedKPI,
			Deviation: *resp.PlannedKPI / *req.KPITarget - 1,
		}
	}

	for _, line := range resp.Lines {
		threshold := p.catalog.MinBudget(line.Key)
		if threshold > 0 && line.Budget < threshold {
			summary.Warnings = append(summary.Warnings,
				fmt.Sprintf("%s: budget %.2f is below the recommended minimum of %.0f", line.Name, line.Budget, threshold))
		}
	}

	return summary
}
