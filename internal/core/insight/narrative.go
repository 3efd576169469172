// Package insight produces the deterministic rule-based performance
// summary. It is the fallback behind the external narrative service:
// whenever that service is unavailable or errors, callers use Generate
// and the resulting text is interchangeable downstream.
package insight

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"adlytics/internal/core/domain"
)

// rule pairs a predicate with the sentence it renders. Rules are
// evaluated top to bottom, first match wins, which keeps the threshold
// boundaries testable in isolation.
type rule struct {
	match  func(domain.KPISet) bool
	render func(*message.Printer, domain.KPISet) string
}

// CTR thresholds use strict comparisons: exactly 1.5 is moderate,
// exactly 1.0 is low.
var ctrRules = []rule{
	{
		match: func(k domain.KPISet) bool { return k.CTR > 1.5 },
		render: func(p *message.Printer, k domain.KPISet) string {
			return p.Sprintf("The Click-Through Rate (CTR) was strong at %.2f%%, indicating high user engagement.", k.CTR)
		},
	},
	{
		match: func(k domain.KPISet) bool { return k.CTR > 1.0 },
		render: func(p *message.Printer, k domain.KPISet) string {
			return p.Sprintf("The Click-Through Rate (CTR) was moderate at %.2f%%.", k.CTR)
		},
	},
	{
		match: func(domain.KPISet) bool { return true },
		render: func(p *message.Printer, k domain.KPISet) string {
			return p.Sprintf("The Click-Through Rate (CTR) was low at %.2f%%, suggesting a need for creative optimization.", k.CTR)
		},
	},
}

// ROAS thresholds: exactly 2.0 is positive, exactly 1.0 is inefficient.
var roasRules = []rule{
	{
		match: func(k domain.KPISet) bool { return k.ROAS > 2.0 },
		render: func(p *message.Printer, k domain.KPISet) string {
			return p.Sprintf("Return on Ad Spend (ROAS) was excellent at %.2f, showing high profitability.", k.ROAS)
		},
	},
	{
		match: func(k domain.KPISet) bool { return k.ROAS > 1.0 },
		render: func(p *message.Printer, k domain.KPISet) string {
			return p.Sprintf("Return on Ad Spend (ROAS) was positive at %.2f.", k.ROAS)
		},
	},
	{
		match: func(domain.KPISet) bool { return true },
		render: func(p *message.Printer, k domain.KPISet) string {
			return p.Sprintf("Return on Ad Spend (ROAS) was %.2f, indicating spend inefficiency.", k.ROAS)
		},
	},
}

const (
	trendUpward   = "Revenue showed an upward trend towards the end of the period."
	trendDownward = "Revenue trended downwards or remained flat towards the end of the period."
)

// Generate builds the four-sentence report: overview, CTR assessment,
// ROAS assessment and trend direction, in that order. It is fully
// deterministic; identical inputs produce byte-identical text. A trend
// with zero entries is a caller error and returns ErrEmptyTrend instead
// of a misleading default sentence.
func Generate(kpis domain.KPISet, trend domain.DailyTrend) (domain.NarrativeReport, error) {
	if len(trend) == 0 {
		return domain.NarrativeReport{}, domain.ErrEmptyTrend
	}

	p := message.NewPrinter(language.English)
	sentences := make([]string, 0, 4)

	sentences = append(sentences, p.Sprintf(
		"During the reporting period, the campaign generated a total of %d impressions and $%.2f in revenue.",
		kpis.Impressions, kpis.Revenue))
	sentences = append(sentences, firstMatch(ctrRules, p, kpis))
	sentences = append(sentences, firstMatch(roasRules, p, kpis))

	// Direction compares the first entry against the last; equal revenue
	// counts as downward-or-flat.
	if trend[len(trend)-1].Revenue > trend[0].Revenue {
		sentences = append(sentences, trendUpward)
	} else {
		sentences = append(sentences, trendDownward)
	}

	return domain.NarrativeReport{Sentences: sentences}, nil
}

func firstMatch(rules []rule, p *message.Printer, k domain.KPISet) string {
	for _, r := range rules {
		if r.match(k) {
			return r.render(p, k)
		}
	}
	return ""
}
