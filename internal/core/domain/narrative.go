package domain

import "strings"

// NarrativeReport is the rule-based performance summary: a fixed ordered
// sequence of sentences (overview, CTR assessment, ROAS assessment,
// trend direction). It is generated once per pipeline run and never
// mutated afterwards.
type NarrativeReport struct {
	Sentences []string
}

// Text joins the sentences into the final summary text, one sentence per
// line, interchangeable with the external narrative service's output in
// downstream formatting.
func (r NarrativeReport) Text() string {
	return strings.Join(r.Sentences, "\n")
}
