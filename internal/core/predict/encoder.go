package predict

import (
	"sort"

	"adlytics/internal/core/domain"
)

// OneHotEncoder holds the fitted category vocabularies for the two
// categorical features. Fields are exported so the encoder serializes
// together with the forest; a loaded model is always self-consistent.
type OneHotEncoder struct {
	Devices   []string
	Countries []string
}

// fitEncoder collects the sorted distinct device and country values seen
// in the training rows. Sorting makes the indicator layout independent
// of row order.
func fitEncoder(rows []domain.Record) *OneHotEncoder {
	devices := make(map[string]struct{})
	countries := make(map[string]struct{})
	for _, r := range rows {
		devices[r.Device] = struct{}{}
		countries[r.Country] = struct{}{}
	}
	return &OneHotEncoder{
		Devices:   sortedKeys(devices),
		Countries: sortedKeys(countries),
	}
}

// Width is the length of the produced feature vectors: the two numeric
// passthrough features plus one indicator per known category value.
func (e *OneHotEncoder) Width() int {
	return 2 + len(e.Devices) + len(e.Countries)
}

// FeatureVector encodes one record as [impressions, cost, device
// indicators, country indicators]. Numeric features pass through
// unscaled. A category value not seen during fit leaves its indicator
// block all-zero rather than failing.
func (e *OneHotEncoder) FeatureVector(r domain.Record) []float64 {
	x := make([]float64, 0, e.Width())
	x = append(x, float64(r.Impressions), r.Cost)
	x = appendIndicators(x, e.Devices, r.Device)
	x = appendIndicators(x, e.Countries, r.Country)
	return x
}

func appendIndicators(x []float64, values []string, v string) []float64 {
	i := sort.SearchStrings(values, v)
	for j := range values {
		if j == i && i < len(values) && values[i] == v {
			x = append(x, 1)
		} else {
			x = append(x, 0)
		}
	}
	return x
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
