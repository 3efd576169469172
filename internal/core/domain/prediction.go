package domain

// Prediction is an input row augmented with the regressor's click
// estimate. PredictedClicks is the raw model output; negative values are
// possible and not clamped. PredictedCTR divides by the row's
// impressions without a guard, so zero impressions flow to Inf/NaN.
type Prediction struct {
	Record
	PredictedClicks float64 `json:"predicted_clicks"`
	PredictedCTR    float64 `json:"predicted_ctr"`
}
