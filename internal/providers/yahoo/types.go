package yahoo

// --- Yahoo Finance chart API response types ---

// chartResponse wraps the v8 chart API response.
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta       chartMeta  `json:"meta"`
	Timestamp  []int64    `json:"timestamp"`
	Indicators indicators `json:"indicators"`
}

type chartMeta struct {
	Symbol   string `json:"symbol"`
	Currency string `json:"currency"`
}

type indicators struct {
	Quote []quoteBars `json:"quote"`
}

// quoteBars carries parallel arrays; a null entry is a day with no data.
type quoteBars struct {
	Close []*float64 `json:"close"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
