package bing

// apiItem is one element of the response array; the API answers with one
// item per text in the request body.
type apiItem struct {
	NormalizedSource string           `json:"normalizedSource"`
	Translations     []apiTranslation `json:"translations"`
}

// apiTranslation covers both /translate and /dictionary/lookup variants.
type apiTranslation struct {
	// /translate
	Text string `json:"text"`
	To   string `json:"to"`

	// /dictionary/lookup
	NormalizedTarget string  `json:"normalizedTarget"`
	DisplayTarget    string  `json:"displayTarget"`
	PosTag           string  `json:"posTag"`
	Confidence       float64 `json:"confidence"`
}

// apiError is the body returned on failures, e.g.
// {"error":{"code":401000,"message":"The request is not authorized"}}.
type apiError struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type apiRequestItem struct {
	Text string `json:"text"`
}
