package receipt

// ExtractionResult holds the fields pulled from an analyzed receipt.
// A nil field means the analysis service detected no value for it.
type ExtractionResult struct {
	Vendor *string `json:"vendor"`
	VAT    *string `json:"vat"`
	Total  *string `json:"total"`
	Date   *string `json:"date"`
}

// ProcessingError is the single error kind for the receipt pipeline. Any
// failure during decode, upload, analysis or extraction is wrapped in one
// and the HTTP layer maps it to a 500 response.
type ProcessingError struct {
	Err error
}

func (e *ProcessingError) Error() string {
	return e.Err.Error()
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}
