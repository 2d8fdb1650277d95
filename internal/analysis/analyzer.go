package analysis

import "context"

// SummaryField is one typed extraction result returned by the expense
// analysis service. Value is nil when the service detected no text for
// the field.
type SummaryField struct {
	Type  string
	Value *string
}

// Analyzer defines the interface for expense document analysis
type Analyzer interface {
	// AnalyzeExpense analyzes a stored receipt by bucket/key reference and
	// returns the summary fields of its first expense document
	AnalyzeExpense(ctx context.Context, bucket, key string) ([]SummaryField, error)
}
