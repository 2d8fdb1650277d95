package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
)

// Textract implements the Analyzer interface using AWS Textract
type Textract struct {
	client *textract.Client
}

// NewTextract creates a new Textract Analyzer instance
func NewTextract(client *textract.Client) *Textract {
	return &Textract{client: client}
}

// AnalyzeExpense runs expense analysis against a receipt already stored
// in S3. The document is referenced by bucket/key, the bytes are not
// re-sent.
func (t *Textract) AnalyzeExpense(ctx context.Context, bucket, key string) ([]SummaryField, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := t.client.AnalyzeExpense(ctx, &textract.AnalyzeExpenseInput{
		Document: &types.Document{
			S3Object: &types.S3Object{
				Bucket: aws.String(bucket),
				Name:   aws.String(key),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("analyzing expense document: %w", err)
	}

	// An empty document list means there is nothing to extract from; the
	// handler must fail rather than return an all-null result.
	if len(resp.ExpenseDocuments) == 0 {
		return nil, fmt.Errorf("no expense documents in analysis response")
	}

	summaryFields := resp.ExpenseDocuments[0].SummaryFields
	fields := make([]SummaryField, 0, len(summaryFields))
	for _, f := range summaryFields {
		var field SummaryField
		if f.Type != nil && f.Type.Text != nil {
			field.Type = *f.Type.Text
		}
		if f.ValueDetection != nil {
			field.Value = f.ValueDetection.Text
		}
		fields = append(fields, field)
	}
	return fields, nil
}
