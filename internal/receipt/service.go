package receipt

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/zombor/receipt-api/internal/analysis"
)

// KeyGenerator generates unique object keys for uploaded receipts
type KeyGenerator interface {
	Generate() string
}

// defaultKeyGenerator generates keys using random UUIDs
type defaultKeyGenerator struct{}

func (g *defaultKeyGenerator) Generate() string {
	return fmt.Sprintf("receipts/%s.jpg", uuid.NewString())
}

// Service handles receipt processing
type Service struct {
	storage  Storage
	analyzer analysis.Analyzer
	bucket   string
	keyGen   KeyGenerator
}

// NewService creates a new Service with the default key generator
func NewService(storage Storage, analyzer analysis.Analyzer, bucket string) *Service {
	return &Service{
		storage:  storage,
		analyzer: analyzer,
		bucket:   bucket,
		keyGen:   &defaultKeyGenerator{},
	}
}

// NewServiceWithDeps creates a new Service with a custom key generator for testing
func NewServiceWithDeps(storage Storage, analyzer analysis.Analyzer, bucket string, keyGen KeyGenerator) *Service {
	return &Service{
		storage:  storage,
		analyzer: analyzer,
		bucket:   bucket,
		keyGen:   keyGen,
	}
}

// decodePayload strips any data-URI header and base64-decodes the rest.
// Only the text after the last comma is meaningful; a payload with no
// comma is decoded whole.
func decodePayload(payload string) ([]byte, error) {
	if idx := strings.LastIndex(payload, ","); idx >= 0 {
		payload = payload[idx+1:]
	}
	return base64.StdEncoding.DecodeString(payload)
}

// ProcessReceipt decodes the payload, uploads it to the blob store, runs
// expense analysis against the stored object and extracts the summary
// fields of interest. Any step failure aborts the request and is returned
// as a *ProcessingError.
func (s *Service) ProcessReceipt(ctx context.Context, imageBase64 string) (*ExtractionResult, error) {
	data, err := decodePayload(imageBase64)
	if err != nil {
		return nil, &ProcessingError{Err: fmt.Errorf("decoding image: %w", err)}
	}

	key := s.keyGen.Generate()

	if err := s.storage.Put(ctx, key, data, "image/jpeg"); err != nil {
		return nil, &ProcessingError{Err: fmt.Errorf("uploading receipt: %w", err)}
	}

	fields, err := s.analyzer.AnalyzeExpense(ctx, s.bucket, key)
	if err != nil {
		slog.Error("Failed to analyze receipt",
			"bucket", s.bucket,
			"key", key,
			"payload_size", len(data),
			"error", err,
		)
		return nil, &ProcessingError{Err: fmt.Errorf("analyzing receipt: %w", err)}
	}

	return &ExtractionResult{
		Vendor: analysis.FindField(fields, "VENDOR_NAME"),
		VAT:    analysis.FindField(fields, "TAX"),
		Total:  analysis.FindField(fields, "TOTAL"),
		Date:   analysis.FindField(fields, "INVOICE_RECEIPT_DATE"),
	}, nil
}
