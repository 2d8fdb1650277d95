package main

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/zombor/receipt-api/internal/analysis"
	"github.com/zombor/receipt-api/internal/receipt"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	fs := ff.NewFlagSet("receipt-api")
	var (
		port        = fs.IntLong("port", 8080, "HTTP server port")
		accessKey   = fs.StringLong("aws-access-key", "", "AWS access key ID (or set AWS_ACCESS_KEY env var)")
		secretKey   = fs.StringLong("aws-secret-key", "", "AWS secret access key (or set AWS_SECRET_KEY env var)")
		region      = fs.StringLong("aws-region", "", "AWS region (or set AWS_REGION env var)")
		bucket      = fs.StringLong("s3-bucket", "", "S3 bucket receiving uploaded receipts (or set S3_BUCKET env var)")
		showVersion = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("RECEIPT_API"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Check version flag after parsing
	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// Fall back to the bare AWS env vars when the flags are unset
	key := fallbackEnv(*accessKey, "AWS_ACCESS_KEY")
	secret := fallbackEnv(*secretKey, "AWS_SECRET_KEY")
	awsRegion := fallbackEnv(*region, "AWS_REGION")
	bucketName := fallbackEnv(*bucket, "S3_BUCKET")

	if bucketName == "" {
		slog.Error("S3 bucket is required. Set --s3-bucket flag or S3_BUCKET environment variable")
		os.Exit(1)
	}

	// Build the shared AWS client configuration. Explicit keys take
	// precedence; otherwise the default provider chain applies and any
	// credential problem surfaces on the first collaborator call.
	slog.Info("Initializing AWS clients...", "region", awsRegion)
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(awsRegion),
	}
	if key != "" || secret != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, secret, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		slog.Error("Failed to load AWS configuration", "error", err)
		os.Exit(1)
	}

	// Initialize collaborators
	store := receipt.NewS3Storage(s3.NewFromConfig(awsCfg), bucketName)
	analyzer := analysis.NewTextract(textract.NewFromConfig(awsCfg))

	// Initialize service and server
	receiptService := receipt.NewService(store, analyzer, bucketName)
	server := receipt.NewServer(receiptService)

	// Start server in goroutine
	addr := fmt.Sprintf(":%d", *port)
	go func() {
		if err := server.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr), "bucket", bucketName)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
}

func fallbackEnv(value, envVar string) string {
	if value != "" {
		return value
	}
	return os.Getenv(envVar)
}
