package receipt

import (
	"context"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var _ = Describe("S3Storage", func() {
	var (
		ghttpServer *ghttp.Server
		storage     *S3Storage
		err         error
	)

	BeforeEach(func() {
		ghttpServer = ghttp.NewServer()

		client := s3.New(s3.Options{
			Region:           "us-east-1",
			Credentials:      credentials.NewStaticCredentialsProvider("test", "test", ""),
			BaseEndpoint:     aws.String(ghttpServer.URL()),
			UsePathStyle:     true,
			RetryMaxAttempts: 1,
		})
		storage = NewS3Storage(client, "receipts-bucket")
	})

	AfterEach(func() {
		ghttpServer.Close()
	})

	JustBeforeEach(func() {
		err = storage.Put(context.Background(), "receipts/test.jpg", []byte("fake image bytes"), "image/jpeg")
	})

	When("the bucket accepts the object", func() {
		BeforeEach(func() {
			ghttpServer.AppendHandlers(ghttp.CombineHandlers(
				ghttp.VerifyRequest("PUT", "/receipts-bucket/receipts/test.jpg"),
				ghttp.VerifyHeaderKV("Content-Type", "image/jpeg"),
				ghttp.VerifyBody([]byte("fake image bytes")),
				ghttp.RespondWith(http.StatusOK, ""),
			))
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should have made exactly one put request", func() {
			Expect(ghttpServer.ReceivedRequests()).To(HaveLen(1))
		})
	})

	When("the bucket rejects the object", func() {
		BeforeEach(func() {
			ghttpServer.AppendHandlers(ghttp.RespondWith(http.StatusForbidden,
				`<?xml version="1.0" encoding="UTF-8"?>
				<Error><Code>AccessDenied</Code><Message>Access Denied</Message></Error>`,
			))
		})

		It("returns the error", func() {
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("putting object"))
		})
	})
})
