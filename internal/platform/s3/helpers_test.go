package s3

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/imamik/opsretry/internal/config"
	"github.com/imamik/opsretry/internal/util/ptr"
)

// testClient creates a Client backed by a test HTTP server.
// The handler receives real S3 XML-protocol requests.
func testClient(t *testing.T, handler http.Handler, opts ...ClientOption) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)

	client := s3.New(s3.Options{
		Region:       "fsn1",
		BaseEndpoint: aws.String(server.URL),
		UsePathStyle: true,
		Credentials:  credentials.NewStaticCredentialsProvider("test-key", "test-secret", ""),
		Retryer:      aws.NopRetryer{},
		HTTPClient: &http.Client{
			Transport: &http.Transport{},
		},
	})

	return newClient(client, "fsn1", append([]ClientOption{WithConfig(testConfig())}, opts...)...), server
}

// testConfig allows three attempts with millisecond backoff.
func testConfig() *config.Config {
	return &config.Config{
		Defaults: config.ProfileConfig{
			MaxAttempts: ptr.Int(3),
			Backoff: config.BackoffConfig{
				Base:     ptr.Duration(time.Millisecond),
				Jitter:   ptr.Bool(false),
				MaxDelay: ptr.Duration(5 * time.Millisecond),
			},
		},
	}
}

// xmlResponse is a helper to write S3-style XML responses.
func xmlResponse(w http.ResponseWriter, statusCode int, body string) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(statusCode)
	_, _ = w.Write([]byte(body))
}

func xmlError(w http.ResponseWriter, statusCode int, code, message string) {
	xmlResponse(w, statusCode, `<?xml version="1.0" encoding="UTF-8"?>
<Error>
  <Code>`+code+`</Code>
  <Message>`+message+`</Message>
</Error>`)
}
