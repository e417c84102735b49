package hcloud

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
	"github.com/hetznercloud/hcloud-go/v2/hcloud/schema"

	"github.com/imamik/opsretry/internal/config"
	"github.com/imamik/opsretry/internal/util/ptr"
)

// testServer creates an httptest server that can be used to mock Hetzner Cloud API responses.
type testServer struct {
	server *httptest.Server
	mux    *http.ServeMux
}

// newTestServer creates a new test server for mocking the Hetzner Cloud API.
func newTestServer() *testServer {
	mux := http.NewServeMux()
	return &testServer{
		server: httptest.NewServer(mux),
		mux:    mux,
	}
}

func (ts *testServer) close() {
	ts.server.Close()
}

// client returns a Client talking to the test server with millisecond backoff.
func (ts *testServer) client(opts ...ClientOption) *Client {
	hc := hcloud.NewClient(
		hcloud.WithToken("test-token"),
		hcloud.WithEndpoint(ts.server.URL),
	)
	return NewClient("test-token", append([]ClientOption{
		WithHCloudClient(hc),
		WithConfig(testConfig(3)),
	}, opts...)...)
}

func (ts *testServer) handleFunc(pattern string, handler http.HandlerFunc) {
	ts.mux.HandleFunc(pattern, handler)
}

// testConfig returns a retry configuration with fast, deterministic backoff.
func testConfig(maxAttempts int) *config.Config {
	return &config.Config{
		Defaults: config.ProfileConfig{
			MaxAttempts: ptr.Int(maxAttempts),
			Backoff: config.BackoffConfig{
				Base:     ptr.Duration(time.Millisecond),
				Jitter:   ptr.Bool(false),
				MaxDelay: ptr.Duration(5 * time.Millisecond),
			},
		},
		Operations: map[string]config.ProfileConfig{},
	}
}

// jsonResponse writes a JSON response with the given status code and body.
func jsonResponse(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// errorResponse writes an hcloud API error.
func errorResponse(w http.ResponseWriter, statusCode int, code hcloud.ErrorCode, message string) {
	jsonResponse(w, statusCode, schema.ErrorResponse{
		Error: schema.Error{Code: string(code), Message: message},
	})
}
