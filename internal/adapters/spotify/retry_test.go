package spotify

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func retryTestClient(serverURL string, maxRetries int) *Client {
	return &Client{
		httpClient:  http.DefaultClient,
		baseURL:     serverURL,
		logger:      zap.NewNop(),
		maxRetries:  maxRetries,
		baseBackoff: time.Millisecond,
	}
}

func TestDoRequestWithRetry(t *testing.T) {
	tests := []struct {
		name         string
		statuses     []int
		maxRetries   int
		wantStatus   int
		wantAttempts int
		wantErr      bool
	}{
		{
			name:         "recovers after two 503s",
			statuses:     []int{503, 503, 200},
			maxRetries:   3,
			wantStatus:   200,
			wantAttempts: 3,
		},
		{
			name:         "gives up on persistent 429",
			statuses:     []int{429},
			maxRetries:   2,
			wantAttempts: 2,
			wantErr:      true,
		},
		{
			name:         "4xx other than 429 is returned immediately",
			statuses:     []int{403},
			maxRetries:   3,
			wantStatus:   403,
			wantAttempts: 1,
		},
		{
			name:         "first try succeeds",
			statuses:     []int{200},
			maxRetries:   3,
			wantStatus:   200,
			wantAttempts: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := 0
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				attempts++
				status := tt.statuses[len(tt.statuses)-1]
				if attempts <= len(tt.statuses) {
					status = tt.statuses[attempts-1]
				}
				w.WriteHeader(status)
			}))
			defer ts.Close()

			req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
			if err != nil {
				t.Fatalf("create request: %v", err)
			}

			resp, err := retryTestClient(ts.URL, tt.maxRetries).doRequestWithRetry(req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error: got %v, want error %v", err, tt.wantErr)
			}
			if resp != nil {
				resp.Body.Close()
				if resp.StatusCode != tt.wantStatus {
					t.Fatalf("status: got %d, want %d", resp.StatusCode, tt.wantStatus)
				}
			}
			if attempts != tt.wantAttempts {
				t.Fatalf("attempts: got %d, want %d", attempts, tt.wantAttempts)
			}
		})
	}
}

func TestRetryAfterHeaderIsHonored(t *testing.T) {
	attempts := 0
	var gap time.Duration
	var last time.Time

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			last = time.Now()
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		gap = time.Since(last)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	req, _ := http.NewRequest(http.MethodGet, ts.URL, nil)
	resp, err := retryTestClient(ts.URL, 3).doRequestWithRetry(req)
	if err != nil {
		t.Fatalf("doRequestWithRetry: %v", err)
	}
	resp.Body.Close()

	if attempts != 2 {
		t.Fatalf("attempts: got %d, want 2", attempts)
	}
	if gap < time.Second {
		t.Fatalf("second attempt arrived after %v, expected at least 1s", gap)
	}
}

func TestParseRetryAfter(t *testing.T) {
	mkResp := func(value string) *http.Response {
		h := http.Header{}
		if value != "" {
			h.Set("Retry-After", value)
		}
		return &http.Response{Header: h}
	}

	if got := parseRetryAfter(mkResp("3")); got != 3*time.Second {
		t.Errorf("seconds form: got %v", got)
	}
	if got := parseRetryAfter(mkResp("")); got != 0 {
		t.Errorf("missing header: got %v", got)
	}
	if got := parseRetryAfter(mkResp("garbage")); got != 0 {
		t.Errorf("unparseable header: got %v", got)
	}
	if got := parseRetryAfter(nil); got != 0 {
		t.Errorf("nil response: got %v", got)
	}
}
