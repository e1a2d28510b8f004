package benchmark

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunGETCountsStatusCodes(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		switch n := calls.Add(1); {
		case n%4 == 0:
			w.WriteHeader(http.StatusTooManyRequests)
		case n%5 == 0:
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	b := NewAPIBenchmark(srv.URL, 3, 20, "tok")
	res := b.RunGET(context.Background(), "/v1/minerals")

	assert.Equal(t, 20, res.TotalRequests)
	assert.Equal(t, 12, res.SuccessCount)
	assert.Equal(t, 5, res.RateLimited, "429 is throttling, not a failure")
	assert.Equal(t, 3, res.FailureCount)
	assert.Equal(t, map[int]int{200: 12, 429: 5, 500: 3}, res.StatusCodes)
	assert.InDelta(t, 60.0, res.SuccessRate(), 0.001)
	assert.LessOrEqual(t, res.MinTime, res.MaxTime)
	assert.Empty(t, res.Errors)
}

func TestRunRespectsConcurrencyLimit(t *testing.T) {
	var inFlight, peak atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
	}))
	defer srv.Close()

	res := NewAPIBenchmark(srv.URL, 2, 10, "").RunGET(context.Background(), "/")
	assert.Equal(t, 10, res.SuccessCount)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestRunRecordsTransportErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	res := NewAPIBenchmark(url, 1, 3, "").RunGET(context.Background(), "/")
	assert.Equal(t, 3, res.FailureCount)
	assert.Len(t, res.Errors, 3)
	assert.Zero(t, res.AverageTime)
}

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path != "/v1/login" || body["password"] != "secret1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"code":101002,"message":"invalid username or password","data":null}`))
			return
		}
		_, _ = w.Write([]byte(`{"code":100000,"message":"success","data":{"token":"abc"}}`))
	}))
	defer srv.Close()

	b := NewAPIBenchmark(srv.URL, 1, 1, "")
	token, err := b.Login(context.Background(), "admin", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = b.Login(context.Background(), "admin", "wrong")
	assert.ErrorContains(t, err, "401")
}

func TestPrint(t *testing.T) {
	res := &Result{
		URL:           "http://x/api/v1/minerals",
		Method:        http.MethodGet,
		TotalRequests: 3,
		SuccessCount:  2,
		RateLimited:   1,
		StatusCodes:   map[int]int{200: 2, 429: 1},
	}
	var buf bytes.Buffer
	res.Print(&buf)
	assert.Contains(t, buf.String(), "GET http://x/api/v1/minerals")
	assert.Contains(t, buf.String(), "rate limited 1, failed 0")
	assert.Contains(t, buf.String(), "status 200:   2")
}
