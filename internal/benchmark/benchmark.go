// Package benchmark drives concurrent HTTP load against a running catalog server
package benchmark

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// APIBenchmark fires Requests calls at BaseURL with at most Concurrency in flight
type APIBenchmark struct {
	BaseURL     string
	Concurrency int
	Requests    int
	AuthToken   string
	Client      *http.Client
}

// Result summarizes one benchmark run
type Result struct {
	URL            string        `json:"url"`
	Method         string        `json:"method"`
	Concurrency    int           `json:"concurrency"`
	TotalRequests  int           `json:"total_requests"`
	SuccessCount   int           `json:"success_count"`
	FailureCount   int           `json:"failure_count"`
	RateLimited    int           `json:"rate_limited"` // 429 answers, counted apart from failures
	TotalTime      time.Duration `json:"total_time"`
	AverageTime    time.Duration `json:"average_time"`
	MinTime        time.Duration `json:"min_time"`
	MaxTime        time.Duration `json:"max_time"`
	RequestsPerSec float64       `json:"requests_per_sec"`
	StatusCodes    map[int]int   `json:"status_codes"`
	Errors         []string      `json:"errors"`
}

type requestResult struct {
	duration   time.Duration
	statusCode int
	err        error
}

// NewAPIBenchmark creates a benchmark with a 10s client timeout
func NewAPIBenchmark(baseURL string, concurrency, requests int, authToken string) *APIBenchmark {
	if concurrency < 1 {
		concurrency = 1
	}
	return &APIBenchmark{
		BaseURL:     baseURL,
		Concurrency: concurrency,
		Requests:    requests,
		AuthToken:   authToken,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// RunGET benchmarks a GET endpoint
func (b *APIBenchmark) RunGET(ctx context.Context, path string) *Result {
	return b.run(ctx, http.MethodGet, b.BaseURL+path, nil)
}

// RunPOST benchmarks a JSON POST endpoint
func (b *APIBenchmark) RunPOST(ctx context.Context, path string, payload interface{}) *Result {
	url := b.BaseURL + path
	body, err := json.Marshal(payload)
	if err != nil {
		return &Result{URL: url, Method: http.MethodPost, Errors: []string{fmt.Sprintf("encode payload: %v", err)}}
	}
	return b.run(ctx, http.MethodPost, url, body)
}

// Login posts credentials and returns the issued token
func (b *APIBenchmark) Login(ctx context.Context, username, password string) (string, error) {
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.BaseURL+"/v1/login", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var envelope struct {
		Message string `json:"message"`
		Data    struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || envelope.Data.Token == "" {
		return "", fmt.Errorf("login failed: %d %s", resp.StatusCode, envelope.Message)
	}
	return envelope.Data.Token, nil
}

func (b *APIBenchmark) do(ctx context.Context, method, url string, payload []byte) requestResult {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
	if err != nil {
		return requestResult{err: err}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if b.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+b.AuthToken)
	}

	resp, err := b.Client.Do(req)
	if err != nil {
		return requestResult{err: err}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return requestResult{duration: time.Since(start), statusCode: resp.StatusCode}
}

func (b *APIBenchmark) run(ctx context.Context, method, url string, payload []byte) *Result {
	var (
		mu      sync.Mutex
		results = make([]requestResult, 0, b.Requests)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.Concurrency)

	startTime := time.Now()
	for i := 0; i < b.Requests; i++ {
		g.Go(func() error {
			r := b.do(gctx, method, url, payload)
			mu.Lock()
			results = append(results, r)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return summarize(method, url, b.Concurrency, results, time.Since(startTime))
}

func summarize(method, url string, concurrency int, results []requestResult, elapsed time.Duration) *Result {
	res := &Result{
		URL:           url,
		Method:        method,
		Concurrency:   concurrency,
		TotalRequests: len(results),
		TotalTime:     elapsed,
		StatusCodes:   make(map[int]int),
	}

	var total time.Duration
	completed := 0
	for _, r := range results {
		if r.err != nil {
			res.FailureCount++
			res.Errors = append(res.Errors, r.err.Error())
			continue
		}

		completed++
		total += r.duration
		if res.MinTime == 0 || r.duration < res.MinTime {
			res.MinTime = r.duration
		}
		if r.duration > res.MaxTime {
			res.MaxTime = r.duration
		}

		res.StatusCodes[r.statusCode]++
		switch {
		case r.statusCode >= 200 && r.statusCode < 300:
			res.SuccessCount++
		case r.statusCode == http.StatusTooManyRequests:
			res.RateLimited++
		default:
			res.FailureCount++
		}
	}

	if completed > 0 {
		res.AverageTime = total / time.Duration(completed)
	}
	if elapsed > 0 {
		res.RequestsPerSec = float64(len(results)) / elapsed.Seconds()
	}
	return res
}

// SuccessRate is the share of 2xx responses, in percent
func (r *Result) SuccessRate() float64 {
	if r.TotalRequests == 0 {
		return 0
	}
	return float64(r.SuccessCount) / float64(r.TotalRequests) * 100
}

// Print writes a human readable report to w
func (r *Result) Print(w io.Writer) {
	fmt.Fprintf(w, "%s %s\n", r.Method, r.URL)
	fmt.Fprintf(w, "  concurrency:  %d\n", r.Concurrency)
	fmt.Fprintf(w, "  requests:     %d (ok %d, rate limited %d, failed %d, %.2f%%)\n",
		r.TotalRequests, r.SuccessCount, r.RateLimited, r.FailureCount, r.SuccessRate())
	fmt.Fprintf(w, "  total time:   %s\n", r.TotalTime)
	fmt.Fprintf(w, "  latency:      avg %s, min %s, max %s\n", r.AverageTime, r.MinTime, r.MaxTime)
	fmt.Fprintf(w, "  throughput:   %.2f req/s\n", r.RequestsPerSec)

	codes := make([]int, 0, len(r.StatusCodes))
	for c := range r.StatusCodes {
		codes = append(codes, c)
	}
	sort.Ints(codes)
	for _, c := range codes {
		fmt.Fprintf(w, "  status %d:   %d\n", c, r.StatusCodes[c])
	}

	for i, e := range r.Errors {
		if i >= 5 {
			fmt.Fprintf(w, "  ... %d more errors\n", len(r.Errors)-5)
			break
		}
		fmt.Fprintf(w, "  error: %s\n", e)
	}
}
