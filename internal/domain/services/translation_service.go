package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/errgroup"

	"mineral-catalog-service/internal/domain/models"
	"mineral-catalog-service/internal/infrastructure/config"
	"mineral-catalog-service/internal/metrics"
	Logger "mineral-catalog-service/pkg/logger"
)

const maxTranslationBody = 1 << 20

// InterfaceTranslationService translates catalog text through the external service
type InterfaceTranslationService interface {
	SupportedLanguages() []models.Language
	IsSupported(code string) bool
	SourceLanguage() string
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
	TranslateMineral(ctx context.Context, m models.Mineral, sourceLang, targetLang string) (models.Mineral, error)
	TranslateMinerals(ctx context.Context, list []models.Mineral, sourceLang, targetLang string) ([]TranslatedMineral, error)
	FilterByTranslatedTitle(ctx context.Context, list []models.Mineral, query, sourceLang, targetLang string) ([]models.Mineral, error)
	CheckAvailability(ctx context.Context) error
}

// TranslatedMineral is a list entry after translation. TitleTranslated is
// false when the title kept its original text.
type TranslatedMineral struct {
	models.Mineral
	TitleTranslated bool
}

type translateResponse struct {
	Translation string `json:"translation"`
}

// TranslationService calls GET {base}/api/v1/{src}/{tgt}/{text}
type TranslationService struct {
	baseURL     string
	client      *http.Client
	cache       TranslationCache
	cacheTTL    time.Duration
	languages   map[string]bool
	sourceLang  string
	concurrency int
	breaker     *gobreaker.CircuitBreaker[string]
}

// NewTranslationService creates a new translation service. A nil cache
// falls back to an in-memory one.
func NewTranslationService(cfg *config.Config, cache TranslationCache) InterfaceTranslationService {
	if cache == nil {
		cache = NewMemoryTranslationCache(0)
	}
	languages := make(map[string]bool, len(cfg.TranslationLanguages))
	for _, code := range cfg.TranslationLanguages {
		languages[code] = true
	}
	sourceLang := cfg.TranslationSourceLang
	if sourceLang == "" {
		sourceLang = "ru"
	}
	languages[sourceLang] = true

	timeout := cfg.TranslationTimeout()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &TranslationService{
		baseURL:     strings.TrimRight(cfg.TranslationURL, "/"),
		client:      &http.Client{Timeout: timeout},
		cache:       cache,
		cacheTTL:    cfg.TranslationCacheTTL(),
		languages:   languages,
		sourceLang:  sourceLang,
		concurrency: max(cfg.TranslationConcurrency, 1),
		breaker:     newTranslationBreaker(),
	}
}

// newTranslationBreaker opens after 5 consecutive outages and probes again
// after 30 seconds. Only unavailability counts as a failure.
func newTranslationBreaker() *gobreaker.CircuitBreaker[string] {
	return gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "translation-service",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// a caller giving up says nothing about the backend
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || !errors.Is(err, ErrServiceUnavailable)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			Logger.Warning("[CIRCUIT BREAKER] %s: %s -> %s", name, from, to)
			metrics.SetBreakerState(name, int(to))
		},
	})
}

// 1 SupportedLanguages lists the languages ordered by code
func (s *TranslationService) SupportedLanguages() []models.Language {
	languages := make([]models.Language, 0, len(s.languages))
	for code := range s.languages {
		languages = append(languages, models.Language{Code: code, Name: models.LanguageName(code)})
	}
	sort.Slice(languages, func(i, j int) bool { return languages[i].Code < languages[j].Code })
	return languages
}

// 2 IsSupported reports whether code is a configured language
func (s *TranslationService) IsSupported(code string) bool {
	return s.languages[code]
}

// 3 SourceLanguage returns the language catalog text is written in
func (s *TranslationService) SourceLanguage() string {
	return s.sourceLang
}

// 4 Translate returns text in targetLang, from cache when possible
func (s *TranslationService) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}
	if !s.IsSupported(sourceLang) {
		return "", fmt.Errorf("%w: %s", ErrLanguageNotSupported, sourceLang)
	}
	if !s.IsSupported(targetLang) {
		return "", fmt.Errorf("%w: %s", ErrLanguageNotSupported, targetLang)
	}
	if sourceLang == targetLang {
		metrics.RecordTranslation("skipped")
		return text, nil
	}

	key := translationCacheKey(text, sourceLang, targetLang)
	if cached, ok := s.cache.Get(ctx, key); ok {
		metrics.RecordTranslation("cache_hit")
		Logger.Debug("translation cache hit %s -> %s", sourceLang, targetLang)
		return cached, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	translated, err := s.breaker.Execute(func() (string, error) {
		return s.fetch(ctx, text, sourceLang, targetLang)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	if err != nil {
		if errors.Is(err, ErrServiceUnavailable) {
			metrics.RecordTranslation("unavailable")
		} else {
			metrics.RecordTranslation("failure")
		}
		return "", err
	}

	metrics.RecordTranslation("success")
	s.cache.Set(ctx, key, translated, s.cacheTTL)
	return translated, nil
}

func (s *TranslationService) fetch(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	apiURL := fmt.Sprintf("%s/api/v1/%s/%s/%s", s.baseURL, sourceLang, targetLang, url.PathEscape(text))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return "", fmt.Errorf("create translation request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := s.client.Do(req)
	metrics.TranslationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTranslationBody))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: read body: %v", ErrServiceUnavailable, err)
	}

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return "", fmt.Errorf("%w: status %d", ErrServiceUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("%w: status %d", ErrInvalidResponse, resp.StatusCode)
	}

	var result translateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if strings.TrimSpace(result.Translation) == "" {
		return "", ErrTranslationFailed
	}
	return result.Translation, nil
}

// 5 TranslateMineral translates title and description. An empty
// description stays empty; a failed description keeps the original text
// unless the service is unavailable.
func (s *TranslationService) TranslateMineral(ctx context.Context, m models.Mineral, sourceLang, targetLang string) (models.Mineral, error) {
	title, err := s.Translate(ctx, m.Title, sourceLang, targetLang)
	if err != nil {
		return m, err
	}
	m.Title = title

	if strings.TrimSpace(m.Description) == "" {
		return m, nil
	}
	description, err := s.Translate(ctx, m.Description, sourceLang, targetLang)
	switch {
	case err == nil:
		m.Description = description
	case errors.Is(err, ErrServiceUnavailable), ctx.Err() != nil:
		return m, err
	default:
		Logger.Warning("translate description of mineral %d: %v", m.ID, err)
	}
	return m, nil
}

// 6 TranslateMinerals translates a list with bounded parallelism, keeping
// the order. Unavailability aborts the whole call; other failures keep the
// original text of the entry.
func (s *TranslationService) TranslateMinerals(ctx context.Context, list []models.Mineral, sourceLang, targetLang string) ([]TranslatedMineral, error) {
	if !s.IsSupported(targetLang) {
		return nil, fmt.Errorf("%w: %s", ErrLanguageNotSupported, targetLang)
	}

	out := make([]TranslatedMineral, len(list))
	var failures atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range list {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			translated, err := s.TranslateMineral(gctx, list[i], sourceLang, targetLang)
			if err != nil {
				if errors.Is(err, ErrServiceUnavailable) || gctx.Err() != nil {
					return err
				}
				failures.Add(1)
				out[i] = TranslatedMineral{Mineral: list[i]}
				return nil
			}
			out[i] = TranslatedMineral{Mineral: translated, TitleTranslated: true}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if n := failures.Load(); n > 0 {
		Logger.Warning("%d of %d minerals kept their original text (%s -> %s)", n, len(list), sourceLang, targetLang)
	}
	return out, nil
}

// 7 FilterByTranslatedTitle keeps entries whose translated title starts
// with query, case-insensitively. Matches get their description translated.
func (s *TranslationService) FilterByTranslatedTitle(ctx context.Context, list []models.Mineral, query, sourceLang, targetLang string) ([]models.Mineral, error) {
	results := []models.Mineral{}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return results, nil
	}
	if !s.IsSupported(targetLang) {
		return nil, fmt.Errorf("%w: %s", ErrLanguageNotSupported, targetLang)
	}

	matched := make([]*models.Mineral, len(list))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range list {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			title, err := s.Translate(gctx, list[i].Title, sourceLang, targetLang)
			if err != nil {
				if errors.Is(err, ErrServiceUnavailable) || gctx.Err() != nil {
					return err
				}
				return nil
			}
			if !strings.HasPrefix(strings.ToLower(title), query) {
				return nil
			}
			m := list[i]
			m.Title = title
			if strings.TrimSpace(m.Description) != "" {
				if desc, err := s.Translate(gctx, m.Description, sourceLang, targetLang); err == nil {
					m.Description = desc
				}
			}
			matched[i] = &m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, m := range matched {
		if m != nil {
			results = append(results, *m)
		}
	}
	return results, nil
}

// 8 CheckAvailability probes the service with a fixed phrase
func (s *TranslationService) CheckAvailability(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/v1/ru/en/test", nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxTranslationBody))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrServiceUnavailable, resp.StatusCode)
	}
	return nil
}
