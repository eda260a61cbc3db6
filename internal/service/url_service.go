package service

import (
	"context"
	"errors"
	"net/url"
	"os"
	"strings"
	"time"

	"url-shortener/internal/entity"
	"url-shortener/internal/events"
	"url-shortener/internal/repository"
	"url-shortener/internal/shortid"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

type URLRepository interface {
	InsertURL(ctx context.Context, urlID, url string) (int, error)
	GetURL(ctx context.Context, urlID string) (string, error)
}

type URLCache interface {
	Get(ctx context.Context, urlID string) (string, bool, error)
	Set(ctx context.Context, urlID, url string) error
}

type URLService struct {
	urlRepo     URLRepository
	cache       URLCache
	publisher   events.Publisher
	ids         *shortid.Generator
	baseURL     string
	maxAttempts int
	now         func() time.Time
}

// NewURLService wires the service. cache may be nil; a nil publisher drops events.
func NewURLService(urlRepo URLRepository, cache URLCache, publisher events.Publisher, ids *shortid.Generator, baseURL string, maxAttempts int) *URLService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &URLService{
		urlRepo:     urlRepo,
		cache:       cache,
		publisher:   publisher,
		ids:         ids,
		baseURL:     strings.TrimRight(baseURL, "/"),
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

// Shorten stores rawURL under a fresh short ID, drawing a new ID whenever the owning shard
// already holds the one drawn.
func (s *URLService) Shorten(ctx context.Context, rawURL string) (*entity.ShortURL, error) {
	if !validURL(rawURL) {
		return nil, ErrInvalidURL
	}

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		urlID, err := s.ids.New()
		if err != nil {
			logger.Error().Err(err).Msg("Error generating url id")
			return nil, err
		}

		shard, err := s.urlRepo.InsertURL(ctx, urlID, rawURL)
		if errors.Is(err, repository.ErrDuplicateID) {
			logger.Warn().Str("url_id", urlID).Int("attempt", attempt).Msg("url id collision, retrying")
			continue
		}
		if err != nil {
			logger.Error().Err(err).Msgf("Error inserting url %s", urlID)
			return nil, err
		}
		logger.Info().Str("url_id", urlID).Int("shard", shard).Msg("url stored")

		s.fillCache(ctx, urlID, rawURL)
		if err := s.publisher.PublishURLCreated(ctx, entity.URLCreated{
			URLID:     urlID,
			URL:       rawURL,
			Shard:     shard,
			CreatedAt: s.now().UTC(),
		}); err != nil {
			logger.Error().Err(err).Msgf("Error publishing url created event for %s", urlID)
		}

		return &entity.ShortURL{
			URLID:    urlID,
			URL:      rawURL,
			ShortURL: s.baseURL + "/" + urlID,
			Shard:    shard,
		}, nil
	}
	return nil, ErrIDExhausted
}

// Resolve returns the URL stored under urlID, or repository.ErrNotFound.
func (s *URLService) Resolve(ctx context.Context, urlID string) (string, error) {
	urlID = strings.ToUpper(urlID)
	if !s.ids.Valid(urlID) {
		return "", repository.ErrNotFound
	}

	if s.cache != nil {
		cached, found, err := s.cache.Get(ctx, urlID)
		if err != nil {
			logger.Warn().Err(err).Msgf("Error reading cache for %s", urlID)
		} else if found {
			return cached, nil
		}
	}

	target, err := s.urlRepo.GetURL(ctx, urlID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logger.Error().Err(err).Msgf("Error getting url %s", urlID)
		}
		return "", err
	}
	s.fillCache(ctx, urlID, target)
	return target, nil
}

func (s *URLService) fillCache(ctx context.Context, urlID, target string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, urlID, target); err != nil {
		logger.Warn().Err(err).Msgf("Error caching url %s", urlID)
	}
}

func validURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
