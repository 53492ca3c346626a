package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/job-radar/internal/adzuna"
	"github.com/spigell/job-radar/internal/ai"
	"github.com/spigell/job-radar/internal/ai/gemini"
	"github.com/spigell/job-radar/internal/cache"
	"github.com/spigell/job-radar/internal/jobfeed"
	"github.com/spigell/job-radar/internal/matching"
	"github.com/spigell/job-radar/internal/secrets"
	"github.com/spigell/job-radar/internal/storage"
)

const (
	cacheBackendMemory = "memory"
	cacheBackendRedis  = "redis"
)

// feed bundles the service with the resources it holds open.
type feed struct {
	*jobfeed.Service
	closers []func() error
}

func (f *feed) Close() error {
	var errs []error
	for _, c := range f.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

func buildFeed(ctx context.Context, config *Config, logger *zap.Logger) (*feed, error) {
	f := &feed{}

	source, err := newAdzunaClient(config.Adzuna, logger)
	if err != nil {
		return nil, err
	}

	jobCache, err := newCache(ctx, config.Cache, logger, f)
	if err != nil {
		return nil, err
	}

	opts := []matching.Option{matching.WithConcurrency(config.Scoring.Concurrency)}
	if config.AI.Enabled {
		rater, err := newRater(ctx, config.AI, logger)
		if err != nil {
			// Keyword scoring still works without the model.
			logger.Warn("skipping model scoring", zap.Error(err))
		} else {
			opts = append(opts, matching.WithRater(rater, config.AI.Gemini.Timeout))
		}
	}
	scorer := matching.NewScorer(logger, opts...)

	logger.Info("scoring strategies", zap.Strings("strategies", scorer.Strategies()))

	f.Service = jobfeed.New(logger, source, jobCache, scorer, storage.NewMemory(), config.Filters)
	return f, nil
}

func newAdzunaClient(cfg *AdzunaConfig, logger *zap.Logger) (*adzuna.Client, error) {
	credentials := adzuna.Credentials{AppID: strings.TrimSpace(cfg.AppID)}

	if cfg.AppKey != "" || cfg.AppKeyFile != "" {
		key, err := secrets.Load(secrets.Source{
			Name:  "adzuna app key",
			Value: cfg.AppKey,
			File:  cfg.AppKeyFile,
		})
		if err != nil {
			return nil, err
		}
		credentials.AppKey = key
	}

	client := adzuna.New(logger, credentials, cfg.Timeout)
	if cfg.Country != "" {
		client.Country = cfg.Country
	}
	if cfg.BaseURL != "" {
		client.APIURL = cfg.BaseURL
	}
	if cfg.UserAgent != "" {
		client.UserAgent = cfg.UserAgent
	}

	if !client.CredentialsConfigured() {
		logger.Warn("adzuna credentials are not configured, serving fallback jobs",
			zap.String("hint", "set ADZUNA_APP_ID and ADZUNA_APP_KEY"),
		)
	}

	return client, nil
}

func newCache(ctx context.Context, cfg *CacheConfig, logger *zap.Logger, f *feed) (cache.Cache, error) {
	switch backend := strings.ToLower(strings.TrimSpace(cfg.Backend)); backend {
	case "", cacheBackendMemory:
		return cache.NewMemory(logger, cfg.TTL), nil
	case cacheBackendRedis:
		if cfg.RedisURL == "" {
			return nil, errors.New("cache.redis-url is required for the redis backend")
		}
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		f.closers = append(f.closers, client.Close)
		return cache.NewRedis(logger, client, cfg.TTL), nil
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s", backend)
	}
}

func newRater(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Rater, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != gemini.Provider {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
	if cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required when ai scoring is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model)
	if err != nil {
		return nil, err
	}

	return gemini.NewRater(generator, logger, cfg.Gemini.MaxLogLength), nil
}
