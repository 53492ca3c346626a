// Package adzuna fetches job listings from the Adzuna search API and
// normalizes them into jobs.Job values.
package adzuna

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/job-radar/internal/logger"
)

const (
	apiURL         = "https://api.adzuna.com/v1/api/jobs"
	userAgent      = "spigell/job-radar"
	defaultCountry = "us"
	defaultTimeout = 10 * time.Second

	// Provider is the source tag put on every listing from this package.
	Provider = "adzuna"
)

// ErrProviderUnavailable is returned for any failure to obtain listings:
// missing credentials, transport errors, non-2xx answers or malformed payloads.
var ErrProviderUnavailable = errors.New("job provider unavailable")

type Credentials struct {
	AppID  string
	AppKey string
}

func (c Credentials) configured() bool {
	return strings.TrimSpace(c.AppID) != "" && strings.TrimSpace(c.AppKey) != ""
}

type Client struct {
	credentials Credentials
	logger      *zap.Logger
	now         func() time.Time

	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
	Country    string
}

// New creates a client. A zero timeout selects the default of 10 seconds.
func New(log *zap.Logger, credentials Credentials, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		credentials: credentials,
		logger:      logger.WithJobProvider(log, Provider),
		now:         time.Now,
		APIURL:      apiURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		UserAgent: userAgent,
		Country:   defaultCountry,
	}
}

// CredentialsConfigured reports whether both application id and key are set.
func (c *Client) CredentialsConfigured() bool {
	return c.credentials.configured()
}
