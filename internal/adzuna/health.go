package adzuna

import "context"

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

type Health struct {
	Status                string `json:"status"`
	CredentialsConfigured bool   `json:"credentialsConfigured"`
	JobsAvailable         bool   `json:"jobsAvailable"`
	Error                 string `json:"error,omitempty"`
}

// HealthCheck runs a one-result search. It never fails; problems are reported as unhealthy.
func (c *Client) HealthCheck(ctx context.Context) Health {
	health := Health{CredentialsConfigured: c.CredentialsConfigured()}

	found, err := c.Search(ctx, SearchParams{Keyword: "test", ResultsPerPage: 1})
	if err != nil {
		health.Status = StatusUnhealthy
		health.Error = err.Error()
		return health
	}

	health.Status = StatusHealthy
	health.JobsAvailable = found.Len() > 0
	return health
}
