package adzuna

import (
	"context"
	"net/http"
	"testing"
)

func TestHealthCheckHealthy(t *testing.T) {
	var perPage string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		perPage = r.URL.Query().Get("results_per_page")
		_, _ = w.Write([]byte(`{"results": [{"id": "1"}]}`))
	})

	health := client.HealthCheck(context.Background())
	if health.Status != StatusHealthy || !health.CredentialsConfigured || !health.JobsAvailable {
		t.Fatalf("unexpected health: %+v", health)
	}
	if perPage != "1" {
		t.Fatalf("expected single result probe, got %s", perPage)
	}
}

func TestHealthCheckUnhealthy(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	health := client.HealthCheck(context.Background())
	if health.Status != StatusUnhealthy || health.JobsAvailable || health.Error == "" {
		t.Fatalf("unexpected health: %+v", health)
	}

	client.credentials = Credentials{}
	health = client.HealthCheck(context.Background())
	if health.Status != StatusUnhealthy || health.CredentialsConfigured {
		t.Fatalf("unexpected health without credentials: %+v", health)
	}
}
