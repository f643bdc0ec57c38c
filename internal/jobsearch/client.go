// Package jobsearch fans a structured query out across job platforms,
// normalizes and filters the results, and merges them into one ranked list.
package jobsearch

import (
	"context"
	"fmt"

	"github.com/askasha/asha-agent/internal/types"
)

// JobPlatformClient is the capability one platform exposes to the
// aggregator. Each client normalizes its platform's raw posting shape into
// types.JobPosting and tags the platform on every item.
type JobPlatformClient interface {
	// Platform returns the platform identifier this client serves.
	Platform() string
	// SearchJobs runs one search and returns normalized postings.
	SearchJobs(ctx context.Context, params *types.JobSearchParams) ([]types.JobPosting, error)
}

// Registry resolves platform identifiers to clients while preserving the
// caller's requested platform order.
type Registry struct {
	clients map[string]JobPlatformClient
}

// NewRegistry builds a registry from the given clients.
func NewRegistry(clients ...JobPlatformClient) *Registry {
	r := &Registry{clients: make(map[string]JobPlatformClient, len(clients))}
	for _, c := range clients {
		r.clients[c.Platform()] = c
	}
	return r
}

// Get returns the client for a platform.
func (r *Registry) Get(platform string) (JobPlatformClient, error) {
	client, ok := r.clients[platform]
	if !ok {
		return nil, fmt.Errorf("no client registered for platform %q", platform)
	}
	return client, nil
}

// Platforms returns the registered platform identifiers.
func (r *Registry) Platforms() []string {
	out := make([]string, 0, len(r.clients))
	for p := range r.clients {
		out = append(out, p)
	}
	return out
}
