package loadbalancer

import (
	"sync"

	"github.com/plataforma/labstock/pkg/logger"
)

// RoundRobin rotates through a pool of service instances.
type RoundRobin struct {
	servers []string
	current int
	mu      sync.Mutex
}

// NewRoundRobin builds a pool over the given instances. An empty pool falls
// back to the local platform server so a bare dev setup still routes.
func NewRoundRobin(servers []string) *RoundRobin {
	if len(servers) == 0 {
		servers = []string{"http://localhost:8080"}
	}

	logger.Logger.Info().
		Int("instances", len(servers)).
		Strs("pool", servers).
		Msg("instance pool initialized")

	return &RoundRobin{
		servers: servers,
		current: 0,
	}
}

// Next returns the next instance in rotation.
func (rr *RoundRobin) Next() string {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	if len(rr.servers) == 0 {
		return ""
	}

	server := rr.servers[rr.current]
	rr.current = (rr.current + 1) % len(rr.servers)

	return server
}

// GetServers returns a copy of the pool.
func (rr *RoundRobin) GetServers() []string {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	return append([]string{}, rr.servers...)
}

// AddServer puts a new instance into rotation.
func (rr *RoundRobin) AddServer(server string) {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	rr.servers = append(rr.servers, server)
	logger.Logger.Info().
		Str("instance", server).
		Int("instances", len(rr.servers)).
		Msg("instance added to pool")
}

// RemoveServer takes an instance out of rotation.
func (rr *RoundRobin) RemoveServer(server string) {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	for i, s := range rr.servers {
		if s == server {
			rr.servers = append(rr.servers[:i], rr.servers[i+1:]...)
			logger.Logger.Info().
				Str("instance", server).
				Int("instances", len(rr.servers)).
				Msg("instance removed from pool")
			break
		}
	}

	if rr.current >= len(rr.servers) && len(rr.servers) > 0 {
		rr.current = 0
	}
}

// GetStats reports the pool state for the gateway stats endpoints.
func (rr *RoundRobin) GetStats() map[string]interface{} {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	return map[string]interface{}{
		"algorithm":     "round-robin",
		"instances":     len(rr.servers),
		"pool":          rr.servers,
		"current_index": rr.current,
	}
}
