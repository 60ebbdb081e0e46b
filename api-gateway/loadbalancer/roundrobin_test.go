package loadbalancer

import (
	"os"
	"sync"
	"testing"

	"github.com/plataforma/labstock/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("loadbalancer-test", false)
	os.Exit(m.Run())
}

func TestNextCyclesThroughServers(t *testing.T) {
	servers := []string{"http://a:8080", "http://b:8080", "http://c:8080"}
	rr := NewRoundRobin(servers)

	for round := 0; round < 2; round++ {
		for _, want := range servers {
			if got := rr.Next(); got != want {
				t.Fatalf("Next() = %q, want %q", got, want)
			}
		}
	}
}

func TestNewRoundRobinFallsBackOnEmptyPool(t *testing.T) {
	rr := NewRoundRobin(nil)
	if got := rr.Next(); got == "" {
		t.Error("empty pool produced no fallback server")
	}
}

func TestAddAndRemoveServer(t *testing.T) {
	rr := NewRoundRobin([]string{"http://a:8080"})
	rr.AddServer("http://b:8080")

	if got := len(rr.GetServers()); got != 2 {
		t.Fatalf("server count = %d, want 2", got)
	}

	rr.RemoveServer("http://a:8080")
	servers := rr.GetServers()
	if len(servers) != 1 || servers[0] != "http://b:8080" {
		t.Errorf("servers after remove = %v", servers)
	}
	if got := rr.Next(); got != "http://b:8080" {
		t.Errorf("Next() after remove = %q", got)
	}
}

func TestNextConcurrentDistribution(t *testing.T) {
	servers := []string{"http://a:8080", "http://b:8080"}
	rr := NewRoundRobin(servers)

	const calls = 100
	var wg sync.WaitGroup
	picks := make(chan string, calls)
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			picks <- rr.Next()
		}()
	}
	wg.Wait()
	close(picks)

	counts := make(map[string]int)
	for pick := range picks {
		counts[pick]++
	}
	if counts["http://a:8080"] != 50 || counts["http://b:8080"] != 50 {
		t.Errorf("uneven distribution: %v", counts)
	}
}
