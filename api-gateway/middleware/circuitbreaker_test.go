package middleware

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/plataforma/labstock/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("middleware-test", false)
	os.Exit(m.Run())
}

func TestCircuitBreakerOpensAfterMaxFailures(t *testing.T) {
	cb := NewCircuitBreaker("platform", 3, time.Minute)
	failing := func() error { return errors.New("boom") }

	for i := 0; i < 3; i++ {
		if err := cb.Call(failing); err == nil {
			t.Fatal("expected failure to propagate")
		}
	}

	if got := cb.GetState(); got != StateOpen {
		t.Fatalf("state = %q, want open", got)
	}

	// Open circuit rejects without invoking the function.
	invoked := false
	err := cb.Call(func() error { invoked = true; return nil })
	if err == nil {
		t.Error("open circuit accepted a call")
	}
	if invoked {
		t.Error("open circuit invoked the function")
	}
}

func TestCircuitBreakerSuccessResetsFailureCount(t *testing.T) {
	cb := NewCircuitBreaker("platform", 3, time.Minute)
	failing := func() error { return errors.New("boom") }
	ok := func() error { return nil }

	_ = cb.Call(failing)
	_ = cb.Call(failing)
	if err := cb.Call(ok); err != nil {
		t.Fatalf("success call failed: %v", err)
	}
	// Two more failures must not trip the breaker after the reset.
	_ = cb.Call(failing)
	_ = cb.Call(failing)

	if got := cb.GetState(); got != StateClosed {
		t.Errorf("state = %q, want closed", got)
	}
}

func TestCircuitBreakerRecoversThroughHalfOpen(t *testing.T) {
	cb := NewCircuitBreaker("platform", 1, 10*time.Millisecond)
	failing := func() error { return errors.New("boom") }
	ok := func() error { return nil }

	_ = cb.Call(failing)
	if got := cb.GetState(); got != StateOpen {
		t.Fatalf("state = %q, want open", got)
	}

	time.Sleep(20 * time.Millisecond)

	// Three successes in half-open close the circuit.
	for i := 0; i < 3; i++ {
		if err := cb.Call(ok); err != nil {
			t.Fatalf("half-open call %d failed: %v", i, err)
		}
	}
	if got := cb.GetState(); got != StateClosed {
		t.Errorf("state = %q, want closed after recovery", got)
	}
}

func TestCircuitBreakerHalfOpenFailureReopens(t *testing.T) {
	cb := NewCircuitBreaker("platform", 1, 10*time.Millisecond)
	failing := func() error { return errors.New("boom") }

	_ = cb.Call(failing)
	time.Sleep(20 * time.Millisecond)
	_ = cb.Call(failing)

	if got := cb.GetState(); got != StateOpen {
		t.Errorf("state = %q, want reopened", got)
	}
}

func TestManagerReusesBreakersPerService(t *testing.T) {
	m := NewCircuitBreakerManager()

	a := m.GetOrCreate("platform")
	b := m.GetOrCreate("platform")
	if a != b {
		t.Error("manager created a second breaker for the same service")
	}

	stats := m.GetAllStats()
	if _, ok := stats["platform"]; !ok {
		t.Error("stats missing platform breaker")
	}
}

func TestDetermineServiceFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/auth/login", "platform"},
		{"/users/me", "platform"},
		{"/materials/3", "platform"},
		{"/reservations/1/team", "platform"},
		{"/reservation-materials/9", "platform"},
		{"/team-members/2", "platform"},
		{"/admin/stats", "platform"},
		{"/health", "platform"},
		{"/gateway/health", ""},
		{"/gateway/circuits", ""},
		{"/", ""},
		{"/favicon.ico", ""},
	}

	for _, tt := range tests {
		if got := determineServiceFromPath(tt.path); got != tt.want {
			t.Errorf("determineServiceFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
