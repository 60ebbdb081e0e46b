package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	userdomain "github.com/plataforma/labstock/internal/user/domain"
	"github.com/plataforma/labstock/pkg/auth"
)

// echoIdentity reports what the middleware stored and forwarded, so tests
// can assert on both the locals and the headers the services would see.
func echoIdentity(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"user_id":        c.Locals(LocalUserID),
		"username":       c.Locals(LocalUsername),
		"role":           c.Locals(LocalRole),
		"forwarded_id":   c.Get("X-User-ID"),
		"forwarded_role": c.Get("X-User-Role"),
	})
}

func TestAuthMiddlewareRejectsMissingOrBadTokens(t *testing.T) {
	app := fiber.New()
	app.Get("/reservations", AuthMiddleware(), echoIdentity)

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"bare bearer", "Bearer "},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/reservations", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
			}
		})
	}
}

func TestAuthMiddlewareForwardsIdentity(t *testing.T) {
	app := fiber.New()
	app.Get("/reservations", AuthMiddleware(), echoIdentity)

	token, err := auth.GenerateToken(7, "ana", userdomain.RoleStudent)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/reservations", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	if payload["username"] != "ana" {
		t.Errorf("username local = %v, want ana", payload["username"])
	}
	if payload["role"] != userdomain.RoleStudent {
		t.Errorf("role local = %v, want %s", payload["role"], userdomain.RoleStudent)
	}
	if payload["forwarded_id"] != "7" {
		t.Errorf("X-User-ID = %v, want 7", payload["forwarded_id"])
	}
	if payload["forwarded_role"] != userdomain.RoleStudent {
		t.Errorf("X-User-Role = %v, want %s", payload["forwarded_role"], userdomain.RoleStudent)
	}
}

func TestAdminMiddlewareEnforcesRole(t *testing.T) {
	app := fiber.New()
	app.Get("/admin/stats", AuthMiddleware(), AdminMiddleware(), echoIdentity)

	tests := []struct {
		role string
		want int
	}{
		{userdomain.RoleStudent, http.StatusForbidden},
		{userdomain.RoleTeacher, http.StatusForbidden},
		{userdomain.RoleAdmin, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			token, err := auth.GenerateToken(1, "caller", tt.role)
			if err != nil {
				t.Fatalf("GenerateToken: %v", err)
			}

			req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.want {
				t.Errorf("role %s: status = %d, want %d", tt.role, resp.StatusCode, tt.want)
			}
		})
	}
}

func TestOptionalAuthMiddlewareAllowsAnonymous(t *testing.T) {
	app := fiber.New()
	app.Get("/materials", OptionalAuthMiddleware(), echoIdentity)

	req := httptest.NewRequest(http.MethodGet, "/materials", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}
