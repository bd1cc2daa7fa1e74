package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echotrace/echo-trace/internal/boot"
	"github.com/echotrace/echo-trace/internal/service/account"
	"github.com/echotrace/echo-trace/internal/service/activity"
	"github.com/echotrace/echo-trace/internal/session"
	"github.com/echotrace/echo-trace/internal/store"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	config := &boot.Config{DataDirectory: t.TempDir()}

	server := echo.New()
	Register(server,
		account.New(config),
		session.NewRegistry(),
		activity.New(store.NewAppStore(config)))
	return server
}

func request(server *echo.Echo, method, target, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	payload := map[string]any{}
	_ = json.Unmarshal(rec.Body.Bytes(), &payload)
	return rec, payload
}

func TestSignupLoginFlow(t *testing.T) {
	assert := assert.New(t)

	server := newTestServer(t)
	var token string

	t.Run("signup", func(t *testing.T) {
		rec, payload := request(server, http.MethodPost, "/api/signup", "",
			`{"name":"Ann","email":"A@X.com","password":"p1"}`)
		assert.Equal(http.StatusOK, rec.Code)
		assert.Equal(true, payload["ok"])
		assert.NotContains(rec.Body.String(), "password")
	})

	t.Run("duplicate signup conflicts", func(t *testing.T) {
		rec, payload := request(server, http.MethodPost, "/api/signup", "",
			`{"name":"Other","email":"a@x.COM","password":"p2"}`)
		assert.Equal(http.StatusConflict, rec.Code)
		assert.Equal(false, payload["ok"])
		assert.Equal("email already registered", payload["message"])
	})

	t.Run("login is case-insensitive on email", func(t *testing.T) {
		rec, payload := request(server, http.MethodPost, "/api/login", "",
			`{"email":"a@x.com","password":"p1"}`)
		assert.Equal(http.StatusOK, rec.Code)
		require.NotNil(t, payload["token"])
		token = payload["token"].(string)
		assert.NotEmpty(token)
		assert.NotContains(rec.Body.String(), "password")
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		rec, _ := request(server, http.MethodPost, "/api/login", "",
			`{"email":"a@x.com","password":"nope"}`)
		assert.Equal(http.StatusUnauthorized, rec.Code)
	})

	t.Run("timeline starts empty", func(t *testing.T) {
		rec, payload := request(server, http.MethodGet, "/api/timeline?filter=24h", token, "")
		assert.Equal(http.StatusOK, rec.Code)
		items, ok := payload["items"].([]any)
		require.True(t, ok)
		assert.Empty(items)
	})

	t.Run("me returns the sanitized user", func(t *testing.T) {
		rec, payload := request(server, http.MethodGet, "/api/me", token, "")
		assert.Equal(http.StatusOK, rec.Code)
		user := payload["user"].(map[string]any)
		assert.Equal("ann@x.com", user["email"])
		assert.NotContains(rec.Body.String(), "password")
	})

	t.Run("logout revokes the token", func(t *testing.T) {
		rec, _ := request(server, http.MethodPost, "/api/logout", token, "")
		assert.Equal(http.StatusOK, rec.Code)

		rec, _ = request(server, http.MethodGet, "/api/me", token, "")
		assert.Equal(http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthGate(t *testing.T) {
	assert := assert.New(t)

	server := newTestServer(t)

	t.Run("missing token", func(t *testing.T) {
		rec, payload := request(server, http.MethodGet, "/api/timeline", "", "")
		assert.Equal(http.StatusUnauthorized, rec.Code)
		assert.Equal(false, payload["ok"])
		assert.Equal("not authenticated", payload["message"])
	})

	t.Run("garbage token", func(t *testing.T) {
		rec, _ := request(server, http.MethodGet, "/api/contacts", "garbage", "")
		assert.Equal(http.StatusUnauthorized, rec.Code)
	})

	t.Run("healthcheck stays open", func(t *testing.T) {
		rec, payload := request(server, http.MethodGet, "/api/healthcheck", "", "")
		assert.Equal(http.StatusOK, rec.Code)
		assert.Equal("echo-trace-backend", payload["service"])
	})
}

func login(t *testing.T, server *echo.Echo) string {
	t.Helper()
	_, _ = request(server, http.MethodPost, "/api/signup", "",
		`{"name":"Ann","email":"ann@x.com","password":"p1"}`)
	_, payload := request(server, http.MethodPost, "/api/login", "",
		`{"email":"ann@x.com","password":"p1"}`)
	require.NotNil(t, payload["token"])
	return payload["token"].(string)
}

func TestSOSEndpoint(t *testing.T) {
	assert := assert.New(t)

	server := newTestServer(t)
	token := login(t, server)

	t.Run("custom location", func(t *testing.T) {
		rec, payload := request(server, http.MethodPost, "/api/sos", token,
			`{"location":{"lat":51.5,"lng":-0.12,"label":"Trafalgar Square, London"}}`)
		assert.Equal(http.StatusOK, rec.Code)
		sos := payload["sos"].(map[string]any)
		assert.Equal("Emergency Protocol Activated", sos["status"])
		assert.Equal("Trafalgar Square, London", sos["location"].(map[string]any)["label"])
	})

	t.Run("fallback location", func(t *testing.T) {
		rec, payload := request(server, http.MethodPost, "/api/sos", token, `{}`)
		assert.Equal(http.StatusOK, rec.Code)
		sos := payload["sos"].(map[string]any)
		assert.Equal("Mumbai Central, Maharashtra, India", sos["location"].(map[string]any)["label"])
	})

	t.Run("timeline reflects both activations", func(t *testing.T) {
		rec, payload := request(server, http.MethodGet, "/api/timeline?filter=24h", token, "")
		assert.Equal(http.StatusOK, rec.Code)
		items := payload["items"].([]any)
		require.Len(t, items, 2)
		newest := items[0].(map[string]any)
		assert.Equal("sos", newest["type"])
		assert.Contains(newest["details"], "Mumbai Central")
	})
}

func TestContactEndpoints(t *testing.T) {
	assert := assert.New(t)

	server := newTestServer(t)
	token := login(t, server)

	var contactID string

	t.Run("list seeds defaults", func(t *testing.T) {
		rec, payload := request(server, http.MethodGet, "/api/contacts", token, "")
		assert.Equal(http.StatusOK, rec.Code)
		contacts := payload["contacts"].([]any)
		require.Len(t, contacts, 2)
	})

	t.Run("add", func(t *testing.T) {
		rec, payload := request(server, http.MethodPost, "/api/contacts", token,
			`{"name":"Carol","phone":"+44 5555","relationship":"Sister"}`)
		assert.Equal(http.StatusOK, rec.Code)
		contact := payload["contact"].(map[string]any)
		contactID = contact["id"].(string)
		assert.NotEmpty(contactID)
	})

	t.Run("add without phone is a validation error", func(t *testing.T) {
		rec, payload := request(server, http.MethodPost, "/api/contacts", token, `{"name":"NoPhone"}`)
		assert.Equal(http.StatusBadRequest, rec.Code)
		assert.Equal("name and phone are required", payload["message"])
	})

	t.Run("update", func(t *testing.T) {
		rec, payload := request(server, http.MethodPut, "/api/contacts/"+contactID, token,
			`{"phone":"+44 6666"}`)
		assert.Equal(http.StatusOK, rec.Code)
		contact := payload["contact"].(map[string]any)
		assert.Equal("+44 6666", contact["phone"])
		assert.Equal("Carol", contact["name"])
	})

	t.Run("delete", func(t *testing.T) {
		rec, _ := request(server, http.MethodDelete, "/api/contacts/"+contactID, token, "")
		assert.Equal(http.StatusOK, rec.Code)

		rec, payload := request(server, http.MethodDelete, "/api/contacts/"+contactID, token, "")
		assert.Equal(http.StatusNotFound, rec.Code)
		assert.Equal("contact not found", payload["message"])
	})
}

func TestPrivacyEndpoints(t *testing.T) {
	assert := assert.New(t)

	server := newTestServer(t)
	token := login(t, server)

	t.Run("defaults", func(t *testing.T) {
		rec, payload := request(server, http.MethodGet, "/api/privacy", token, "")
		assert.Equal(http.StatusOK, rec.Code)
		privacy := payload["privacy"].(map[string]any)
		assert.Equal(true, privacy["bluetooth"])
		assert.Equal(true, privacy["healthSharing"])
	})

	t.Run("partial update", func(t *testing.T) {
		rec, payload := request(server, http.MethodPut, "/api/privacy", token,
			`{"bluetooth":false}`)
		assert.Equal(http.StatusOK, rec.Code)
		privacy := payload["privacy"].(map[string]any)
		assert.Equal(false, privacy["bluetooth"])
		assert.Equal(true, privacy["healthSharing"])
	})
}

func TestSyntheticReadings(t *testing.T) {
	assert := assert.New(t)

	server := newTestServer(t)
	token := login(t, server)

	t.Run("dashboard", func(t *testing.T) {
		rec, payload := request(server, http.MethodGet, "/api/dashboard", token, "")
		assert.Equal(http.StatusOK, rec.Code)
		stats := payload["stats"].(map[string]any)
		hr := stats["heartRate"].(float64)
		assert.GreaterOrEqual(hr, 68.0)
		assert.LessOrEqual(hr, 79.0)
		assert.Contains([]any{"Low", "Medium", "High"}, stats["stress"])
	})

	t.Run("health series", func(t *testing.T) {
		rec, payload := request(server, http.MethodGet, "/api/health", token, "")
		assert.Equal(http.StatusOK, rec.Code)
		series := payload["series"].(map[string]any)
		assert.Len(series["hr"].([]any), 7)
		assert.Len(series["stress"].([]any), 9)
		assert.Len(series["sleep"].([]any), 7)
	})

	t.Run("stats charts", func(t *testing.T) {
		rec, payload := request(server, http.MethodGet, "/api/stats", token, "")
		assert.Equal(http.StatusOK, rec.Code)
		charts := payload["charts"].(map[string]any)
		assert.Len(charts["safety"].([]any), 30)
		for _, v := range charts["safety"].([]any) {
			score := v.(float64)
			assert.GreaterOrEqual(score, 40.0)
			assert.LessOrEqual(score, 95.0)
		}
	})

	t.Run("locations", func(t *testing.T) {
		rec, payload := request(server, http.MethodGet, "/api/locations", token, "")
		assert.Equal(http.StatusOK, rec.Code)
		current := payload["current"].(map[string]any)
		assert.Equal("Mumbai Central, Maharashtra, India", current["label"])
		assert.Len(payload["history"].([]any), 4)
	})
}
