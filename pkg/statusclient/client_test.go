package statusclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"statuspage/pkg/status"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeData(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success":    true,
		"request_id": "req-1",
		"message":    "ok",
		"data":       data,
	})
}

func writeErr(w http.ResponseWriter, code int, kind, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success":    false,
		"request_id": "req-2",
		"error":      map[string]string{"kind": kind, "message": msg},
	})
}

func loggedIn(t *testing.T, token string) *Session {
	t.Helper()
	s := NewSession()
	require.NoError(t, s.BeginLogin())
	require.NoError(t, s.Authenticate(token, 0))
	return s
}

func TestClient_LoginAuthenticatesSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "secret123" {
			writeErr(w, http.StatusUnauthorized, "unauthorised", "incorrect email or password")
			return
		}
		writeData(w, http.StatusOK, Token{AccessToken: "jwt", TokenType: "bearer", ExpiresIn: 3600})
	}))
	defer srv.Close()

	c := New(srv.URL + "/api/v1/")
	sess := NewSession()

	_, err := c.Login(context.Background(), sess, "a@b.co", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "incorrect email or password", apiErr.Message)
	assert.Equal(t, Anonymous, sess.State())

	tok, err := c.Login(context.Background(), sess, "a@b.co", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "jwt", tok.AccessToken)
	assert.Equal(t, Authenticated, sess.State())
}

func TestClient_LoginFormIsFormEncoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "a@b.co", r.PostForm.Get("username"))
		writeData(w, http.StatusOK, Token{AccessToken: "jwt", ExpiresIn: 60})
	}))
	defer srv.Close()

	sess := NewSession()
	_, err := New(srv.URL).LoginForm(context.Background(), sess, "a@b.co", "pw")
	require.NoError(t, err)
	assert.Equal(t, Authenticated, sess.State())
}

func TestClient_AttachesBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer jwt", r.Header.Get("Authorization"))
		writeData(w, http.StatusOK, []Service{{ID: "s1", Name: "API", Status: status.Operational}})
	}))
	defer srv.Close()

	services, err := New(srv.URL).Services(context.Background(), loggedIn(t, "jwt"))
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "API", services[0].Name)
}

func TestClient_UnauthorizedExpiresSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeErr(w, http.StatusUnauthorized, "unauthorised", "token expired")
	}))
	defer srv.Close()

	c := New(srv.URL)
	sess := loggedIn(t, "old")

	_, err := c.Me(context.Background(), sess)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
	assert.Equal(t, Expired, sess.State())

	// no request goes out without a usable token
	_, err = c.Me(context.Background(), sess)
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestClient_AuthenticatedCallWithoutLogin(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	_, err := New(srv.URL).Members(context.Background(), NewSession())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.False(t, called)
}

func TestClient_ForbiddenDoesNotExpire(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeErr(w, http.StatusForbidden, "forbidden", "admin only")
	}))
	defer srv.Close()

	sess := loggedIn(t, "jwt")
	_, err := New(srv.URL).Members(context.Background(), sess)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "req-2", apiErr.RequestID)
	assert.False(t, errors.Is(err, ErrSessionExpired))
	assert.Equal(t, Authenticated, sess.State())
}

func TestClient_TimelineQueryAndDecode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/organizations/public/Acme%20Inc/incidents/timeline", r.URL.EscapedPath())
		assert.Equal(t, "7", r.URL.Query().Get("days"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{
			"organization":{"id":"o1","name":"Acme Inc"},
			"timeline_period":{"start_date":"2024-06-23T12:00:00Z","end_date":"2024-06-30T12:00:00Z","days":7},
			"services":[{"service":{"id":"s1","name":"API","current_status":"degraded"},"incident_count":1,
				"incidents":[{"id":"i1","title":"slow","impact":"high","status":"monitoring","color":"#ea580c",
				"start_time":"2024-06-29T00:00:00Z","end_time":"2024-06-29T12:00:00Z","duration_hours":12,
				"duration_label":"12.0h","is_ongoing":false,"layout":{"left_percent":78.57,"width_percent":7.14}}]}],
			"summary":{"total_incidents":1,"high_incidents":1,"average_resolution_hours":12},
			"impact_legend":{"high":{"color":"#ea580c","label":"High"}}}}`))
	}))
	defer srv.Close()

	tl, err := New(srv.URL).Timeline(context.Background(), "Acme Inc", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, tl.Period.Days)
	require.Len(t, tl.Services, 1)
	block := tl.Services[0].Incidents[0]
	assert.Equal(t, 7.14, block.Layout.WidthPercent)
	assert.Equal(t, status.ImpactHigh, block.Impact)
	assert.Equal(t, "High", tl.ImpactLegend["high"].Label)
}

func TestClient_RevokeUsesQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "u1", r.URL.Query().Get("user_id"))
		writeData(w, http.StatusOK, Member{ID: "u1", Status: "rejected"})
	}))
	defer srv.Close()

	m, err := New(srv.URL).RevokeAccess(context.Background(), loggedIn(t, "jwt"), "u1")
	require.NoError(t, err)
	assert.Equal(t, "rejected", m.Status)
}

func TestClient_DeleteWithNullData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeData(w, http.StatusOK, nil)
	}))
	defer srv.Close()

	assert.NoError(t, New(srv.URL).DeleteService(context.Background(), loggedIn(t, "jwt"), "s1"))
}
