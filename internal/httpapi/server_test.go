package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novapath/trident/internal/bank/banktest"
	"github.com/novapath/trident/internal/guidance"
	"github.com/novapath/trident/internal/identity"
	"github.com/novapath/trident/internal/metrics"
	"github.com/novapath/trident/internal/ordering"
	"github.com/novapath/trident/internal/session"
	"github.com/novapath/trident/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "trident.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)
	cache := ordering.NewCache(banktest.New(t, banktest.Small()), 8)
	return New(Options{
		Sessions:    session.NewService(cache, st.ProgressRepo(), st.EventRepo(), m, nil),
		Guidance:    guidance.NewService(nil, guidance.DefaultConfig(), nil, m),
		Metrics:     m,
		Gatherer:    reg,
		CORSOrigins: []string{"https://novapath.example"},
		TopN:        1,
	})
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, r)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	w := do(t, newTestServer(t), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestStartAndAnswerFlow(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/api/v1/sessions", `{"user_id":"ab"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	started := decode[sessionView](t, w)
	assert.Equal(t, identity.Key("ab"), started.Key)
	require.NotNil(t, started.Question)
	assert.Equal(t, "A q1", started.Question.Text)
	assert.Equal(t, scaleView{Min: 1, Max: 5, Default: 3}, started.Question.Scale)

	base := "/api/v1/sessions/" + started.Key
	var last sessionView
	for _, v := range []string{"5", "4", "3", "2", "1", "1"} {
		w = do(t, s, http.MethodPost, base+"/answers", `{"value":`+v+`}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		last = decode[sessionView](t, w)
	}
	assert.True(t, last.Complete)
	assert.Nil(t, last.Question)
	assert.Equal(t, 6, last.Answered)

	w = do(t, s, http.MethodPost, base+"/answers", `{"value":3}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, s, http.MethodGet, base+"/report?top=2", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var rep struct {
		MaxScore int `json:"max_score"`
		Sections []struct {
			Section string `json:"section"`
			Top     []struct {
				Trait string `json:"trait"`
				Score int    `json:"score"`
			} `json:"top"`
		} `json:"sections"`
		Guidance *guidance.Guidance `json:"guidance"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	assert.Equal(t, 10, rep.MaxScore)
	require.Len(t, rep.Sections, 2)
	require.Len(t, rep.Sections[0].Top, 2)
	assert.Equal(t, "A", rep.Sections[0].Top[0].Trait)
	assert.Equal(t, 9, rep.Sections[0].Top[0].Score)
	require.NotNil(t, rep.Guidance)
	assert.Equal(t, guidance.SourceStatic, rep.Guidance.Source)
}

func TestAnswer_Invalid(t *testing.T) {
	s := newTestServer(t)
	started := decode[sessionView](t, do(t, s, http.MethodPost, "/api/v1/sessions", `{"user_id":"abc"}`))
	base := "/api/v1/sessions/" + started.Key

	w := do(t, s, http.MethodPost, base+"/answers", `{"value":6}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decode[errorView](t, w)
	require.NotNil(t, body.Session)
	assert.Equal(t, 0, body.Session.Answered)
	assert.Equal(t, "A q2", body.Session.Question.Text)

	w = do(t, s, http.MethodPost, base+"/answers", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	got := decode[sessionView](t, do(t, s, http.MethodGet, base, ""))
	assert.Equal(t, 0, got.Answered)
}

func TestErrors(t *testing.T) {
	s := newTestServer(t)
	started := decode[sessionView](t, do(t, s, http.MethodPost, "/api/v1/sessions", `{"user_id":"ab"}`))

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"missing user id", http.MethodPost, "/api/v1/sessions", `{}`, http.StatusBadRequest},
		{"blank user id", http.MethodPost, "/api/v1/sessions", `{"user_id":"  "}`, http.StatusBadRequest},
		{"unknown key", http.MethodGet, "/api/v1/sessions/nope", "", http.StatusNotFound},
		{"unknown key answer", http.MethodPost, "/api/v1/sessions/nope/answers", `{"value":3}`, http.StatusNotFound},
		{"report before complete", http.MethodGet, "/api/v1/sessions/" + started.Key + "/report", "", http.StatusConflict},
		{"bad top", http.MethodGet, "/api/v1/sessions/" + started.Key + "/report?top=x", "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestReset(t *testing.T) {
	s := newTestServer(t)
	started := decode[sessionView](t, do(t, s, http.MethodPost, "/api/v1/sessions", `{"user_id":"ab"}`))
	base := "/api/v1/sessions/" + started.Key
	do(t, s, http.MethodPost, base+"/answers", `{"value":4}`)

	w := do(t, s, http.MethodPost, base+"/reset", "")
	require.Equal(t, http.StatusOK, w.Code)
	reset := decode[sessionView](t, w)
	assert.Equal(t, 0, reset.Answered)
	assert.NotEqual(t, started.RunID, reset.RunID)
	assert.Equal(t, "A q1", reset.Question.Text)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	do(t, s, http.MethodPost, "/api/v1/sessions", `{"user_id":"ab"}`)

	w := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `trident_session_events_total{action="start"} 1`), body)
	assert.True(t, strings.Contains(body, `route="/api/v1/sessions"`), body)
}

func TestCORS(t *testing.T) {
	s := newTestServer(t)
	r := httptest.NewRequest(http.MethodOptions, "/api/v1/sessions", nil)
	r.Header.Set("Origin", "https://novapath.example")
	r.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, r)

	assert.Equal(t, "https://novapath.example", w.Header().Get("Access-Control-Allow-Origin"))
}
