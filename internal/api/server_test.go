package api

import (
	"encoding/hex"
	"encoding/json/v2"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/arohamusic/encore-server/internal/auth"
	"github.com/arohamusic/encore-server/internal/config"
	"github.com/arohamusic/encore-server/internal/lookup"
	"github.com/arohamusic/encore-server/internal/ratelimit"
	"github.com/arohamusic/encore-server/internal/service"
	"github.com/arohamusic/encore-server/internal/sse"
	"github.com/arohamusic/encore-server/internal/store"
	"github.com/arohamusic/encore-server/internal/validation"
)

const (
	testOperatorUsername = "operator"
	testOperatorPassword = "setlist-secret"
)

// testEnvelope mirrors the success envelope for decoding test responses.
type testEnvelope[T any] struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
}

// testErrorEnvelope mirrors the detailed error envelope.
type testErrorEnvelope struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

type testServer struct {
	*Server
	api          humatest.TestAPI
	tokenService *auth.TokenService
}

// newTestServer builds a full server against a temporary Badger database.
// lookupBaseURL points the song search at a fake upstream; empty means the
// real endpoint, which search tests never hit.
func newTestServer(t *testing.T, lookupBaseURL string) *testServer {
	t.Helper()

	tmpDir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sseManager := sse.NewManager(logger)

	st, err := store.New(filepath.Join(tmpDir, "db"), nil, sseManager)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	key, err := auth.LoadOrGenerateKey(tmpDir)
	require.NoError(t, err)

	tokenService, err := auth.NewTokenService(hex.EncodeToString(key), time.Hour)
	require.NoError(t, err)

	hash, err := auth.HashPassword(testOperatorPassword)
	require.NoError(t, err)

	v := validation.New()
	quota := ratelimit.NewQuota(ratelimit.NewMemoryAttemptStore(), 5, time.Hour, logger)

	services := &Services{
		Auth:     service.NewAuthService(testOperatorUsername, hash, tokenService, v, logger),
		Requests: service.NewRequestService(st, quota, v, logger),
		Live:     service.NewLiveService(st, logger),
		Lookup:   lookup.NewClient(lookupBaseURL, logger),
	}

	cfg := &config.Config{}
	cfg.Server.CORSOrigins = []string{"*"}
	// Generous throttle so only the submission quota gates test traffic.
	cfg.Throttle.RPS = 1000
	cfg.Throttle.Burst = 1000

	sseHandler := sse.NewHandler(sseManager, nil, logger)

	s := NewServer(cfg, st, services, sseHandler, sseManager, logger)
	t.Cleanup(s.Close)

	return &testServer{
		Server:       s,
		api:          humatest.Wrap(t, s.api),
		tokenService: tokenService,
	}
}

// loginOperator authenticates the test operator and returns the full
// Authorization header value.
func (ts *testServer) loginOperator(t *testing.T) string {
	t.Helper()

	resp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"username": testOperatorUsername,
		"password": testOperatorPassword,
	})
	require.Equal(t, http.StatusOK, resp.Code, "login failed: %s", resp.Body.String())

	var envelope testEnvelope[service.LoginResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.Token)

	return "Bearer " + envelope.Data.Token
}

// goLive flips the live flag on so fan submissions pass the live gate.
func (ts *testServer) goLive(t *testing.T, authHeader string) {
	t.Helper()

	resp := ts.api.Put("/api/v1/live",
		"Authorization: "+authHeader,
		map[string]any{"is_live": true},
	)
	require.Equal(t, http.StatusOK, resp.Code, "going live failed: %s", resp.Body.String())
}

func decodeErrorEnvelope(t *testing.T, body []byte) testErrorEnvelope {
	t.Helper()

	var envelope testErrorEnvelope
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope
}
