package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fd1az/options-arbitrage/business/arbitrage/app"
	arbDomain "github.com/fd1az/options-arbitrage/business/arbitrage/domain"
	payoffApp "github.com/fd1az/options-arbitrage/business/payoff/app"
	"github.com/fd1az/options-arbitrage/internal/apperror"
	"github.com/fd1az/options-arbitrage/internal/config"
	"github.com/fd1az/options-arbitrage/internal/logger"
	"github.com/fd1az/options-arbitrage/internal/wsconn"
)

const butterflyRequest = `{"mode":"calls","x1":90,"x2":100,"x3":110,"c1":12,"c2":7,"c3":1}`

func newTestServer(t *testing.T, rpm int) *Server {
	t.Helper()

	evaluator, err := app.NewEvaluator(
		app.NewDetector(),
		payoffApp.NewConstructor(arbDomain.DefaultMaxDenominator),
		app.DefaultEvaluatorConfig(),
		logger.NewDiscard(),
	)
	require.NoError(t, err)

	cfg := config.ServerConfig{
		Port:              0,
		CORSOrigins:       []string{"http://localhost:3000"},
		RequestsPerMinute: rpm,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      5 * time.Second,
	}
	return New(cfg, evaluator, logger.NewDiscard())
}

func post(t *testing.T, s *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apperror.ErrorBody {
	t.Helper()
	var resp apperror.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func TestHandleEvaluate_Butterfly(t *testing.T) {
	s := newTestServer(t, 0)

	rec := post(t, s, "/api/v1/evaluate", butterflyRequest)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp EvaluationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.ID)
	assert.True(t, resp.Arbitrage)
	assert.Equal(t, []string{"butterfly"}, resp.Flags)
	require.Len(t, resp.Opportunities, 1)

	opp := resp.Opportunities[0]
	assert.Equal(t, "butterfly", opp.Flag)
	assert.Equal(t, "call", opp.Class)
	require.NotNil(t, opp.Weighting)
	assert.Equal(t, arbDomain.Weighting{N1: 1, N2: 2, N3: 1}, *opp.Weighting)
	assert.Equal(t, "1", opp.Credit.String())
	assert.Len(t, opp.Legs, 3)
	assert.Len(t, opp.Curve, 300)
	assert.Equal(t, 1.0, opp.Summary.Min)

	require.NotEmpty(t, opp.Table.Rows)
	total := opp.Table.Rows[len(opp.Table.Rows)-1]
	assert.Equal(t, "Total", total[0])
	assert.Equal(t, len(opp.Table.Headers), len(total))
}

func TestHandleEvaluate_NoArbitrage(t *testing.T) {
	s := newTestServer(t, 0)

	rec := post(t, s, "/api/v1/evaluate", `{"mode":"calls","x1":90,"x2":100,"x3":110,"c1":12,"c2":6,"c3":1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp EvaluationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Arbitrage)
	assert.Empty(t, resp.Flags)
	assert.Empty(t, resp.Opportunities)
}

func TestHandleEvaluate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode apperror.Code
	}{
		{
			name:     "strikes_not_increasing",
			body:     `{"mode":"calls","x1":100,"x2":100,"x3":110,"c1":12,"c2":7,"c3":1}`,
			wantCode: apperror.CodeInvalidStrikes,
		},
		{
			name:     "missing_put_quote",
			body:     `{"mode":"both","x1":90,"x2":100,"x3":110,"c1":12,"c2":7,"c3":1}`,
			wantCode: apperror.CodeMissingQuote,
		},
		{
			name:     "malformed_body",
			body:     `{"mode":`,
			wantCode: apperror.CodeInvalidFormat,
		},
		{
			name:     "unknown_field",
			body:     `{"mode":"calls","x1":90,"x2":100,"x3":110,"c1":12,"c2":7,"c3":1,"c4":3}`,
			wantCode: apperror.CodeInvalidFormat,
		},
	}

	s := newTestServer(t, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, s, "/api/v1/evaluate", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
		})
	}
}

func TestHandleCurve(t *testing.T) {
	s := newTestServer(t, 0)

	body := `{"request":` + butterflyRequest + `,"flag":"butterfly","prices":[80,95,100,105,120]}`
	rec := post(t, s, "/api/v1/curve", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CurveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "butterfly", resp.Flag)

	payoffs := make([]float64, 0, len(resp.Points))
	for _, p := range resp.Points {
		payoffs = append(payoffs, p.Payoff)
	}
	assert.Equal(t, []float64{1, 6, 11, 6, 1}, payoffs)
	assert.Equal(t, 1.0, resp.Summary.Min)
	assert.Equal(t, 11.0, resp.Summary.Max)
}

func TestHandleCurve_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode apperror.Code
	}{
		{
			name:     "unknown_flag",
			body:     `{"request":` + butterflyRequest + `,"flag":"calendar","prices":[80,100]}`,
			wantCode: apperror.CodeUnsupportedFlag,
		},
		{
			name:     "put_flag_without_puts",
			body:     `{"request":` + butterflyRequest + `,"flag":"butterfly_put","prices":[80,100]}`,
			wantCode: apperror.CodeMissingQuote,
		},
		{
			name:     "prices_not_increasing",
			body:     `{"request":` + butterflyRequest + `,"flag":"butterfly","prices":[100,80]}`,
			wantCode: apperror.CodeInvalidPriceGrid,
		},
	}

	s := newTestServer(t, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, s, "/api/v1/curve", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
		})
	}
}

func TestHandleFlags(t *testing.T) {
	s := newTestServer(t, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/flags", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var flags []FlagResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &flags))
	require.Len(t, flags, len(arbDomain.AllFlags))
	assert.Equal(t, "cx2_overpriced", flags[0].Flag)
	assert.Equal(t, "put", flags[5].Class)
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, 10)

	first := post(t, s, "/api/v1/evaluate", butterflyRequest)
	assert.Equal(t, http.StatusOK, first.Code)

	second := post(t, s, "/api/v1/evaluate", butterflyRequest)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))
	assert.Equal(t, apperror.CodeRateLimitExceeded, decodeError(t, second).Code)
}

func TestHandleStream(t *testing.T) {
	s := newTestServer(t, 0)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	cfg := wsconn.DefaultConfig("ws"+strings.TrimPrefix(ts.URL, "http")+"/api/v1/stream", "test")
	cfg.PingInterval = 0
	cfg.MaxReconnects = -1

	client, err := wsconn.New(cfg)
	require.NoError(t, err)
	defer client.Close()

	replies := make(chan []byte, 2)
	client.OnMessage(func(ctx context.Context, msg []byte) {
		replies <- msg
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, client.Connect(ctx))

	require.NoError(t, client.Send(ctx, []byte(butterflyRequest)))
	select {
	case msg := <-replies:
		var resp EvaluationResponse
		require.NoError(t, json.Unmarshal(msg, &resp))
		assert.Equal(t, []string{"butterfly"}, resp.Flags)
		assert.Len(t, resp.Opportunities, 1)
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for evaluation")
	}

	require.NoError(t, client.Send(ctx, []byte(`{"mode":"sideways"}`)))
	select {
	case msg := <-replies:
		var resp apperror.ErrorResponse
		require.NoError(t, json.Unmarshal(msg, &resp))
		assert.Equal(t, apperror.CodeInvalidFormat, resp.Error.Code)
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for error reply")
	}
}
