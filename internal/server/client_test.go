package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fd1az/options-arbitrage/business/arbitrage"
	pricingDomain "github.com/fd1az/options-arbitrage/business/pricing/domain"
	"github.com/fd1az/options-arbitrage/internal/apperror"
	"github.com/fd1az/options-arbitrage/internal/logger"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	ts := httptest.NewServer(newTestServer(t, 0).Handler())
	t.Cleanup(ts.Close)

	client, err := NewClient(ts.URL, 5*time.Second, logger.NewDiscard())
	require.NoError(t, err)
	return client
}

func TestClient_Evaluate(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.Evaluate(context.Background(), arbitrage.ReferenceRequest())
	require.NoError(t, err)
	assert.True(t, resp.Arbitrage)
	assert.Equal(t, []string{"butterfly"}, resp.Flags)
	require.Len(t, resp.Opportunities, 1)
	assert.Equal(t, pricingDomain.ModeCalls, resp.Request.Mode)
	assert.Equal(t, "1", resp.Opportunities[0].Credit.String())
}

func TestClient_EvaluateRejected(t *testing.T) {
	client := newTestClient(t)

	req := arbitrage.ReferenceRequest()
	req.X2 = req.X1

	_, err := client.Evaluate(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, apperror.CodeInvalidStrikes, apperror.GetCode(err))
	assert.Equal(t, http.StatusBadRequest, apperror.StatusCode(err))
}

func TestClient_Flags(t *testing.T) {
	client := newTestClient(t)

	flags, err := client.Flags(context.Background())
	require.NoError(t, err)
	assert.Len(t, flags, 6)
}

func TestDecodeAPIError(t *testing.T) {
	assert.NoError(t, decodeAPIError(http.StatusOK, nil))

	err := decodeAPIError(http.StatusBadGateway, []byte("upstream down"))
	assert.Equal(t, apperror.CodeInternalError, apperror.GetCode(err))
	assert.Equal(t, http.StatusBadGateway, apperror.StatusCode(err))
}
