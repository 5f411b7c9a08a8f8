package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/coder/websocket"

	arbDomain "github.com/fd1az/options-arbitrage/business/arbitrage/domain"
	payoffDomain "github.com/fd1az/options-arbitrage/business/payoff/domain"
	pricingDomain "github.com/fd1az/options-arbitrage/business/pricing/domain"
	"github.com/fd1az/options-arbitrage/internal/apperror"
	"github.com/fd1az/options-arbitrage/internal/wsconn"
)

const maxBodyBytes = 1 << 20

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	req, err := pricingDomain.DecodeRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondError(w, err)
		return
	}

	eval, err := s.evaluator.Evaluate(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toEvaluationResponse(eval))
}

func (s *Server) handleCurve(w http.ResponseWriter, r *http.Request) {
	var body CurveRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		respondError(w, apperror.New(apperror.CodeInvalidFormat,
			apperror.WithContext(err.Error()), apperror.WithCause(err)))
		return
	}

	flag, err := arbDomain.ParseFlag(body.Flag)
	if err != nil {
		respondError(w, err)
		return
	}

	curve, err := s.evaluator.Curve(r.Context(), body.Request, flag, body.Prices)
	if err != nil {
		respondError(w, err)
		return
	}

	summary, err := payoffDomain.Summarize(curve)
	if err != nil {
		respondError(w, apperror.Internal(apperror.CodeInternalError, "summarize curve", err))
		return
	}

	respondJSON(w, http.StatusOK, CurveResponse{
		Flag:    flag.String(),
		Points:  curve.Points(),
		Summary: summary,
	})
}

func (s *Server) handleFlags(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, flagCatalog())
}

// handleStream evaluates every text message of a websocket session as a
// request and replies with the evaluation or an error body.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	cfg := wsconn.DefaultConfig("", "stream")
	cfg.PingInterval = s.config.StreamPing

	session, err := wsconn.Accept(w, r, cfg, &websocket.AcceptOptions{
		OriginPatterns: originPatterns(s.config.CORSOrigins),
	}, s.evaluateMessage)
	if err != nil {
		s.logger.Warn(r.Context(), "stream upgrade failed", "error", err)
		return
	}
	defer session.Close()

	s.logger.Debug(r.Context(), "stream session opened", "remote_addr", r.RemoteAddr)
	<-session.Done()
	s.logger.Debug(r.Context(), "stream session closed", "remote_addr", r.RemoteAddr)
}

func (s *Server) evaluateMessage(ctx context.Context, session *wsconn.Client, msg []byte) {
	var reply any

	req, err := pricingDomain.DecodeRequest(bytes.NewReader(msg))
	if err == nil {
		var eval *arbDomain.Evaluation
		eval, err = s.evaluator.Evaluate(ctx, req)
		if err == nil {
			reply = toEvaluationResponse(eval)
		}
	}
	if err != nil {
		reply = toAppError(err).ToResponse()
	}

	if err := session.SendJSON(ctx, reply); err != nil {
		s.logger.Warn(ctx, "stream reply failed", "error", err)
	}
}

// originPatterns reduces CORS origins to the host patterns websocket.Accept matches.
func originPatterns(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			out = append(out, u.Host)
			continue
		}
		out = append(out, o)
	}
	return out
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, err error) {
	appErr := toAppError(err)
	respondJSON(w, appErr.StatusCode, appErr.ToResponse())
}

func toAppError(err error) *apperror.AppError {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperror.Validation(apperror.CodeInvalidInput, "request body too large")
	}
	return apperror.Internal(apperror.CodeInternalError, "", err)
}
