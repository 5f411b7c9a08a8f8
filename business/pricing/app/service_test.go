package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fd1az/options-arbitrage/business/pricing/domain"
	"github.com/fd1az/options-arbitrage/internal/apperror"
	"github.com/fd1az/options-arbitrage/internal/logger"
)

func TestParseInline(t *testing.T) {
	tests := []struct {
		name      string
		in        InlineInput
		wantMode  domain.Mode
		wantCalls bool
		wantPuts  bool
		wantCode  apperror.Code
	}{
		{
			name:      "calls_short_mode",
			in:        InlineInput{Mode: "c", Strikes: "90,100,110", Calls: "12, 7, 1"},
			wantMode:  domain.ModeCalls,
			wantCalls: true,
		},
		{
			name:     "puts_slash_separated",
			in:       InlineInput{Mode: "puts", Strikes: "90/100/110", Puts: "1/7/12"},
			wantMode: domain.ModePuts,
			wantPuts: true,
		},
		{
			name:      "both",
			in:        InlineInput{Mode: "b", Strikes: "90 100 110", Calls: "12,7,1", Puts: "1,4,12"},
			wantMode:  domain.ModeBoth,
			wantCalls: true,
			wantPuts:  true,
		},
		{
			name:      "puts_ignored_in_calls_mode",
			in:        InlineInput{Mode: "calls", Strikes: "90,100,110", Calls: "12,7,1", Puts: "bad"},
			wantMode:  domain.ModeCalls,
			wantCalls: true,
		},
		{
			name:     "unknown_mode",
			in:       InlineInput{Mode: "straddle", Strikes: "90,100,110"},
			wantCode: apperror.CodeInvalidMode,
		},
		{
			name:     "two_strikes",
			in:       InlineInput{Mode: "c", Strikes: "90,100", Calls: "12,7,1"},
			wantCode: apperror.CodeInvalidStrikes,
		},
		{
			name:     "not_a_number",
			in:       InlineInput{Mode: "c", Strikes: "90,abc,110", Calls: "12,7,1"},
			wantCode: apperror.CodeInvalidInput,
		},
		{
			name:     "two_call_prices",
			in:       InlineInput{Mode: "c", Strikes: "90,100,110", Calls: "12,7"},
			wantCode: apperror.CodeMissingQuote,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ParseInline(tt.in)
			if tt.wantCode != "" {
				if got := apperror.GetCode(err); got != tt.wantCode {
					t.Fatalf("code = %s, want %s (err=%v)", got, tt.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if req.Mode != tt.wantMode {
				t.Errorf("Mode = %s, want %s", req.Mode, tt.wantMode)
			}
			if _, ok := req.Quote(domain.Call); ok != tt.wantCalls {
				t.Errorf("has calls = %v, want %v", ok, tt.wantCalls)
			}
			if _, ok := req.Quote(domain.Put); ok != tt.wantPuts {
				t.Errorf("has puts = %v, want %v", ok, tt.wantPuts)
			}
		})
	}
}

func TestRequestService_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "request.yaml")
	content := "mode: calls\nx1: 90\nx2: 100\nx3: 110\nc1: 12\nc2: 7\nc3: 1\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write request file: %v", err)
	}

	svc := NewRequestService(logger.NewDiscard())
	ctx := context.Background()

	t.Run("file_wins_over_inline", func(t *testing.T) {
		req, err := svc.Load(ctx, path, InlineInput{Mode: "puts"})
		if err != nil {
			t.Fatalf("Load error: %v", err)
		}
		if req.Mode != domain.ModeCalls {
			t.Errorf("Mode = %s, want calls", req.Mode)
		}
		if req.X2.String() != "100" {
			t.Errorf("X2 = %s, want 100", req.X2)
		}
	})

	t.Run("inline_is_validated", func(t *testing.T) {
		_, err := svc.Load(ctx, "", InlineInput{Mode: "both", Strikes: "90,100,110", Calls: "12,7,1"})
		if got := apperror.GetCode(err); got != apperror.CodeMissingQuote {
			t.Errorf("code = %s, want %s", got, apperror.CodeMissingQuote)
		}
	})

	t.Run("missing_file", func(t *testing.T) {
		_, err := svc.Load(ctx, filepath.Join(dir, "absent.yaml"), InlineInput{})
		if got := apperror.GetCode(err); got != apperror.CodeNotFound {
			t.Errorf("code = %s, want %s", got, apperror.CodeNotFound)
		}
	})
}
