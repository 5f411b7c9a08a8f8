package ui

import "github.com/fd1az/options-arbitrage/business/arbitrage/domain"

// TickMsg drives the welcome screen animation.
type TickMsg struct{}

// EvaluationMsg carries a finished evaluation back to the model.
type EvaluationMsg struct {
	Evaluation *domain.Evaluation
}

// ErrorMsg reports a rejected request or a failed evaluation.
type ErrorMsg struct {
	Error error
}
