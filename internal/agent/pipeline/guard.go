package pipeline

import "github.com/shopassist-poc/server/internal/agent/model"

// enforcePolicy forwards the selector's cancellation decision into the run
// state unchanged. The only gated action today is decided alongside its
// invocation, so this stage is a pass-through; it exists as the seam where
// future gated actions (address edits, refunds) get centralized. It must not
// recompute or override a decision already made.
func (r *Runner) enforcePolicy(s *model.RunState, hint policyHint) {
	if hint.decision != nil {
		s.SetPolicy(hint.decision)
	}
}
