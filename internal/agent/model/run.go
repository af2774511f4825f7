package model

// QueryInput represents the input for processing one user turn.
type QueryInput struct {
	Query string `json:"query"`
}

// ToolInvocation records one tool call with its parameters and raw result.
type ToolInvocation struct {
	Tool   string         `json:"tool"`
	Params map[string]any `json:"params"`
	Result any            `json:"result"`
}

// PolicyDecision is the allow/deny outcome for a gated action. Present only
// when a cancellation was attempted.
type PolicyDecision struct {
	CancelAllowed bool   `json:"cancel_allowed"`
	Reason        string `json:"reason,omitempty"`
}

// Trace is the structured observability record for one run. This is the sole
// contract with calling code; the API layer serializes it as-is.
type Trace struct {
	Intent         string          `json:"intent"`
	ToolsCalled    []string        `json:"tools_called"`
	Evidence       []any           `json:"evidence"`
	PolicyDecision *PolicyDecision `json:"policy_decision"`
	FinalMessage   string          `json:"final_message"`
}

// RunState accumulates per-run pipeline state. Each field has an explicit
// merge rule: Intent, Policy and FinalMessage are single-assignment
// (last write wins, written once per run in practice); Invocations and
// Evidence are append-only, ordered by call order. A run is strictly
// sequential, so no synchronization is needed.
type RunState struct {
	Query        string
	Intent       Intent
	Invocations  []ToolInvocation
	Evidence     []any
	Policy       *PolicyDecision
	FinalMessage string
}

// NewRunState creates the state for one turn. Intent defaults to other until
// the classifier writes it.
func NewRunState(query string) *RunState {
	return &RunState{Query: query, Intent: IntentOther}
}

// SetIntent applies the single-assignment merge rule for the intent field.
func (s *RunState) SetIntent(v Intent) {
	s.Intent = v
}

// AppendInvocation records a tool call in call order.
func (s *RunState) AppendInvocation(tool string, params map[string]any, result any) {
	s.Invocations = append(s.Invocations, ToolInvocation{Tool: tool, Params: params, Result: result})
}

// AppendEvidence appends evidence items in invocation order.
func (s *RunState) AppendEvidence(items ...any) {
	s.Evidence = append(s.Evidence, items...)
}

// SetPolicy applies the single-assignment merge rule for the policy decision.
func (s *RunState) SetPolicy(d *PolicyDecision) {
	s.Policy = d
}

// SetFinalMessage is the terminal write to the run state.
func (s *RunState) SetFinalMessage(msg string) {
	s.FinalMessage = msg
}

// ToolsCalled returns the ordered tool names, never nil.
func (s *RunState) ToolsCalled() []string {
	names := make([]string, 0, len(s.Invocations))
	for _, inv := range s.Invocations {
		names = append(names, inv.Tool)
	}
	return names
}

// Trace snapshots the run into its observability record.
func (s *RunState) Trace() Trace {
	evidence := s.Evidence
	if evidence == nil {
		evidence = []any{}
	}
	return Trace{
		Intent:         s.Intent.String(),
		ToolsCalled:    s.ToolsCalled(),
		Evidence:       evidence,
		PolicyDecision: s.Policy,
		FinalMessage:   s.FinalMessage,
	}
}

// RunResult is what one pipeline run hands back to the caller.
type RunResult struct {
	FinalMessage string `json:"response"`
	Trace        Trace  `json:"trace"`
}
