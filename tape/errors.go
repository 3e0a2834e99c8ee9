package tape

import "fmt"

type TapeError struct {
	StepIndex int32          `json:"step_index"`
	Reason    string         `json:"reason"`
	Message   string         `json:"message"`
	Expected  *ExpectedState `json:"expected,omitempty"`
}

type ExpectedState struct {
	ActionSeat   int      `json:"action_seat"`
	LegalActions []string `json:"legal_actions,omitempty"`
	MinRaiseTo   int64    `json:"min_raise_to,omitempty"`
	CallAmount   int64    `json:"call_amount,omitempty"`
	Phase        string   `json:"phase,omitempty"`
}

func (e *TapeError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("tape error(step=%d reason=%s): %s", e.StepIndex, e.Reason, e.Message)
}
