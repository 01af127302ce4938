package entity

// StepStatus is the outcome of one workflow step.
type StepStatus string

const (
	StepSucceeded StepStatus = "succeeded"
	StepFailed    StepStatus = "failed"
	StepSkipped   StepStatus = "skipped"
)

// StepResult records what happened in a single workflow step.
type StepResult struct {
	Step    string     `json:"step"`
	Status  StepStatus `json:"status"`
	Message string     `json:"message,omitempty"`
}

// RunSummary collects the step results of one workflow run, in execution order.
type RunSummary struct {
	RunID string       `json:"runId"`
	Steps []StepResult `json:"steps"`
	// Transaction is set when transaction generation was attempted and failed.
	Transaction *TransactionFailure `json:"transaction,omitempty"`
}

// Failed returns the steps with StepFailed status.
func (s RunSummary) Failed() []StepResult {
	var failed []StepResult
	for _, step := range s.Steps {
		if step.Status == StepFailed {
			failed = append(failed, step)
		}
	}
	return failed
}
