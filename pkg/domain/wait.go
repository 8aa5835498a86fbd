package domain

import (
	"context"
	"time"
)

// ResponseMode says how a suspended execution expects its answer back.
type ResponseMode string

const (
	ResponseMode_Approval ResponseMode = "approval"
	ResponseMode_FreeText ResponseMode = "freeText"
)

// SuspendParams parks the current execution branch until the host resumes it.
// A nil WaitUntil means wait indefinitely for a callback.
type SuspendParams struct {
	ExecutionID string
	NodeID      string
	WaitUntil   *time.Time
}

// ExecutionSuspender is the host's suspend-until-timestamp-or-indefinite
// primitive. Calling Suspend is the only suspension point in the executor;
// the branch resumes out-of-band via ExecutionResumer.
type ExecutionSuspender interface {
	Suspend(ctx context.Context, params SuspendParams) error
}

type ResumeParams struct {
	ExecutionID string
	NodeID      string
	Payload     Payload
}

// ExecutionResumer delivers a callback result into a suspended execution.
type ExecutionResumer interface {
	ResumeExecution(ctx context.Context, params ResumeParams) error
}

// ResumeClaims is everything a signed resume URL has to carry to find its way
// back to the suspended node. State beyond this is reconstructed from the
// node configuration on resume.
type ResumeClaims struct {
	ExecutionID  string       `json:"execution_id"`
	NodeID       string       `json:"node_id"`
	ResponseMode ResponseMode `json:"response_mode"`
}

type SignResumeURLParams struct {
	Claims    ResumeClaims
	ExpiresAt *time.Time
}

// ResumeURLSigner mints tamper-evident callback URLs for suspended
// executions. The URLs are opaque to integrations.
type ResumeURLSigner interface {
	SignResumeURL(ctx context.Context, params SignResumeURLParams) (string, error)
	VerifyResumeToken(ctx context.Context, token string) (ResumeClaims, error)
}
