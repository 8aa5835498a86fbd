package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mailbridge/mailbridge/pkg/domain"
)

type resumeTokenClaims struct {
	ExecutionID  string `json:"execution_id"`
	NodeID       string `json:"node_id"`
	ResponseMode string `json:"response_mode"`

	jwt.RegisteredClaims
}

// ResumeURLSigner mints HS256-signed callback URLs under
// <public URL>/callbacks/<token>. Tokens expire with the wait deadline;
// indefinite waits get tokens without an expiry.
type ResumeURLSigner struct {
	publicURL string
	secret    []byte
}

func NewResumeURLSigner(publicURL, secret string) (*ResumeURLSigner, error) {
	if secret == "" {
		return nil, fmt.Errorf("resume signing secret is required")
	}

	return &ResumeURLSigner{
		publicURL: strings.TrimRight(publicURL, "/"),
		secret:    []byte(secret),
	}, nil
}

func (s *ResumeURLSigner) SignResumeURL(ctx context.Context, params domain.SignResumeURLParams) (string, error) {
	claims := resumeTokenClaims{
		ExecutionID:  params.Claims.ExecutionID,
		NodeID:       params.Claims.NodeID,
		ResponseMode: string(params.Claims.ResponseMode),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}

	if params.ExpiresAt != nil {
		claims.ExpiresAt = jwt.NewNumericDate(*params.ExpiresAt)
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign resume token: %w", err)
	}

	return s.publicURL + "/callbacks/" + token, nil
}

func (s *ResumeURLSigner) VerifyResumeToken(ctx context.Context, token string) (domain.ResumeClaims, error) {
	claims := resumeTokenClaims{}

	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}

		return s.secret, nil
	})
	if err != nil {
		return domain.ResumeClaims{}, fmt.Errorf("invalid resume token: %w", err)
	}

	if !parsed.Valid {
		return domain.ResumeClaims{}, fmt.Errorf("invalid resume token")
	}

	return domain.ResumeClaims{
		ExecutionID:  claims.ExecutionID,
		NodeID:       claims.NodeID,
		ResponseMode: domain.ResponseMode(claims.ResponseMode),
	}, nil
}
