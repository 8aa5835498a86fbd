package domain

import (
	"context"
	"fmt"
)

type CreateIntegrationParams struct {
	CredentialID string
	WorkspaceID  string
}

type IntegrationCreator interface {
	CreateIntegration(ctx context.Context, p CreateIntegrationParams) (IntegrationExecutor, error)
}

type IntegrationExecutor interface {
	Execute(ctx context.Context, params IntegrationInput) (IntegrationOutput, error)
}

type IntegrationPeeker interface {
	Peek(ctx context.Context, params PeekParams) (PeekResult, error)
}

type IntegrationConnectionTester interface {
	TestConnection(ctx context.Context, params TestConnectionParams) (bool, error)
}

type TestConnectionParams struct {
	Credential Credential
}

type SelectIntegrationParams struct {
	IntegrationType IntegrationType
}

type IntegrationSelector interface {
	SelectCreator(ctx context.Context, params SelectIntegrationParams) (IntegrationCreator, error)
	RegisterCreator(integrationType IntegrationType, creator IntegrationCreator)
	SelectPeeker(ctx context.Context, params SelectIntegrationParams) (IntegrationPeeker, error)
	SelectWebhookHandler(ctx context.Context, params SelectIntegrationParams) (IntegrationWebhookHandler, error)
	RegisterWebhookHandler(integrationType IntegrationType, handler IntegrationWebhookHandler)
	SelectConnectionTester(ctx context.Context, params SelectIntegrationParams) (IntegrationConnectionTester, error)
	RegisterConnectionTester(integrationType IntegrationType, connectionTester IntegrationConnectionTester)
}

type integrationSelector struct {
	creatorsByType          map[IntegrationType]IntegrationCreator
	webhookHandlersByType   map[IntegrationType]IntegrationWebhookHandler
	connectionTestersByType map[IntegrationType]IntegrationConnectionTester
}

func NewIntegrationSelector() IntegrationSelector {
	return &integrationSelector{
		creatorsByType:          make(map[IntegrationType]IntegrationCreator),
		webhookHandlersByType:   make(map[IntegrationType]IntegrationWebhookHandler),
		connectionTestersByType: make(map[IntegrationType]IntegrationConnectionTester),
	}
}

func (s *integrationSelector) RegisterCreator(integrationType IntegrationType, creator IntegrationCreator) {
	s.creatorsByType[integrationType] = creator
}

func (s *integrationSelector) SelectCreator(ctx context.Context, params SelectIntegrationParams) (IntegrationCreator, error) {
	creator, ok := s.creatorsByType[params.IntegrationType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrIntegrationNotFound, params.IntegrationType)
	}

	return creator, nil
}

func (s *integrationSelector) SelectPeeker(ctx context.Context, params SelectIntegrationParams) (IntegrationPeeker, error) {
	creator, ok := s.creatorsByType[params.IntegrationType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrIntegrationNotFound, params.IntegrationType)
	}

	peeker, ok := creator.(IntegrationPeeker)
	if !ok {
		return nil, fmt.Errorf("integration %s is not peekable", params.IntegrationType)
	}

	return peeker, nil
}

func (s *integrationSelector) RegisterWebhookHandler(integrationType IntegrationType, handler IntegrationWebhookHandler) {
	s.webhookHandlersByType[integrationType] = handler
}

func (s *integrationSelector) SelectWebhookHandler(ctx context.Context, params SelectIntegrationParams) (IntegrationWebhookHandler, error) {
	handler, ok := s.webhookHandlersByType[params.IntegrationType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrIntegrationNotFound, params.IntegrationType)
	}

	return handler, nil
}

func (s *integrationSelector) RegisterConnectionTester(integrationType IntegrationType, connectionTester IntegrationConnectionTester) {
	s.connectionTestersByType[integrationType] = connectionTester
}

func (s *integrationSelector) SelectConnectionTester(ctx context.Context, params SelectIntegrationParams) (IntegrationConnectionTester, error) {
	connectionTester, ok := s.connectionTestersByType[params.IntegrationType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrIntegrationNotFound, params.IntegrationType)
	}

	return connectionTester, nil
}
