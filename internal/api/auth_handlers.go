package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/arohamusic/encore-server/internal/service"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "Operator login",
		Description: "Authenticates the operator and returns a console token",
		Tags:        []string{"Authentication"},
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID: "verifyToken",
		Method:      http.MethodGet,
		Path:        "/api/v1/auth/verify",
		Summary:     "Verify token",
		Description: "Checks whether the presented console token is still valid",
		Tags:        []string{"Authentication"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleVerifyToken)
}

// === DTOs ===

// LoginInput wraps the login request for Huma.
type LoginInput struct {
	Body service.LoginRequest
}

// LoginOutput wraps the login response for Huma.
type LoginOutput struct {
	Body service.LoginResponse
}

// VerifyTokenInput contains parameters for token verification.
type VerifyTokenInput struct {
	Authorization string `header:"Authorization"`
}

// VerifyTokenResponse contains the verified operator identity.
type VerifyTokenResponse struct {
	Username string `json:"username" doc:"Operator username"`
}

// VerifyTokenOutput wraps the verification response for Huma.
type VerifyTokenOutput struct {
	Body VerifyTokenResponse
}

// === Handlers ===

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	resp, err := s.services.Auth.Login(ctx, input.Body)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{Body: *resp}, nil
}

func (s *Server) handleVerifyToken(_ context.Context, input *VerifyTokenInput) (*VerifyTokenOutput, error) {
	username, err := s.authenticateOperator(input.Authorization)
	if err != nil {
		return nil, err
	}

	return &VerifyTokenOutput{
		Body: VerifyTokenResponse{Username: username},
	}, nil
}
