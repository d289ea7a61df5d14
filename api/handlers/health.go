package handlers

import (
	"context"
	"net/http"

	"digests-reader-api/api/dto/responses"

	"github.com/danielgtaylor/huma/v2"
)

// HealthOutput defines the output for the health check
type HealthOutput struct {
	Body responses.HealthResponse
}

// RegisterHealth registers GET /healthz
func RegisterHealth(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "healthz",
		Method:      http.MethodGet,
		Path:        "/healthz",
		Summary:     "Liveness check",
		Tags:        []string{"Health"},
	}, func(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
		return &HealthOutput{Body: responses.HealthResponse{Status: "ok"}}, nil
	})
}
