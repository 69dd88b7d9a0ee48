package handler

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

type HealthHandler struct{}

type HealthResponse struct {
	Status string `json:"status"`
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/api/v1/health",
		Summary:     "Health check",
		Tags:        []string{"health"},
	}, h.HealthCheck)
}

func (h *HealthHandler) HealthCheck(ctx context.Context, input *struct{}) (*struct {
	Body HealthResponse
}, error) {
	return &struct {
		Body HealthResponse
	}{Body: HealthResponse{Status: "healthy"}}, nil
}
