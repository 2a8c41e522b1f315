package service

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/atlekbai/function_registry/internal/server"
)

// FunctionServiceClient calls a remote FunctionService.
type FunctionServiceClient struct {
	analyze       *connect.Client[AnalyzeRequest, AnalyzeResponse]
	analyzeBatch  *connect.Client[AnalyzeBatchRequest, AnalyzeBatchResponse]
	listFunctions *connect.Client[ListFunctionsRequest, ListFunctionsResponse]
	evaluate      *connect.Client[EvaluateRequest, EvaluateResponse]
}

// NewFunctionServiceClient creates a client for the service at baseURL,
// e.g. http://localhost:8080.
func NewFunctionServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *FunctionServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append(server.ClientOptions(), opts...)
	return &FunctionServiceClient{
		analyze:       connect.NewClient[AnalyzeRequest, AnalyzeResponse](httpClient, baseURL+AnalyzeProcedure, opts...),
		analyzeBatch:  connect.NewClient[AnalyzeBatchRequest, AnalyzeBatchResponse](httpClient, baseURL+AnalyzeBatchProcedure, opts...),
		listFunctions: connect.NewClient[ListFunctionsRequest, ListFunctionsResponse](httpClient, baseURL+ListFunctionsProcedure, opts...),
		evaluate:      connect.NewClient[EvaluateRequest, EvaluateResponse](httpClient, baseURL+EvaluateProcedure, opts...),
	}
}

func (c *FunctionServiceClient) Analyze(ctx context.Context, req *AnalyzeRequest) (*AnalyzeResponse, error) {
	resp, err := c.analyze.CallUnary(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

func (c *FunctionServiceClient) AnalyzeBatch(ctx context.Context, req *AnalyzeBatchRequest) (*AnalyzeBatchResponse, error) {
	resp, err := c.analyzeBatch.CallUnary(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

func (c *FunctionServiceClient) ListFunctions(ctx context.Context, req *ListFunctionsRequest) (*ListFunctionsResponse, error) {
	resp, err := c.listFunctions.CallUnary(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

func (c *FunctionServiceClient) Evaluate(ctx context.Context, req *EvaluateRequest) (*EvaluateResponse, error) {
	resp, err := c.evaluate.CallUnary(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}
