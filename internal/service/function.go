package service

import (
	"context"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/sync/errgroup"

	"github.com/atlekbai/function_registry/internal/analyzer"
	"github.com/atlekbai/function_registry/internal/db"
	"github.com/atlekbai/function_registry/internal/expr"
	"github.com/atlekbai/function_registry/internal/function"
	"github.com/atlekbai/function_registry/internal/logger"
	"github.com/atlekbai/function_registry/internal/schema"
	"github.com/atlekbai/function_registry/internal/server"
	"github.com/atlekbai/function_registry/internal/session"
	"github.com/atlekbai/function_registry/internal/sql"
	"github.com/atlekbai/function_registry/internal/translate"
)

const FunctionServiceName = "fnreg.v1.FunctionService"

const (
	AnalyzeProcedure       = "/" + FunctionServiceName + "/Analyze"
	AnalyzeBatchProcedure  = "/" + FunctionServiceName + "/AnalyzeBatch"
	ListFunctionsProcedure = "/" + FunctionServiceName + "/ListFunctions"
	EvaluateProcedure      = "/" + FunctionServiceName + "/Evaluate"
)

// batchConcurrency bounds the goroutines one AnalyzeBatch call may use.
const batchConcurrency = 8

// ErrNoDatabase is returned by Evaluate when the server runs without a database.
var ErrNoDatabase = errors.New("evaluation requires a database connection")

type FunctionService struct {
	registry  *function.Registry
	session   *session.Configuration
	catalog   *schema.Cache
	evaluator *db.Evaluator
}

// NewFunctionService creates the service. catalog and evaluator may be nil
// when no database is configured: column references are then unchecked and
// Evaluate reports Unavailable.
func NewFunctionService(registry *function.Registry, cfg *session.Configuration, catalog *schema.Cache, evaluator *db.Evaluator) *FunctionService {
	if cfg == nil {
		cfg = session.Default()
	}
	return &FunctionService{registry: registry, session: cfg, catalog: catalog, evaluator: evaluator}
}

func (s *FunctionService) RegisterHandler(interceptors ...connect.Interceptor) (string, http.Handler) {
	opts := server.HandlerOptions(interceptors...)
	mux := http.NewServeMux()
	mux.Handle(AnalyzeProcedure, connect.NewUnaryHandler(AnalyzeProcedure, s.Analyze, opts...))
	mux.Handle(AnalyzeBatchProcedure, connect.NewUnaryHandler(AnalyzeBatchProcedure, s.AnalyzeBatch, opts...))
	mux.Handle(ListFunctionsProcedure, connect.NewUnaryHandler(ListFunctionsProcedure, s.ListFunctions, opts...))
	mux.Handle(EvaluateProcedure, connect.NewUnaryHandler(EvaluateProcedure, s.Evaluate, opts...))
	return "/" + FunctionServiceName + "/", mux
}

func (s *FunctionService) Analyze(ctx context.Context, req *connect.Request[AnalyzeRequest]) (*connect.Response[AnalyzeResponse], error) {
	msg := req.Msg
	a, table, err := s.analyzerFor(msg.Table, msg.TimeZone)
	if err != nil {
		return nil, err
	}
	resp, err := analyze(a, msg.Expression, table)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	logger.FromContext(ctx).Debug().Str("expression", msg.Expression).Str("resolved", resp.Resolved).Msg("analyzed")
	return connect.NewResponse(resp), nil
}

// AnalyzeBatch analyzes every expression concurrently against the same
// registry. A rejected expression does not fail the batch.
func (s *FunctionService) AnalyzeBatch(ctx context.Context, req *connect.Request[AnalyzeBatchRequest]) (*connect.Response[AnalyzeBatchResponse], error) {
	msg := req.Msg
	a, table, err := s.analyzerFor(msg.Table, msg.TimeZone)
	if err != nil {
		return nil, err
	}

	results := make([]BatchResult, len(msg.Expressions))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i, input := range msg.Expressions {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := BatchResult{Expression: input}
			resp, err := analyze(a, input, table)
			if err != nil {
				if errors.HasAssertionFailure(err) {
					return err
				}
				res.Error = err.Error()
			} else {
				res.AnalyzeResponse = resp
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(&AnalyzeBatchResponse{Results: results}), nil
}

func (s *FunctionService) ListFunctions(ctx context.Context, req *connect.Request[ListFunctionsRequest]) (*connect.Response[ListFunctionsResponse], error) {
	defs, err := s.registry.List(req.Msg.Pattern)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	out := make([]FunctionInfo, len(defs))
	for i, d := range defs {
		out[i] = Describe(d)
	}
	return connect.NewResponse(&ListFunctionsResponse{Functions: out}), nil
}

func (s *FunctionService) Evaluate(ctx context.Context, req *connect.Request[EvaluateRequest]) (*connect.Response[EvaluateResponse], error) {
	if s.evaluator == nil {
		return nil, connect.NewError(connect.CodeUnavailable, ErrNoDatabase)
	}
	msg := req.Msg
	a, table, err := s.analyzerFor(msg.Table, msg.TimeZone)
	if err != nil {
		return nil, err
	}
	node, err := a.Parse(msg.Expression)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	res, err := s.evaluator.Evaluate(ctx, node, table)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(&EvaluateResponse{SQL: res.SQL, Args: res.Args, Values: res.Values}), nil
}

// Describe converts a definition to its wire form.
func Describe(d *function.Definition) FunctionInfo {
	return FunctionInfo{
		Name:    d.Name(),
		Kind:    d.Kind().String(),
		Shape:   d.Shape().String(),
		Aliases: d.Aliases(),
	}
}

// analyzerFor builds the analyzer for one request and returns the table the
// translated statement selects from.
func (s *FunctionService) analyzerFor(table, zone string) (*analyzer.Analyzer, string, error) {
	cfg := s.session
	if zone != "" {
		loc, err := time.LoadLocation(zone)
		if err != nil {
			return nil, "", connect.NewError(connect.CodeInvalidArgument, errors.Wrapf(err, "time_zone %q", zone))
		}
		cfg = cfg.WithZone(loc)
	}
	a := analyzer.New(s.registry, cfg)
	if table == "" || s.catalog == nil {
		return a, table, nil
	}
	t := s.catalog.Get(table)
	if t == nil {
		return nil, "", connect.NewError(connect.CodeInvalidArgument, errors.Newf("unknown table %q", table))
	}
	return a.WithScope(t), t.QualifiedName(), nil
}

func analyze(a *analyzer.Analyzer, input, table string) (*AnalyzeResponse, error) {
	node, err := a.Parse(input)
	if err != nil {
		return nil, err
	}
	query, args, err := translate.Select(node, table)
	if err != nil {
		return nil, err
	}
	return &AnalyzeResponse{
		Resolved:  node.String(),
		Functions: calls(node),
		SQL:       query,
		Args:      args,
	}, nil
}

func calls(node expr.Expression) []Call {
	out := []Call{}
	expr.Walk(node, func(n expr.Expression) bool {
		if fn, ok := n.(expr.Function); ok {
			loc := fn.Location()
			out = append(out, Call{Name: fn.FunctionName(), Line: loc.Line, Column: loc.Column})
		}
		return true
	})
	return out
}

// toConnectError maps analysis and evaluation failures to RPC codes.
func toConnectError(ctx context.Context, err error) error {
	var (
		parseErr  *sql.ParseError
		verifyErr *analyzer.VerificationError
		resolvErr *function.ResolutionError
		pgErr     *pgconn.PgError
	)
	switch {
	case errors.HasAssertionFailure(err):
		logger.FromContext(ctx).Error().Err(err).Msg("internal error")
		return connect.NewError(connect.CodeInternal, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.As(err, &parseErr), errors.As(err, &verifyErr), errors.As(err, &resolvErr):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.As(err, &pgErr):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	default:
		logger.FromContext(ctx).Error().Err(err).Msg("unexpected error")
		return connect.NewError(connect.CodeInternal, err)
	}
}
