// Package cli implements the fnreg command line.
package cli

import (
	"context"
	"io"
	"net/http"
	"os"

	"connectrpc.com/connect"
	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/atlekbai/function_registry/internal/config"
	"github.com/atlekbai/function_registry/internal/function/builtin"
	"github.com/atlekbai/function_registry/internal/logger"
	"github.com/atlekbai/function_registry/internal/service"
)

const keyServer = "server"

// backend is what the commands need from a function service, local or remote.
type backend interface {
	Analyze(ctx context.Context, req *service.AnalyzeRequest) (*service.AnalyzeResponse, error)
	ListFunctions(ctx context.Context, req *service.ListFunctionsRequest) (*service.ListFunctionsResponse, error)
}

// local calls an in-process FunctionService.
type local struct {
	svc *service.FunctionService
}

func (l local) Analyze(ctx context.Context, req *service.AnalyzeRequest) (*service.AnalyzeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	resp, err := l.svc.Analyze(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

func (l local) ListFunctions(ctx context.Context, req *service.ListFunctionsRequest) (*service.ListFunctionsResponse, error) {
	resp, err := l.svc.ListFunctions(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

// NewRootCmd builds the fnreg command tree around its own viper instance.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	config.Init(v)

	root := &cobra.Command{
		Use:           "fnreg",
		Short:         "Resolve, translate and evaluate SQL function calls",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.CliLogger()
			return logger.Set(v.GetString(config.KeyLogLevel))
		},
	}
	root.PersistentFlags().String(config.KeyLogLevel, "info", "set log-level: error, warn, info, debug, trace")
	root.PersistentFlags().String(keyServer, "", "address of a running fnreg server, e.g. http://localhost:8080")
	_ = v.BindPFlag(config.KeyLogLevel, root.PersistentFlags().Lookup(config.KeyLogLevel))
	_ = v.BindPFlag(keyServer, root.PersistentFlags().Lookup(keyServer))

	root.AddCommand(
		newFunctionsCmd(v),
		newAnalyzeCmd(v),
		newServeCmd(v),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute(ctx context.Context) {
	root := NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		root.PrintErrln(err)
		os.Exit(1)
	}
}

func newBackend(v *viper.Viper) (backend, error) {
	if addr := v.GetString(keyServer); addr != "" {
		return service.NewFunctionServiceClient(http.DefaultClient, addr), nil
	}
	registry, err := builtin.Registry()
	if err != nil {
		return nil, err
	}
	cfg, err := config.FromViper(v)
	if err != nil {
		return nil, err
	}
	sess, err := cfg.Session()
	if err != nil {
		return nil, err
	}
	return local{svc: service.NewFunctionService(registry, sess, nil, nil)}, nil
}

func printJSON(out io.Writer, v any) error {
	f := prettyjson.NewFormatter()
	f.DisabledColor = !isTTY(out)
	data, err := f.Marshal(v)
	if err != nil {
		return err
	}
	_, err = out.Write(append(data, '\n'))
	return err
}

func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
