package server

import (
	"context"

	"connectrpc.com/connect"
)

// Validator is implemented by request messages that can check themselves.
type Validator interface {
	Validate() error
}

// ValidationInterceptor rejects requests whose Validate method fails.
func ValidationInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if msg, ok := req.Any().(Validator); ok {
				if err := msg.Validate(); err != nil {
					return nil, connect.NewError(connect.CodeInvalidArgument, err)
				}
			}
			return next(ctx, req)
		}
	}
}
