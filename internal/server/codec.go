package server

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// JSONCodec serializes plain Go messages as JSON. It registers under the
// name "json", replacing connect's protobuf-only JSON codec.
type JSONCodec struct{}

var _ connect.Codec = JSONCodec{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (JSONCodec) Unmarshal(data []byte, msg any) error {
	return json.Unmarshal(data, msg)
}

// MaxRequestBytes caps the size of a request message.
const MaxRequestBytes = 1 << 20

// HandlerOptions returns the options every service handler is built with.
func HandlerOptions(interceptors ...connect.Interceptor) []connect.HandlerOption {
	return []connect.HandlerOption{
		connect.WithCodec(JSONCodec{}),
		connect.WithReadMaxBytes(MaxRequestBytes),
		connect.WithInterceptors(interceptors...),
	}
}

// ClientOptions returns the options a client of these services needs.
func ClientOptions() []connect.ClientOption {
	return []connect.ClientOption{connect.WithCodec(JSONCodec{})}
}
