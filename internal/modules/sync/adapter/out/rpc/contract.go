package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey        = "zazen"
	serviceName         = "zazen.sync.v1.MindfulSink"
	jsonCodecName       = "json"
	methodGetMetadata   = "/" + serviceName + "/GetMetadata"
	methodRecordSession = "/" + serviceName + "/RecordSession"
	methodDeleteSession = "/" + serviceName + "/DeleteSession"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "ZAZEN_SINK",
	MagicCookieValue: "zazen",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type RecordSessionRequest struct {
	SessionID string    `json:"session_id"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
}

type DeleteSessionRequest struct {
	SessionID string `json:"session_id"`
}

type MindfulSinkServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	RecordSession(ctx context.Context, in *RecordSessionRequest) (*Empty, error)
	DeleteSession(ctx context.Context, in *DeleteSessionRequest) (*Empty, error)
}

type MindfulSinkClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	RecordSession(ctx context.Context, in *RecordSessionRequest) error
	DeleteSession(ctx context.Context, in *DeleteSessionRequest) error
}

type mindfulSinkClient struct {
	conn *grpc.ClientConn
}

func NewMindfulSinkClient(conn *grpc.ClientConn) MindfulSinkClient {
	return &mindfulSinkClient{conn: conn}
}

func (c *mindfulSinkClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *mindfulSinkClient) RecordSession(ctx context.Context, in *RecordSessionRequest) error {
	return c.conn.Invoke(ctx, methodRecordSession, in, &Empty{}, grpc.CallContentSubtype(jsonCodecName))
}

func (c *mindfulSinkClient) DeleteSession(ctx context.Context, in *DeleteSessionRequest) error {
	return c.conn.Invoke(ctx, methodDeleteSession, in, &Empty{}, grpc.CallContentSubtype(jsonCodecName))
}

func RegisterMindfulSinkServer(server grpc.ServiceRegistrar, impl MindfulSinkServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*MindfulSinkServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetMetadata(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetMetadata}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetMetadata(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "RecordSession",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &RecordSessionRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.RecordSession(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodRecordSession}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*RecordSessionRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.RecordSession(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "DeleteSession",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &DeleteSessionRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.DeleteSession(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodDeleteSession}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*DeleteSessionRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.DeleteSession(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/sink-rpc-v1.proto",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl MindfulSinkServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterMindfulSinkServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewMindfulSinkClient(conn), nil
}

func PluginMap(impl MindfulSinkServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
