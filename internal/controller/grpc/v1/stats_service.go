package grpcv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	StatsServiceName   = "logstat.v1.StatsService"
	ParseLogFullMethod = "/" + StatsServiceName + "/ParseLog"
)

// StatsServiceServer takes raw log text and answers with the statistics
// record in its JSON shape. Both messages are well-known protobuf types.
type StatsServiceServer interface {
	ParseLog(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
}

func RegisterStatsServiceServer(s grpc.ServiceRegistrar, srv StatsServiceServer) {
	s.RegisterService(&StatsServiceDesc, srv)
}

var StatsServiceDesc = grpc.ServiceDesc{
	ServiceName: StatsServiceName,
	HandlerType: (*StatsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ParseLog",
			Handler:    parseLogHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "logstat/v1/stats.proto",
}

func parseLogHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StatsServiceServer).ParseLog(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ParseLogFullMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(StatsServiceServer).ParseLog(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

type StatsServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewStatsServiceClient(cc grpc.ClientConnInterface) *StatsServiceClient {
	return &StatsServiceClient{cc: cc}
}

func (c *StatsServiceClient) ParseLog(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ParseLogFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
