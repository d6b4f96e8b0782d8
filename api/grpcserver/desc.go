package grpcserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name. Messages are
// protobuf well-known types, so no generated code is needed.
const ServiceName = "heaptree.v1.HeapSort"

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*HeapSortServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Insert", newInt64, func(s HeapSortServer, ctx context.Context, req proto.Message) (proto.Message, error) {
			return s.Insert(ctx, req.(*wrapperspb.Int64Value))
		}),
		unary("Len", newEmpty, func(s HeapSortServer, ctx context.Context, req proto.Message) (proto.Message, error) {
			return s.Len(ctx, req.(*emptypb.Empty))
		}),
		unary("Height", newEmpty, func(s HeapSortServer, ctx context.Context, req proto.Message) (proto.Message, error) {
			return s.Height(ctx, req.(*emptypb.Empty))
		}),
		unary("Balance", newEmpty, func(s HeapSortServer, ctx context.Context, req proto.Message) (proto.Message, error) {
			return s.Balance(ctx, req.(*emptypb.Empty))
		}),
		unary("RotateLeft", newInt64, func(s HeapSortServer, ctx context.Context, req proto.Message) (proto.Message, error) {
			return s.RotateLeft(ctx, req.(*wrapperspb.Int64Value))
		}),
		unary("RotateRight", newInt64, func(s HeapSortServer, ctx context.Context, req proto.Message) (proto.Message, error) {
			return s.RotateRight(ctx, req.(*wrapperspb.Int64Value))
		}),
		unary("Reset", newEmpty, func(s HeapSortServer, ctx context.Context, req proto.Message) (proto.Message, error) {
			return s.Reset(ctx, req.(*emptypb.Empty))
		}),
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Drain",
			ServerStreams: true,
			Handler: func(srv any, stream grpc.ServerStream) error {
				req := new(emptypb.Empty)
				if err := stream.RecvMsg(req); err != nil {
					return err
				}
				return srv.(HeapSortServer).Drain(req, stream)
			},
		},
	},
}

func newInt64() proto.Message { return new(wrapperspb.Int64Value) }
func newEmpty() proto.Message { return new(emptypb.Empty) }

type unaryCall func(HeapSortServer, context.Context, proto.Message) (proto.Message, error)

func unary(name string, newReq func() proto.Message, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(
			srv any,
			ctx context.Context,
			dec func(any) error,
			interceptor grpc.UnaryServerInterceptor,
		) (any, error) {
			req := newReq()
			if err := dec(req); err != nil {
				return nil, err
			}
			s := srv.(HeapSortServer)
			if interceptor == nil {
				return call(s, ctx, req)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
			return interceptor(ctx, req, info, func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(proto.Message))
			})
		},
	}
}
