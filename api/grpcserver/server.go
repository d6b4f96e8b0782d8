package grpcserver

import (
	"context"
	"errors"

	"github.com/datatrails/go-datatrails-common/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"heaptree/domain/heaptree"
	"heaptree/infra/memory"
	"heaptree/service"
)

// HeapSortServer is the handler contract behind ServiceName.
type HeapSortServer interface {
	Insert(context.Context, *wrapperspb.Int64Value) (*emptypb.Empty, error)
	Drain(*emptypb.Empty, grpc.ServerStream) error
	Len(context.Context, *emptypb.Empty) (*wrapperspb.Int64Value, error)
	Height(context.Context, *emptypb.Empty) (*wrapperspb.Int64Value, error)
	Balance(context.Context, *emptypb.Empty) (*wrapperspb.Int64Value, error)
	RotateLeft(context.Context, *wrapperspb.Int64Value) (*emptypb.Empty, error)
	RotateRight(context.Context, *wrapperspb.Int64Value) (*emptypb.Empty, error)
	Reset(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
}

// Server adapts SortService to gRPC.
type Server struct {
	svc *service.SortService
	log logger.Logger
}

func NewServer(svc *service.SortService, log logger.Logger) *Server {
	return &Server{svc: svc, log: log}
}

// Register attaches s to a grpc.Server.
func Register(g *grpc.Server, s HeapSortServer) {
	g.RegisterService(&serviceDesc, s)
}

// -------------------- Commands --------------------

func (s *Server) Insert(
	ctx context.Context,
	req *wrapperspb.Int64Value,
) (*emptypb.Empty, error) {
	if err := s.svc.Insert(req.GetValue()); err != nil {
		return nil, toStatus(err)
	}
	s.log.Debugf("[gRPC] Insert key=%d", req.GetValue())
	return &emptypb.Empty{}, nil
}

func (s *Server) Drain(_ *emptypb.Empty, stream grpc.ServerStream) error {
	res, err := s.svc.Drain(stream.Context(), func(v int64) error {
		return stream.SendMsg(wrapperspb.Int64(v))
	})
	s.log.Debugf("[gRPC] Drain run=%s emitted=%d", res.RunID, res.Count)
	if err != nil {
		return toStatus(err)
	}
	return nil
}

func (s *Server) RotateLeft(
	ctx context.Context,
	req *wrapperspb.Int64Value,
) (*emptypb.Empty, error) {
	return s.rotate(req.GetValue(), service.Left)
}

func (s *Server) RotateRight(
	ctx context.Context,
	req *wrapperspb.Int64Value,
) (*emptypb.Empty, error) {
	return s.rotate(req.GetValue(), service.Right)
}

func (s *Server) Reset(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	s.svc.Reset()
	s.log.Debugf("[gRPC] Reset")
	return &emptypb.Empty{}, nil
}

// -------------------- Queries --------------------

func (s *Server) Len(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.Int64Value, error) {
	return wrapperspb.Int64(int64(s.svc.Stats().Len)), nil
}

func (s *Server) Height(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.Int64Value, error) {
	return wrapperspb.Int64(int64(s.svc.Stats().Height)), nil
}

func (s *Server) Balance(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.Int64Value, error) {
	return wrapperspb.Int64(int64(s.svc.Stats().Balance)), nil
}

// -------------------- Converters --------------------

func (s *Server) rotate(key int64, dir service.Direction) (*emptypb.Empty, error) {
	if err := s.svc.Rotate(key, dir); err != nil {
		return nil, toStatus(err)
	}
	s.log.Debugf("[gRPC] Rotate dir=%s key=%d", dir, key)
	return &emptypb.Empty{}, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, heaptree.ErrAllocation), errors.Is(err, memory.ErrExhausted):
		return status.Error(codes.ResourceExhausted, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, heaptree.ErrNoChild),
		errors.Is(err, heaptree.ErrForeignNode),
		errors.Is(err, heaptree.ErrEmpty):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		if _, ok := status.FromError(err); ok {
			return err
		}
		return status.Error(codes.Internal, err.Error())
	}
}
