package grpcserver

import (
	"context"
	"errors"
	"io"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Client is a typed caller for ServiceName.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) Insert(ctx context.Context, key int64) error {
	return c.cc.Invoke(ctx, fullMethod("Insert"), wrapperspb.Int64(key), new(emptypb.Empty))
}

// Drain collects the streamed values in order.
func (c *Client) Drain(ctx context.Context) ([]int64, error) {
	stream, err := c.cc.NewStream(ctx, &serviceDesc.Streams[0], fullMethod("Drain"))
	if err != nil {
		return nil, err
	}
	if err := stream.SendMsg(&emptypb.Empty{}); err != nil {
		return nil, err
	}
	if err := stream.CloseSend(); err != nil {
		return nil, err
	}

	var out []int64
	for {
		m := new(wrapperspb.Int64Value)
		err := stream.RecvMsg(m)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, m.GetValue())
	}
}

func (c *Client) Len(ctx context.Context) (int64, error)     { return c.query(ctx, "Len") }
func (c *Client) Height(ctx context.Context) (int64, error)  { return c.query(ctx, "Height") }
func (c *Client) Balance(ctx context.Context) (int64, error) { return c.query(ctx, "Balance") }

func (c *Client) RotateLeft(ctx context.Context, key int64) error {
	return c.cc.Invoke(ctx, fullMethod("RotateLeft"), wrapperspb.Int64(key), new(emptypb.Empty))
}

func (c *Client) RotateRight(ctx context.Context, key int64) error {
	return c.cc.Invoke(ctx, fullMethod("RotateRight"), wrapperspb.Int64(key), new(emptypb.Empty))
}

func (c *Client) Reset(ctx context.Context) error {
	return c.cc.Invoke(ctx, fullMethod("Reset"), &emptypb.Empty{}, new(emptypb.Empty))
}

func (c *Client) query(ctx context.Context, method string) (int64, error) {
	out := new(wrapperspb.Int64Value)
	if err := c.cc.Invoke(ctx, fullMethod(method), &emptypb.Empty{}, out); err != nil {
		return 0, err
	}
	return out.GetValue(), nil
}
