package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// MaintenanceServiceClient calls the maintenance service.
type MaintenanceServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewMaintenanceServiceClient creates a client over cc.
func NewMaintenanceServiceClient(cc grpc.ClientConnInterface) *MaintenanceServiceClient {
	return &MaintenanceServiceClient{cc: cc}
}

func (c *MaintenanceServiceClient) Backup(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodBackup, in, opts...)
}

func (c *MaintenanceServiceClient) ListSubmissions(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodListSubmissions, in, opts...)
}

func (c *MaintenanceServiceClient) Regenerate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodRegenerate, in, opts...)
}

func (c *MaintenanceServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if in == nil {
		in = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
