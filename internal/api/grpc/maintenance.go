// Package grpc exposes the maintenance operations over gRPC. Messages are
// the well-known structpb types, so no generated code is needed.
package grpc

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	apperrors "github.com/avaliafor/avaliafor/internal/errors"
	"github.com/avaliafor/avaliafor/internal/logger"
	"github.com/avaliafor/avaliafor/internal/maintenance"
	"github.com/avaliafor/avaliafor/pkg/types"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "avaliafor.v1.MaintenanceService"

// Full method names.
const (
	MethodBackup          = "/" + ServiceName + "/Backup"
	MethodListSubmissions = "/" + ServiceName + "/ListSubmissions"
	MethodRegenerate      = "/" + ServiceName + "/Regenerate"
)

// MaintenanceServiceServer is the server API of the maintenance service.
type MaintenanceServiceServer interface {
	Backup(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListSubmissions(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Regenerate(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc describes the maintenance service for grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MaintenanceServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Backup", Handler: unaryHandler(MethodBackup, MaintenanceServiceServer.Backup)},
		{MethodName: "ListSubmissions", Handler: unaryHandler(MethodListSubmissions, MaintenanceServiceServer.ListSubmissions)},
		{MethodName: "Regenerate", Handler: unaryHandler(MethodRegenerate, MaintenanceServiceServer.Regenerate)},
	},
	Metadata: "avaliafor/v1/maintenance.proto",
}

// RegisterMaintenanceServiceServer registers srv on s.
func RegisterMaintenanceServiceServer(s grpc.ServiceRegistrar, srv MaintenanceServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

type unaryMethod func(MaintenanceServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(MaintenanceServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(MaintenanceServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// MaintenanceServer implements MaintenanceServiceServer over a
// maintenance.Service.
type MaintenanceServer struct {
	svc *maintenance.Service
	log *logger.Logger
}

// NewMaintenanceServer creates a gRPC maintenance server.
func NewMaintenanceServer(svc *maintenance.Service, log *logger.Logger) *MaintenanceServer {
	return &MaintenanceServer{svc: svc, log: log}
}

// Backup returns the database backup. Fields: compressed (bool).
// Response: name, bytes, data (base64).
func (s *MaintenanceServer) Backup(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	compressed := req.GetFields()["compressed"].GetBoolValue()
	var buf bytes.Buffer
	name, err := s.svc.BackupTo(ctx, &buf, compressed)
	if err != nil {
		return nil, toStatus(err)
	}
	s.log.Info("backup served over grpc", "file", name, "bytes", buf.Len(), "request_id", extractRequestID(ctx))
	return structpb.NewStruct(map[string]interface{}{
		"name":  name,
		"bytes": float64(buf.Len()),
		"data":  base64.StdEncoding.EncodeToString(buf.Bytes()),
	})
}

// ListSubmissions returns the control view. Fields: origin (optional).
func (s *MaintenanceServer) ListSubmissions(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	origin, err := optionalOrigin(req.GetFields()["origin"].GetStringValue())
	if err != nil {
		return nil, err
	}
	rows, err := s.svc.Control(ctx, origin)
	if err != nil {
		return nil, toStatus(err)
	}
	list, err := toValues(rows)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode submissions: %v", err)
	}
	return structpb.NewStruct(map[string]interface{}{"submissions": list})
}

// Regenerate rebuilds one artifact. Fields: supplier, unit, period, origin.
// Response: name, uploaded, warning, data (base64).
func (s *MaintenanceServer) Regenerate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f := req.GetFields()
	origin, err := optionalOrigin(f["origin"].GetStringValue())
	if err != nil {
		return nil, err
	}
	if origin == nil {
		return nil, status.Error(codes.InvalidArgument, "origin is required")
	}
	supplier, unit, period := f["supplier"].GetStringValue(), f["unit"].GetStringValue(), f["period"].GetStringValue()
	if supplier == "" || unit == "" || period == "" {
		return nil, status.Error(codes.InvalidArgument, "supplier, unit and period are required")
	}
	art, err := s.svc.RegenerateArtifact(ctx, supplier, unit, period, *origin)
	if err != nil {
		return nil, toStatus(err)
	}
	return structpb.NewStruct(map[string]interface{}{
		"name":     art.Name,
		"uploaded": art.Uploaded,
		"warning":  art.Warning,
		"data":     base64.StdEncoding.EncodeToString(art.Data),
	})
}

func optionalOrigin(s string) (*types.Origin, error) {
	if s == "" {
		return nil, nil
	}
	o, err := types.ParseOrigin(s)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return &o, nil
}

// toValues converts v to plain JSON values accepted by structpb.
func toValues(v interface{}) ([]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out []interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []interface{}{}
	}
	return out, nil
}

// toStatus maps an application error to a gRPC status.
func toStatus(err error) error {
	var code codes.Code
	switch apperrors.GetCategory(err) {
	case apperrors.ErrCategoryValidation:
		code = codes.InvalidArgument
	case apperrors.ErrCategoryNotFound:
		code = codes.NotFound
	case apperrors.ErrCategoryConnectivity:
		code = codes.Unavailable
	case apperrors.ErrCategoryConfiguration:
		code = codes.FailedPrecondition
	case apperrors.ErrCategoryPartialFailure:
		code = codes.Aborted
	default:
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			code = codes.DeadlineExceeded
		case errors.Is(err, context.Canceled):
			code = codes.Canceled
		default:
			return status.Error(codes.Internal, "internal error")
		}
	}
	return status.Error(code, err.Error())
}

// extractRequestID extracts or generates a request ID from the gRPC context.
func extractRequestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ids := md.Get("x-request-id"); len(ids) > 0 {
			return ids[0]
		}
	}
	return uuid.New().String()
}
