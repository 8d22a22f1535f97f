package visionpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// VisionServiceServer is the server API for VisionService, matching the
// method set protoc-gen-go-grpc would emit for the surveillance.vision
// package's VisionService.
type VisionServiceServer interface {
	StartStream(context.Context, *StreamRequest) (*StreamResponse, error)
	StopStream(context.Context, *StopRequest) (*StopResponse, error)
	GetStreamStatus(context.Context, *StatusRequest) (*StatusResponse, error)
	GetHealth(context.Context, *HealthRequest) (*HealthResponse, error)
	ProcessFrames(VisionService_ProcessFramesServer) error
}

// UnimplementedVisionServiceServer may be embedded to satisfy
// VisionServiceServer for forward compatibility with new methods.
type UnimplementedVisionServiceServer struct{}

func (UnimplementedVisionServiceServer) StartStream(context.Context, *StreamRequest) (*StreamResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method StartStream not implemented")
}

func (UnimplementedVisionServiceServer) StopStream(context.Context, *StopRequest) (*StopResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method StopStream not implemented")
}

func (UnimplementedVisionServiceServer) GetStreamStatus(context.Context, *StatusRequest) (*StatusResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetStreamStatus not implemented")
}

func (UnimplementedVisionServiceServer) GetHealth(context.Context, *HealthRequest) (*HealthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetHealth not implemented")
}

func (UnimplementedVisionServiceServer) ProcessFrames(VisionService_ProcessFramesServer) error {
	return status.Error(codes.Unimplemented, "method ProcessFrames not implemented")
}

// VisionService_ProcessFramesServer is the server-side stream handle for
// the bidirectional ProcessFrames RPC.
type VisionService_ProcessFramesServer interface {
	Send(*FrameResponse) error
	Recv() (*FrameRequest, error)
	grpc.ServerStream
}

type visionServiceProcessFramesServer struct {
	grpc.ServerStream
}

func (x *visionServiceProcessFramesServer) Send(m *FrameResponse) error {
	return x.ServerStream.SendMsg(m)
}

func (x *visionServiceProcessFramesServer) Recv() (*FrameRequest, error) {
	m := new(FrameRequest)
	if err := x.ServerStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func _VisionService_StartStream_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(StreamRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VisionServiceServer).StartStream(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ServiceName + "/StartStream"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(VisionServiceServer).StartStream(ctx, req.(*StreamRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VisionService_StopStream_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(StopRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VisionServiceServer).StopStream(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ServiceName + "/StopStream"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(VisionServiceServer).StopStream(ctx, req.(*StopRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VisionService_GetStreamStatus_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(StatusRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VisionServiceServer).GetStreamStatus(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ServiceName + "/GetStreamStatus"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(VisionServiceServer).GetStreamStatus(ctx, req.(*StatusRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VisionService_GetHealth_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(HealthRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VisionServiceServer).GetHealth(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ServiceName + "/GetHealth"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(VisionServiceServer).GetHealth(ctx, req.(*HealthRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VisionService_ProcessFrames_Handler(srv interface{}, stream grpc.ServerStream) error {
	return srv.(VisionServiceServer).ProcessFrames(&visionServiceProcessFramesServer{stream})
}

// ServiceName is the fully qualified RPC service name.
const ServiceName = "surveillance.vision.VisionService"

// ServiceDesc is the grpc.ServiceDesc for VisionService, the registration
// table a protoc-gen-go-grpc run would emit.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*VisionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "StartStream", Handler: _VisionService_StartStream_Handler},
		{MethodName: "StopStream", Handler: _VisionService_StopStream_Handler},
		{MethodName: "GetStreamStatus", Handler: _VisionService_GetStreamStatus_Handler},
		{MethodName: "GetHealth", Handler: _VisionService_GetHealth_Handler},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "ProcessFrames",
			Handler:       _VisionService_ProcessFrames_Handler,
			ServerStreams: true,
			ClientStreams: true,
		},
	},
	Metadata: "vision.proto",
}

// RegisterVisionServiceServer registers srv with s, matching the generated
// registration helper's signature.
func RegisterVisionServiceServer(s grpc.ServiceRegistrar, srv VisionServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}
