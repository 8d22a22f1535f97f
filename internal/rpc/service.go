// Package rpc wires the session registry to the VisionService gRPC
// surface described in vision_service.h/.cpp: StartStream, StopStream,
// GetStreamStatus, GetHealth and the bidirectional ProcessFrames stream.
package rpc

import (
	"context"
	"log/slog"

	"github.com/khaledhikmat/visiongrid/internal/capture"
	"github.com/khaledhikmat/visiongrid/internal/config"
	"github.com/khaledhikmat/visiongrid/internal/frame"
	"github.com/khaledhikmat/visiongrid/internal/lgr"
	"github.com/khaledhikmat/visiongrid/internal/metrics"
	"github.com/khaledhikmat/visiongrid/internal/registry"
	"github.com/khaledhikmat/visiongrid/internal/rpc/visionpb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Service implements visionpb.VisionServiceServer over a session registry.
type Service struct {
	visionpb.UnimplementedVisionServiceServer

	reg       *registry.Registry
	cfgSvc    config.IService
	startTime int64
}

// NewService constructs a Service backed by reg.
func NewService(reg *registry.Registry, cfgSvc config.IService) *Service {
	lgr.Logger.Info("VisionService initialized")
	return &Service{reg: reg, cfgSvc: cfgSvc}
}

func (s *Service) StartStream(ctx context.Context, req *visionpb.StreamRequest) (*visionpb.StreamResponse, error) {
	lgr.FromContext(ctx).Info("StartStream called", slog.String("camera_id", req.GetCameraId()))

	var cfg *capture.Config
	if c := req.GetConfig(); c != nil {
		dc := s.cfgSvc.GetDefaultCameraConfig()
		dc.Width = int(c.GetWidth())
		dc.Height = int(c.GetHeight())
		dc.FPS = int(c.GetFps())
		if c.GetFormat() != "" {
			dc.Format = c.GetFormat()
		}
		cfg = &dc
	}

	state, err := s.reg.StartStream(ctx, req.GetCameraId(), req.GetCameraUrl(), cfg)
	if err != nil {
		if _, ok := err.(*registry.ValidationError); ok {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		return &visionpb.StreamResponse{Status: registry.StatusError, Message: err.Error()}, nil
	}

	return &visionpb.StreamResponse{
		Status:   registry.StatusSuccess,
		Message:  "stream started successfully",
		StreamId: registry.GenerateStreamID(state.CameraID),
	}, nil
}

func (s *Service) StopStream(ctx context.Context, req *visionpb.StopRequest) (*visionpb.StopResponse, error) {
	lgr.FromContext(ctx).Info("StopStream called", slog.String("camera_id", req.GetCameraId()))

	if err := s.reg.StopStream(ctx, req.GetCameraId()); err != nil {
		if _, ok := err.(*registry.ValidationError); ok {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		return &visionpb.StopResponse{Status: registry.StatusError, Message: err.Error()}, nil
	}

	return &visionpb.StopResponse{Status: registry.StatusSuccess, Message: "stream stopped successfully"}, nil
}

func (s *Service) GetStreamStatus(ctx context.Context, req *visionpb.StatusRequest) (*visionpb.StatusResponse, error) {
	snap, err := s.reg.GetStreamStatus(req.GetCameraId())
	if err != nil {
		if _, ok := err.(*registry.ValidationError); ok {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &visionpb.StatusResponse{
		CameraId: snap.CameraID,
		Status:   snap.Status,
		Message:  snap.Message,
		Stats: &visionpb.StreamStats{
			FramesProcessed:    snap.FramesProcessed,
			DetectionsCount:    snap.DetectionsCount,
			FpsActual:          snap.FPSActual,
			UptimeSeconds:      snap.UptimeSeconds,
			LastFrameTimestamp: snap.LastFrameTimestamp,
		},
	}, nil
}

func (s *Service) GetHealth(ctx context.Context, req *visionpb.HealthRequest) (*visionpb.HealthResponse, error) {
	snap := s.reg.GetHealth(s.cfgSvc.GetServiceVersion())
	return &visionpb.HealthResponse{
		Status:        snap.Status,
		Message:       snap.Message,
		ActiveStreams: int32(snap.ActiveStreams),
		UptimeSeconds: snap.UptimeSeconds,
		Version:       snap.Version,
	}, nil
}

// ProcessFrames routes each inbound FrameRequest through the named
// stream's own frame processor when one is active, falling back to the
// original's simulated processing statistics otherwise.
func (s *Service) ProcessFrames(stream visionpb.VisionService_ProcessFramesServer) error {
	ctx := stream.Context()
	lgr.FromContext(ctx).Info("ProcessFrames stream started")

	for {
		req, err := stream.Recv()
		if err != nil {
			lgr.FromContext(ctx).Info("ProcessFrames stream ended")
			return nil
		}

		resp := &visionpb.FrameResponse{
			CameraId:  req.GetCameraId(),
			Timestamp: req.GetTimestamp(),
		}

		if st, ok := s.reg.StreamForFrames(req.GetCameraId()); ok {
			cfg := st.Engine.Config()
			f := frame.CreateTestFrame(cfg.Width, cfg.Height, cfg.Format)
			result := st.Processor.ProcessFrame(f)
			resp.ProcessingStats = &visionpb.ProcessingStats{
				ProcessingTimeMs: result.ProcessingTimeMs,
				DetectionsCount:  int64(len(result.Detections)),
				CpuUsage:         15.5,
				MemoryUsageMb:    128,
			}
			metrics.Instance().IncrementFramesProcessed()
			for i := 0; i < len(result.Detections); i++ {
				metrics.Instance().IncrementDetections()
			}
			metrics.Instance().RecordProcessingTime(result.ProcessingTimeMs)
		} else {
			resp.ProcessingStats = &visionpb.ProcessingStats{
				ProcessingTimeMs: 10,
				DetectionsCount:  0,
				CpuUsage:         15.5,
				MemoryUsageMb:    128,
			}
			metrics.Instance().IncrementFramesProcessed()
			metrics.Instance().RecordProcessingTime(10)
		}

		if err := stream.Send(resp); err != nil {
			lgr.FromContext(ctx).Error("failed to write frame response", slog.Any("error", lgr.Wrap(err)))
			return err
		}
	}
}
