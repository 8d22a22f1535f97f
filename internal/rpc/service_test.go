package rpc

import (
	"context"
	"io"
	"testing"

	"github.com/khaledhikmat/visiongrid/internal/config"
	"github.com/khaledhikmat/visiongrid/internal/metrics"
	"github.com/khaledhikmat/visiongrid/internal/registry"
	"github.com/khaledhikmat/visiongrid/internal/rpc/visionpb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// fakeProcessFramesStream drives Service.ProcessFrames without a real
// transport: Recv plays back a fixed queue of requests, then returns
// io.EOF, and Send records each response.
type fakeProcessFramesStream struct {
	reqs []*visionpb.FrameRequest
	next int
	sent []*visionpb.FrameResponse
}

func (f *fakeProcessFramesStream) Send(m *visionpb.FrameResponse) error {
	f.sent = append(f.sent, m)
	return nil
}

func (f *fakeProcessFramesStream) Recv() (*visionpb.FrameRequest, error) {
	if f.next >= len(f.reqs) {
		return nil, io.EOF
	}
	req := f.reqs[f.next]
	f.next++
	return req, nil
}

func (f *fakeProcessFramesStream) SetHeader(metadata.MD) error  { return nil }
func (f *fakeProcessFramesStream) SendHeader(metadata.MD) error { return nil }
func (f *fakeProcessFramesStream) SetTrailer(metadata.MD)       {}
func (f *fakeProcessFramesStream) Context() context.Context     { return context.Background() }
func (f *fakeProcessFramesStream) SendMsg(m interface{}) error  { return nil }
func (f *fakeProcessFramesStream) RecvMsg(m interface{}) error  { return nil }

func newTestService() *Service {
	cfgSvc := config.NewHardCoded()
	cfg := cfgSvc.GetDefaultCameraConfig()
	cfg.ReconnectDelayMs = 1
	reg := registry.New(cfgSvc.GetMaxConcurrentStreams(), cfg)
	return NewService(reg, cfgSvc)
}

func TestStartStreamRejectsEmptyCameraID(t *testing.T) {
	svc := newTestService()
	_, err := svc.StartStream(context.Background(), &visionpb.StreamRequest{CameraUrl: "test://pattern"})
	if st, ok := status.FromError(err); !ok || st.Code() != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestStartStreamSuccess(t *testing.T) {
	svc := newTestService()
	resp, err := svc.StartStream(context.Background(), &visionpb.StreamRequest{
		CameraId:  "cam1",
		CameraUrl: "test://pattern",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != registry.StatusSuccess {
		t.Fatalf("expected success status, got %q: %s", resp.Status, resp.Message)
	}
	if resp.StreamId == "" {
		t.Fatal("expected a non-empty stream id")
	}

	defer svc.StopStream(context.Background(), &visionpb.StopRequest{CameraId: "cam1"})
}

func TestStartStreamDuplicateReportsErrorInBody(t *testing.T) {
	svc := newTestService()
	_, err := svc.StartStream(context.Background(), &visionpb.StreamRequest{
		CameraId:  "cam1",
		CameraUrl: "test://pattern",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer svc.StopStream(context.Background(), &visionpb.StopRequest{CameraId: "cam1"})

	resp, err := svc.StartStream(context.Background(), &visionpb.StreamRequest{
		CameraId:  "cam1",
		CameraUrl: "test://pattern",
	})
	if err != nil {
		t.Fatalf("expected a gRPC-level success with in-body error, got transport error: %v", err)
	}
	if resp.Status != registry.StatusError {
		t.Fatalf("expected in-body error status for duplicate stream, got %q", resp.Status)
	}
}

func TestStopStreamRejectsEmptyCameraID(t *testing.T) {
	svc := newTestService()
	_, err := svc.StopStream(context.Background(), &visionpb.StopRequest{})
	if st, ok := status.FromError(err); !ok || st.Code() != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestGetStreamStatusUnknownCameraReportsStopped(t *testing.T) {
	svc := newTestService()
	resp, err := svc.GetStreamStatus(context.Background(), &visionpb.StatusRequest{CameraId: "unknown"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != registry.StatusStopped {
		t.Fatalf("expected stopped status, got %q", resp.Status)
	}
}

func TestGetHealthReportsVersion(t *testing.T) {
	svc := newTestService()
	resp, err := svc.GetHealth(context.Background(), &visionpb.HealthRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Version == "" {
		t.Fatal("expected a non-empty version")
	}
}

func TestFullStartStatusStopFlow(t *testing.T) {
	svc := newTestService()

	startResp, err := svc.StartStream(context.Background(), &visionpb.StreamRequest{
		CameraId:  "cam1",
		CameraUrl: "test://pattern",
	})
	if err != nil || startResp.Status != registry.StatusSuccess {
		t.Fatalf("unexpected start result: %v / %+v", err, startResp)
	}

	statusResp, err := svc.GetStreamStatus(context.Background(), &visionpb.StatusRequest{CameraId: "cam1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if statusResp.Status != registry.StatusActive {
		t.Fatalf("expected active status, got %q", statusResp.Status)
	}

	stopResp, err := svc.StopStream(context.Background(), &visionpb.StopRequest{CameraId: "cam1"})
	if err != nil || stopResp.Status != registry.StatusSuccess {
		t.Fatalf("unexpected stop result: %v / %+v", err, stopResp)
	}

	statusResp, err = svc.GetStreamStatus(context.Background(), &visionpb.StatusRequest{CameraId: "cam1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if statusResp.Status != registry.StatusStopped {
		t.Fatalf("expected stopped status after stop, got %q", statusResp.Status)
	}
}

func TestProcessFramesIncrementsMetricsForRoutedCamera(t *testing.T) {
	svc := newTestService()

	startResp, err := svc.StartStream(context.Background(), &visionpb.StreamRequest{
		CameraId:  "cam1",
		CameraUrl: "test://pattern",
	})
	if err != nil || startResp.Status != registry.StatusSuccess {
		t.Fatalf("unexpected start result: %v / %+v", err, startResp)
	}
	defer svc.StopStream(context.Background(), &visionpb.StopRequest{CameraId: "cam1"})

	before := metrics.Instance().FramesProcessed()

	stream := &fakeProcessFramesStream{
		reqs: []*visionpb.FrameRequest{
			{CameraId: "cam1", Timestamp: 1},
			{CameraId: "cam1", Timestamp: 2},
			{CameraId: "cam1", Timestamp: 3},
		},
	}
	if err := svc.ProcessFrames(stream); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(stream.sent) != len(stream.reqs) {
		t.Fatalf("expected %d responses, got %d", len(stream.reqs), len(stream.sent))
	}

	after := metrics.Instance().FramesProcessed()
	if got, want := after-before, int64(len(stream.reqs)); got != want {
		t.Fatalf("expected FramesProcessed to increase by %d, increased by %d", want, got)
	}
}

func TestProcessFramesIncrementsMetricsForUnroutedCamera(t *testing.T) {
	svc := newTestService()

	before := metrics.Instance().FramesProcessed()

	stream := &fakeProcessFramesStream{
		reqs: []*visionpb.FrameRequest{
			{CameraId: "unknown", Timestamp: 1},
			{CameraId: "unknown", Timestamp: 2},
		},
	}
	if err := svc.ProcessFrames(stream); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(stream.sent) != len(stream.reqs) {
		t.Fatalf("expected %d responses, got %d", len(stream.reqs), len(stream.sent))
	}

	after := metrics.Instance().FramesProcessed()
	if got, want := after-before, int64(len(stream.reqs)); got != want {
		t.Fatalf("expected FramesProcessed to increase by %d for unrouted frames, increased by %d", want, got)
	}
}
