// Package visionpb holds the wire messages for the vision RPC service.
// There is no .proto source in this tree; these mirror the message shapes
// a protoc-gen-go run against such a file would produce; field tags follow
// the same proto3 struct-tag convention so the real protobuf codec's
// legacy (struct-tag based) message adapter can marshal them without a
// compiled file descriptor.
package visionpb

import "fmt"

// StreamConfig mirrors CameraConfig's wire-relevant fields.
type StreamConfig struct {
	Width  int32  `protobuf:"varint,1,opt,name=width,proto3" json:"width,omitempty"`
	Height int32  `protobuf:"varint,2,opt,name=height,proto3" json:"height,omitempty"`
	Fps    int32  `protobuf:"varint,3,opt,name=fps,proto3" json:"fps,omitempty"`
	Format string `protobuf:"bytes,4,opt,name=format,proto3" json:"format,omitempty"`
}

func (m *StreamConfig) Reset()         { *m = StreamConfig{} }
func (m *StreamConfig) String() string { return fmt.Sprintf("%+v", *m) }
func (*StreamConfig) ProtoMessage()    {}

func (x *StreamConfig) GetWidth() int32 {
	if x != nil {
		return x.Width
	}
	return 0
}

func (x *StreamConfig) GetHeight() int32 {
	if x != nil {
		return x.Height
	}
	return 0
}

func (x *StreamConfig) GetFps() int32 {
	if x != nil {
		return x.Fps
	}
	return 0
}

func (x *StreamConfig) GetFormat() string {
	if x != nil {
		return x.Format
	}
	return ""
}

// StreamRequest is StartStream's request message.
type StreamRequest struct {
	CameraId  string        `protobuf:"bytes,1,opt,name=camera_id,json=cameraId,proto3" json:"camera_id,omitempty"`
	CameraUrl string        `protobuf:"bytes,2,opt,name=camera_url,json=cameraUrl,proto3" json:"camera_url,omitempty"`
	Config    *StreamConfig `protobuf:"bytes,3,opt,name=config,proto3" json:"config,omitempty"`
}

func (m *StreamRequest) Reset()         { *m = StreamRequest{} }
func (m *StreamRequest) String() string { return fmt.Sprintf("%+v", *m) }
func (*StreamRequest) ProtoMessage()    {}

func (x *StreamRequest) GetCameraId() string {
	if x != nil {
		return x.CameraId
	}
	return ""
}

func (x *StreamRequest) GetCameraUrl() string {
	if x != nil {
		return x.CameraUrl
	}
	return ""
}

func (x *StreamRequest) GetConfig() *StreamConfig {
	if x != nil {
		return x.Config
	}
	return nil
}

// StreamResponse is StartStream's response message.
type StreamResponse struct {
	Status   string `protobuf:"bytes,1,opt,name=status,proto3" json:"status,omitempty"`
	Message  string `protobuf:"bytes,2,opt,name=message,proto3" json:"message,omitempty"`
	StreamId string `protobuf:"bytes,3,opt,name=stream_id,json=streamId,proto3" json:"stream_id,omitempty"`
}

func (m *StreamResponse) Reset()         { *m = StreamResponse{} }
func (m *StreamResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*StreamResponse) ProtoMessage()    {}

// StopRequest is StopStream's request message.
type StopRequest struct {
	CameraId string `protobuf:"bytes,1,opt,name=camera_id,json=cameraId,proto3" json:"camera_id,omitempty"`
}

func (m *StopRequest) Reset()         { *m = StopRequest{} }
func (m *StopRequest) String() string { return fmt.Sprintf("%+v", *m) }
func (*StopRequest) ProtoMessage()    {}

func (x *StopRequest) GetCameraId() string {
	if x != nil {
		return x.CameraId
	}
	return ""
}

// StopResponse is StopStream's response message.
type StopResponse struct {
	Status  string `protobuf:"bytes,1,opt,name=status,proto3" json:"status,omitempty"`
	Message string `protobuf:"bytes,2,opt,name=message,proto3" json:"message,omitempty"`
}

func (m *StopResponse) Reset()         { *m = StopResponse{} }
func (m *StopResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*StopResponse) ProtoMessage()    {}

// StatusRequest is GetStreamStatus's request message.
type StatusRequest struct {
	CameraId string `protobuf:"bytes,1,opt,name=camera_id,json=cameraId,proto3" json:"camera_id,omitempty"`
}

func (m *StatusRequest) Reset()         { *m = StatusRequest{} }
func (m *StatusRequest) String() string { return fmt.Sprintf("%+v", *m) }
func (*StatusRequest) ProtoMessage()    {}

func (x *StatusRequest) GetCameraId() string {
	if x != nil {
		return x.CameraId
	}
	return ""
}

// StreamStats carries the derived statistics reported alongside status.
type StreamStats struct {
	FramesProcessed    int64   `protobuf:"varint,1,opt,name=frames_processed,json=framesProcessed,proto3" json:"frames_processed,omitempty"`
	DetectionsCount    int64   `protobuf:"varint,2,opt,name=detections_count,json=detectionsCount,proto3" json:"detections_count,omitempty"`
	FpsActual          float64 `protobuf:"fixed64,3,opt,name=fps_actual,json=fpsActual,proto3" json:"fps_actual,omitempty"`
	UptimeSeconds      float64 `protobuf:"fixed64,4,opt,name=uptime_seconds,json=uptimeSeconds,proto3" json:"uptime_seconds,omitempty"`
	LastFrameTimestamp int64   `protobuf:"varint,5,opt,name=last_frame_timestamp,json=lastFrameTimestamp,proto3" json:"last_frame_timestamp,omitempty"`
}

func (m *StreamStats) Reset()         { *m = StreamStats{} }
func (m *StreamStats) String() string { return fmt.Sprintf("%+v", *m) }
func (*StreamStats) ProtoMessage()    {}

// StatusResponse is GetStreamStatus's response message.
type StatusResponse struct {
	CameraId string       `protobuf:"bytes,1,opt,name=camera_id,json=cameraId,proto3" json:"camera_id,omitempty"`
	Status   string       `protobuf:"bytes,2,opt,name=status,proto3" json:"status,omitempty"`
	Message  string       `protobuf:"bytes,3,opt,name=message,proto3" json:"message,omitempty"`
	Stats    *StreamStats `protobuf:"bytes,4,opt,name=stats,proto3" json:"stats,omitempty"`
}

func (m *StatusResponse) Reset()         { *m = StatusResponse{} }
func (m *StatusResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*StatusResponse) ProtoMessage()    {}

func (x *StatusResponse) GetStats() *StreamStats {
	if x != nil {
		return x.Stats
	}
	return nil
}

// HealthRequest is GetHealth's (empty) request message.
type HealthRequest struct{}

func (m *HealthRequest) Reset()         { *m = HealthRequest{} }
func (m *HealthRequest) String() string { return fmt.Sprintf("%+v", *m) }
func (*HealthRequest) ProtoMessage()    {}

// HealthResponse is GetHealth's response message.
type HealthResponse struct {
	Status        string  `protobuf:"bytes,1,opt,name=status,proto3" json:"status,omitempty"`
	Message       string  `protobuf:"bytes,2,opt,name=message,proto3" json:"message,omitempty"`
	ActiveStreams int32   `protobuf:"varint,3,opt,name=active_streams,json=activeStreams,proto3" json:"active_streams,omitempty"`
	UptimeSeconds float64 `protobuf:"fixed64,4,opt,name=uptime_seconds,json=uptimeSeconds,proto3" json:"uptime_seconds,omitempty"`
	Version       string  `protobuf:"bytes,5,opt,name=version,proto3" json:"version,omitempty"`
}

func (m *HealthResponse) Reset()         { *m = HealthResponse{} }
func (m *HealthResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*HealthResponse) ProtoMessage()    {}

// FrameRequest is one inbound message of the ProcessFrames stream.
type FrameRequest struct {
	CameraId  string `protobuf:"bytes,1,opt,name=camera_id,json=cameraId,proto3" json:"camera_id,omitempty"`
	Timestamp int64  `protobuf:"varint,2,opt,name=timestamp,proto3" json:"timestamp,omitempty"`
}

func (m *FrameRequest) Reset()         { *m = FrameRequest{} }
func (m *FrameRequest) String() string { return fmt.Sprintf("%+v", *m) }
func (*FrameRequest) ProtoMessage()    {}

func (x *FrameRequest) GetCameraId() string {
	if x != nil {
		return x.CameraId
	}
	return ""
}

func (x *FrameRequest) GetTimestamp() int64 {
	if x != nil {
		return x.Timestamp
	}
	return 0
}

// ProcessingStats carries the per-frame processing telemetry returned on
// the ProcessFrames stream.
type ProcessingStats struct {
	ProcessingTimeMs int64   `protobuf:"varint,1,opt,name=processing_time_ms,json=processingTimeMs,proto3" json:"processing_time_ms,omitempty"`
	DetectionsCount  int64   `protobuf:"varint,2,opt,name=detections_count,json=detectionsCount,proto3" json:"detections_count,omitempty"`
	CpuUsage         float32 `protobuf:"fixed32,3,opt,name=cpu_usage,json=cpuUsage,proto3" json:"cpu_usage,omitempty"`
	MemoryUsageMb    int64   `protobuf:"varint,4,opt,name=memory_usage_mb,json=memoryUsageMb,proto3" json:"memory_usage_mb,omitempty"`
}

func (m *ProcessingStats) Reset()         { *m = ProcessingStats{} }
func (m *ProcessingStats) String() string { return fmt.Sprintf("%+v", *m) }
func (*ProcessingStats) ProtoMessage()    {}

// FrameResponse is one outbound message of the ProcessFrames stream.
type FrameResponse struct {
	CameraId        string           `protobuf:"bytes,1,opt,name=camera_id,json=cameraId,proto3" json:"camera_id,omitempty"`
	Timestamp       int64            `protobuf:"varint,2,opt,name=timestamp,proto3" json:"timestamp,omitempty"`
	ProcessingStats *ProcessingStats `protobuf:"bytes,3,opt,name=processing_stats,json=processingStats,proto3" json:"processing_stats,omitempty"`
}

func (m *FrameResponse) Reset()         { *m = FrameResponse{} }
func (m *FrameResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*FrameResponse) ProtoMessage()    {}
