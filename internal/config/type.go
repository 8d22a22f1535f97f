// Package config mirrors the teacher's config service shape: a narrow
// interface in front of whatever source backs it, today a hardcoded one.
package config

import "github.com/khaledhikmat/visiongrid/internal/capture"

// IService is the configuration surface the registry and RPC layer depend
// on. Every value has a sensible default so the service runs unconfigured.
type IService interface {
	GetMaxConcurrentStreams() int
	GetDefaultFrameBufferSize() int
	GetHealthCheckIntervalSec() int
	GetStreamTimeoutSec() int
	GetDefaultCameraConfig() capture.Config
	GetServiceVersion() string
	GetGRPCHost() string
	GetGRPCPort() int
	GetShutdownGraceSec() int
	GetUptimeLogIntervalSec() int
}
