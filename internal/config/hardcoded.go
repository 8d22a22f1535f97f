package config

import "github.com/khaledhikmat/visiongrid/internal/capture"

type hardcodedService struct {
}

// NewHardCoded returns the default configuration service. In the future
// this should read from a file or environment variables.
func NewHardCoded() IService {
	return &hardcodedService{}
}

func (svc *hardcodedService) GetMaxConcurrentStreams() int {
	// For now, we are using a hardcoded value.
	// In the future, this should be read from a configuration file or environment variable.
	return 10
}

func (svc *hardcodedService) GetDefaultFrameBufferSize() int {
	return 30
}

func (svc *hardcodedService) GetHealthCheckIntervalSec() int {
	return 30
}

func (svc *hardcodedService) GetStreamTimeoutSec() int {
	return 300
}

func (svc *hardcodedService) GetDefaultCameraConfig() capture.Config {
	return capture.DefaultConfig()
}

func (svc *hardcodedService) GetServiceVersion() string {
	return "1.0.0"
}

func (svc *hardcodedService) GetGRPCHost() string {
	return "0.0.0.0"
}

func (svc *hardcodedService) GetGRPCPort() int {
	return 50051
}

func (svc *hardcodedService) GetShutdownGraceSec() int {
	return 5
}

func (svc *hardcodedService) GetUptimeLogIntervalSec() int {
	return 30
}
