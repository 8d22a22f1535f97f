package capture

import "testing"

func TestClassifyURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want Type
	}{
		{"empty", "", TypeUnknown},
		{"test pattern", "test://pattern", TypeTestPattern},
		{"test pattern variant", "test://anything", TypeTestPattern},
		{"rtsp", "rtsp://192.168.1.10/stream1", TypeRTSPStream},
		{"rtmp", "rtmp://example.com/live", TypeRTSPStream},
		{"http", "http://example.com/stream.m3u8", TypeHTTPStream},
		{"https", "https://example.com/stream.m3u8", TypeHTTPStream},
		{"webcam", "/dev/video0", TypeWebcam},
		{"webcam by-id", "/dev/v4l/by-id/usb-cam", TypeWebcam},
		{"mp4 file", "footage.mp4", TypeFileVideo},
		{"mkv file", "footage.mkv", TypeFileVideo},
		{"unknown", "not-a-real-scheme", TypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyURL(tt.url); got != tt.want {
				t.Errorf("ClassifyURL(%q) = %v, want %v", tt.url, got, tt.want)
			}
			// Pure function: repeated calls must agree.
			if got2 := ClassifyURL(tt.url); got2 != ClassifyURL(tt.url) {
				t.Errorf("ClassifyURL(%q) not stable across calls: %v vs %v", tt.url, got2, ClassifyURL(tt.url))
			}
		})
	}
}

func TestIsValidURL(t *testing.T) {
	if !IsValidURL("test://pattern") {
		t.Error("expected test://pattern to be valid")
	}
	if IsValidURL("") {
		t.Error("expected empty url to be invalid")
	}
	if IsValidURL("garbage") {
		t.Error("expected unclassifiable url to be invalid")
	}
}

func TestWebcamDeviceIndex(t *testing.T) {
	tests := []struct {
		url     string
		wantIdx int
		wantOk  bool
	}{
		{"/dev/video0", 0, true},
		{"/dev/video12", 12, true},
		{"/dev/v4l/by-id/usb-cam", 0, false},
		{"/dev/videoX", 0, false},
	}

	for _, tt := range tests {
		idx, ok := WebcamDeviceIndex(tt.url)
		if ok != tt.wantOk || (ok && idx != tt.wantIdx) {
			t.Errorf("WebcamDeviceIndex(%q) = (%d, %v), want (%d, %v)", tt.url, idx, ok, tt.wantIdx, tt.wantOk)
		}
	}
}
