package capture

import (
	"os"
	"regexp"
	"strconv"
	"strings"
)

var (
	rtspPrefixes    = []string{"rtsp://", "rtmp://", "rtp://"}
	httpPrefixes    = []string{"http://", "https://"}
	webcamPrefixes  = []string{"/dev/video", "/dev/v4l/by-id/"}
	videoExtensions = []string{".mp4", ".avi", ".mov", ".mkv", ".wmv", ".flv", ".webm"}

	webcamIndexRe = regexp.MustCompile(`^/dev/video(\d+)$`)
)

// ClassifyURL is a pure function (spec §8 round-trip property) implementing
// the deterministic classification table from spec §4.1. First match wins.
func ClassifyURL(url string) Type {
	if url == "" {
		return TypeUnknown
	}

	if url == "test://pattern" || strings.HasPrefix(url, "test://") {
		return TypeTestPattern
	}

	for _, p := range rtspPrefixes {
		if strings.HasPrefix(url, p) {
			return TypeRTSPStream
		}
	}

	for _, p := range httpPrefixes {
		if strings.HasPrefix(url, p) {
			return TypeHTTPStream
		}
	}

	for _, p := range webcamPrefixes {
		if strings.HasPrefix(url, p) {
			return TypeWebcam
		}
	}

	for _, ext := range videoExtensions {
		if strings.HasSuffix(url, ext) {
			return TypeFileVideo
		}
	}

	if info, err := os.Stat(url); err == nil && info.Mode().IsRegular() {
		return TypeFileVideo
	}

	return TypeUnknown
}

// IsValidURL reports whether url classifies to anything other than Unknown.
func IsValidURL(url string) bool {
	return ClassifyURL(url) != TypeUnknown
}

// WebcamDeviceIndex extracts the device index from a /dev/videoN URL per the
// regex named in spec §6. ok is false when url doesn't match the pattern.
func WebcamDeviceIndex(url string) (index int, ok bool) {
	m := webcamIndexRe.FindStringSubmatch(url)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// AvailableWebcams scans /dev/video0 through /dev/video9 and returns the
// devices that exist, mirroring CameraManager::GetAvailableWebcams.
func AvailableWebcams() []string {
	var webcams []string
	for i := 0; i < 10; i++ {
		device := "/dev/video" + strconv.Itoa(i)
		if _, err := os.Stat(device); err == nil {
			webcams = append(webcams, device)
		}
	}
	return webcams
}
