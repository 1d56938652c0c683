package ffprobe

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

const sampleJSON = `{
  "streams": [
    {"index": 0, "codec_type": "audio", "codec_name": "aac"},
    {"index": 1, "codec_type": "video", "codec_name": "h264", "width": 1280, "height": 720, "avg_frame_rate": "30000/1001"}
  ],
  "format": {"filename": "abc123.mp4", "duration": "12.5", "format_name": "mov,mp4"}
}`

func TestParseAndDimensions(t *testing.T) {
	result, err := Parse([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	width, height, err := result.Dimensions()
	if err != nil {
		t.Fatalf("Dimensions: %v", err)
	}
	if width != 1280 || height != 720 {
		t.Fatalf("unexpected dimensions %dx%d", width, height)
	}
	if result.DurationSeconds() != 12.5 {
		t.Fatalf("unexpected duration %v", result.DurationSeconds())
	}
	stream, _ := result.VideoStream()
	if rate := stream.FrameRate(); math.Abs(rate-29.97) > 0.01 {
		t.Fatalf("unexpected frame rate %v", rate)
	}
}

func TestDimensionsWithoutVideo(t *testing.T) {
	result := Result{Streams: []Stream{{CodecType: "audio"}, {CodecType: "video"}}}
	if _, _, err := result.Dimensions(); !errors.Is(err, ErrNoVideoStream) {
		t.Fatalf("expected ErrNoVideoStream, got %v", err)
	}
}

func TestFrameRateHandlesInvalidValues(t *testing.T) {
	for _, value := range []string{"", "0/0", "bad", "24/x"} {
		if rate := (Stream{AvgFrameRate: value}).FrameRate(); rate != 0 {
			t.Errorf("FrameRate(%q) = %v, want 0", value, rate)
		}
	}
	if rate := (Stream{AvgFrameRate: "25"}).FrameRate(); rate != 25 {
		t.Fatalf("expected plain rate 25, got %v", rate)
	}
}

func TestInspectRunsBinary(t *testing.T) {
	dir := t.TempDir()
	payload := filepath.Join(dir, "probe.json")
	if err := os.WriteFile(payload, []byte(sampleJSON), 0o644); err != nil {
		t.Fatalf("write payload: %v", err)
	}
	stub := filepath.Join(dir, "ffprobe")
	script := "#!/bin/sh\ncat " + payload + "\n"
	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	result, err := Inspect(context.Background(), stub, "/tmp/abc123.mp4")
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if len(result.Streams) != 2 {
		t.Fatalf("expected 2 streams, got %d", len(result.Streams))
	}
}

func TestInspectRejectsEmptyPath(t *testing.T) {
	if _, err := Inspect(context.Background(), "ffprobe", "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestInspectReportsFailure(t *testing.T) {
	stub := filepath.Join(t.TempDir(), "ffprobe")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\necho broken >&2\nexit 1\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	if _, err := Inspect(context.Background(), stub, "video.mp4"); err == nil {
		t.Fatal("expected error from failing ffprobe")
	}
}
