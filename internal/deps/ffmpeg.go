package deps

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CheckFFmpegFilter reports whether the ffmpeg build exposes filter. The
// subtitle burn needs "subtitles", which only exists when ffmpeg was built
// with libass.
func CheckFFmpegFilter(ctx context.Context, ffmpegBinary, filter string) Status {
	status := Status{
		Name:        "FFmpeg " + filter + " filter",
		Command:     ffmpegBinary,
		Description: "Required to render captions onto frames",
	}
	output, err := exec.CommandContext(ctx, ffmpegBinary, "-hide_banner", "-filters").Output() //nolint:gosec
	if err != nil {
		status.Detail = fmt.Sprintf("list filters: %v", err)
		return status
	}
	if !hasFilter(output, filter) {
		status.Detail = fmt.Sprintf("filter %q missing (rebuild ffmpeg with libass)", filter)
		return status
	}
	status.Available = true
	return status
}

// CheckFFmpegEncoder reports whether the ffmpeg build lists encoder.
func CheckFFmpegEncoder(ctx context.Context, ffmpegBinary, encoder string) Status {
	status := Status{
		Name:        "FFmpeg " + encoder + " encoder",
		Command:     ffmpegBinary,
		Description: "Used for the burned output video",
	}
	output, err := exec.CommandContext(ctx, ffmpegBinary, "-hide_banner", "-encoders").Output() //nolint:gosec
	if err != nil {
		status.Detail = fmt.Sprintf("list encoders: %v", err)
		return status
	}
	if !hasFilter(output, encoder) {
		status.Detail = fmt.Sprintf("encoder %q missing", encoder)
		return status
	}
	status.Available = true
	return status
}

// hasFilter scans "ffmpeg -filters"/"-encoders" listings: flag column, name,
// then description.
func hasFilter(listing []byte, name string) bool {
	scanner := bufio.NewScanner(bytes.NewReader(listing))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) >= 2 && fields[1] == name {
			return true
		}
	}
	return false
}
