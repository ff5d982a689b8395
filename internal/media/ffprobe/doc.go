// Package ffprobe wraps ffprobe JSON output for the streams subburn reads
// back: frame geometry and rate of encoded video, channel layout of input
// audio.
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns parsed Result
//
// Helper methods on Result pick the first video/audio stream and parse the
// rational frame-rate strings ffprobe reports.
package ffprobe
