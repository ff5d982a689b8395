package media

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"

	"subburn/internal/command"
	"subburn/internal/media/ffprobe"
)

// Codec moves tensors in and out of media files using ffmpeg and ffprobe.
type Codec struct {
	FFmpeg  string
	FFprobe string
	Runner  command.Runner
	// CRF is the x264 quality used for intermediate encodes.
	CRF int
}

// NewCodec returns a Codec executing the named binaries.
func NewCodec(ffmpegBinary, ffprobeBinary string, crf int) *Codec {
	if ffmpegBinary == "" {
		ffmpegBinary = "ffmpeg"
	}
	if ffprobeBinary == "" {
		ffprobeBinary = "ffprobe"
	}
	return &Codec{FFmpeg: ffmpegBinary, FFprobe: ffprobeBinary, Runner: command.ExecRunner{}, CRF: crf}
}

// EncodeFrames writes a silent H.264 video of the batch at fps. yuv444p
// keeps odd frame sizes encodable without padding.
func (c *Codec) EncodeFrames(ctx context.Context, frames Tensor, fps float64, dest string) error {
	_, height, width, err := FrameGeometry(frames)
	if err != nil {
		return err
	}
	if fps <= 0 || math.IsNaN(fps) {
		return fmt.Errorf("encode frames: invalid fps %v", fps)
	}
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-r", strconv.FormatFloat(fps, 'f', -1, 64),
		"-i", "pipe:0",
		"-an",
		"-c:v", "libx264",
		"-pix_fmt", "yuv444p",
		"-crf", strconv.Itoa(c.CRF),
		dest,
	}
	if _, err := c.Runner.Run(ctx, command.Spec{
		Name:  c.FFmpeg,
		Args:  args,
		Stdin: bytes.NewReader(ToRGB24(frames)),
	}); err != nil {
		return fmt.Errorf("encode frames: %w", err)
	}
	return nil
}

// DecodeFrames reads every frame of the first video stream in path.
func (c *Codec) DecodeFrames(ctx context.Context, path string) (Tensor, error) {
	probe, err := ffprobe.Inspect(ctx, c.FFprobe, path)
	if err != nil {
		return Tensor{}, fmt.Errorf("decode frames: %w", err)
	}
	video, ok := probe.VideoStream()
	if !ok || video.Width <= 0 || video.Height <= 0 {
		return Tensor{}, fmt.Errorf("decode frames: no video stream in %s", path)
	}

	var raw bytes.Buffer
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", path,
		"-map", "0:v:0",
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"pipe:1",
	}
	if _, err := c.Runner.Run(ctx, command.Spec{Name: c.FFmpeg, Args: args, Stdout: &raw}); err != nil {
		return Tensor{}, fmt.Errorf("decode frames: %w", err)
	}

	frameSize := video.Width * video.Height * FrameChannels
	if raw.Len() == 0 || raw.Len()%frameSize != 0 {
		return Tensor{}, fmt.Errorf("decode frames: %d bytes is not a whole number of %dx%d frames", raw.Len(), video.Width, video.Height)
	}
	return FromRGB24(raw.Bytes(), raw.Len()/frameSize, video.Height, video.Width)
}

// ProbeFrameRate returns the frame rate of the first video stream in path.
func (c *Codec) ProbeFrameRate(ctx context.Context, path string) (float64, error) {
	probe, err := ffprobe.Inspect(ctx, c.FFprobe, path)
	if err != nil {
		return 0, err
	}
	video, ok := probe.VideoStream()
	if !ok {
		return 0, fmt.Errorf("no video stream in %s", path)
	}
	return video.FrameRate(), nil
}

// DecodeAudio reads the first audio stream of path into a [C, S] waveform at
// its native sample rate and channel count.
func (c *Codec) DecodeAudio(ctx context.Context, path string) (Audio, error) {
	probe, err := ffprobe.Inspect(ctx, c.FFprobe, path)
	if err != nil {
		return Audio{}, fmt.Errorf("decode audio: %w", err)
	}
	stream, ok := probe.AudioStream()
	if !ok || stream.Channels <= 0 || stream.SampleRateHz() <= 0 {
		return Audio{}, fmt.Errorf("decode audio: no usable audio stream in %s", path)
	}

	var raw bytes.Buffer
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", path,
		"-map", "0:a:0",
		"-vn",
		"-f", "f32le",
		"-c:a", "pcm_f32le",
		"-ac", strconv.Itoa(stream.Channels),
		"-ar", strconv.Itoa(stream.SampleRateHz()),
		"pipe:1",
	}
	if _, err := c.Runner.Run(ctx, command.Spec{Name: c.FFmpeg, Args: args, Stdout: &raw}); err != nil {
		return Audio{}, fmt.Errorf("decode audio: %w", err)
	}
	waveform, err := deinterleaveF32(raw.Bytes(), stream.Channels)
	if err != nil {
		return Audio{}, fmt.Errorf("decode audio: %w", err)
	}
	return Audio{Waveform: waveform, SampleRate: stream.SampleRateHz()}, nil
}

// WriteVideo muxes frames with an audio payload into dest for playback
// outside the node graph. The audio is staged as a WAV at audioPath. Odd
// frame sizes are padded by one pixel to satisfy yuv420p.
func (c *Codec) WriteVideo(ctx context.Context, frames Tensor, fps float64, audio Audio, audioPath, dest string) error {
	if err := WriteWAV(audioPath, audio.Waveform2D(), audio.SampleRate); err != nil {
		return err
	}
	_, height, width, err := FrameGeometry(frames)
	if err != nil {
		return err
	}
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-r", strconv.FormatFloat(fps, 'f', -1, 64),
		"-i", "pipe:0",
		"-i", audioPath,
		"-map", "0:v",
		"-map", "1:a",
		"-vf", "pad=ceil(iw/2)*2:ceil(ih/2)*2",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-crf", strconv.Itoa(c.CRF),
		"-c:a", "aac",
		"-shortest",
		dest,
	}
	if _, err := c.Runner.Run(ctx, command.Spec{
		Name:  c.FFmpeg,
		Args:  args,
		Stdin: bytes.NewReader(ToRGB24(frames)),
	}); err != nil {
		return fmt.Errorf("write video: %w", err)
	}
	return nil
}

func deinterleaveF32(raw []byte, channels int) (Tensor, error) {
	frameBytes := 4 * channels
	if len(raw) == 0 || len(raw)%frameBytes != 0 {
		return Tensor{}, fmt.Errorf("%d bytes is not a whole number of %d-channel samples", len(raw), channels)
	}
	samples := len(raw) / frameBytes
	t := NewTensor(channels, samples)
	for i := 0; i < samples; i++ {
		for ch := 0; ch < channels; ch++ {
			off := (i*channels + ch) * 4
			t.Data[ch*samples+i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[off : off+4]))
		}
	}
	return t, nil
}
