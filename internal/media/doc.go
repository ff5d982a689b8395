// Package media holds the in-memory payloads the node exchanges with its
// host (frame batches and audio waveforms as float32 tensors) and converts
// them to and from files through ffmpeg.
//
// Frame batches are [N, H, W, 3] tensors with channel values in [0, 1].
// Audio waveforms are [C, S] or [B, C, S] tensors of samples in [-1, 1].
package media
