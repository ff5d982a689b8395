// Package transcribe turns an audio file into timed speech segments.
//
// Two engines are supported:
//   - whispercpp: the whisper.cpp CLI with ggml weights resolved from a
//     local cache (downloaded on demand under a file lock)
//   - whisperx: WhisperX launched through uvx, which manages its own weights
//
// A Loader produces a Model for a size selector. Cache owns the loaded Model
// for one node instance and reloads only when the requested size changes.
package transcribe
