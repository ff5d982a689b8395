// Package node implements the subtitle burner node: it transcribes the
// audio attached to a frame batch, renders the transcript as styled
// captions, burns them into the frames with ffmpeg, and hands the burned
// frames back to the host.
//
// Each Process call owns a private temporary workspace that is removed on
// every exit path. The transcription model is cached per SubtitleBurner and
// reloaded only when the requested size changes. A SubtitleBurner is not
// safe for concurrent use; hosts running invocations in parallel should
// construct one instance per worker.
package node
