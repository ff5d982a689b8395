// Package main hosts the subburn CLI entrypoint and command graph.
//
// The Cobra command tree decodes media files into the frame and audio
// payloads the subtitle burner node consumes, runs the node, and writes the
// result back to disk. It also exposes the palette, the node schema, weight
// management, preflight diagnostics, and configuration scaffolding.
//
// Keep this package lean: behaviour lives in the internal packages and is
// surfaced here through commands and flags.
package main
