// Package srt renders transcription segments as SubRip caption files.
//
// Output is numbered blocks separated by blank lines with
// HH:MM:SS,mmm --> HH:MM:SS,mmm range lines. Segments are written in the
// order given; nothing is merged, sorted, or deduplicated.
package srt
