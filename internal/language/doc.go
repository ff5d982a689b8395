// Package language normalizes user-supplied transcription language hints
// into the ISO 639-1 codes whisper engines accept.
//
// Empty input and "auto" mean automatic detection. BCP 47 tags, ISO 639-2
// codes, and English language names are accepted.
package language
