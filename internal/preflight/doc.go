// Package preflight provides readiness checks for the executables, fonts,
// weights, and filesystem paths a subtitle burn depends on.
//
// The CLI "subburn doctor" command runs RunAll and renders the results;
// "subburn burn" runs CheckSystemDeps first so a missing ffmpeg surfaces
// before any decoding work starts.
package preflight
