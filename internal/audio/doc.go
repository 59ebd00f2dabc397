// Package audio provides bounce sound playback.
// It uses the beep library to play a WAV, OGG or MP3 file, or a generated
// thud, with loudness scaled by how hard the window hit the edge.
package audio
