// Package decode turns encoded audio into SampleBuffers.
//
// WAV and AIFF are read with the go-audio decoders, MP3 with
// hajimehoshi/go-mp3 and Ogg Vorbis with jfreymuth/oggvorbis. Every failure
// wraps ErrDecode, which is the only terminal error of a processing run.
package decode
