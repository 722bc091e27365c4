// Package resample converts SampleBuffers between sample rates with a
// polyphase FIR and Kaiser-windowed anti-aliasing filter.
//
// ConvertBuffer is the buffer-level entry point. It compensates the filter
// delay so the converted signal stays aligned with the source. Resampler is
// the streaming core underneath:
//
//	mode            taps/phase   nominal stopband
//	QualityFast     16           ~55 dB
//	QualityBalanced 32           ~75 dB
//	QualityBest     64           ~90 dB
package resample
