// Package modulation provides LFO-driven modulation effects for SampleBuffer.
//
// Included processors:
//   - LFO: sine, triangle, square and sawtooth low-frequency oscillators with
//     per-channel phase offsets.
//   - AllPassStage: first-order allpass section used by the phaser.
//   - Phaser: cascaded allpass stages swept by an LFO, with clipped feedback
//     and dry/wet blend.
//   - Tremolo: LFO amplitude modulation with dry/wet blend.
//
// All processors are deterministic: identical input and parameters produce
// bit-identical output. Filter and oscillator state lives in per-channel
// values allocated for one call and discarded afterwards.
package modulation
