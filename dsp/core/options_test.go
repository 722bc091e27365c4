package core

import "testing"

func TestApplyProcessorOptions(t *testing.T) {
	var calls int
	cfg := ApplyProcessorOptions(WithChunkSize(2048), WithProgress(func(float64, string) { calls++ }))
	if cfg.ChunkSize != 2048 {
		t.Fatalf("chunk size = %d, want 2048", cfg.ChunkSize)
	}
	if cfg.Progress == nil {
		t.Fatal("progress sink not installed")
	}
	cfg.Progress(50, "half")
	if calls != 1 {
		t.Fatalf("progress calls = %d, want 1", calls)
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	cfg := ApplyProcessorOptions(WithChunkSize(0), WithChunkSize(-1), nil)
	if cfg.ChunkSize != DefaultChunkSize {
		t.Fatalf("chunk size = %d, want %d", cfg.ChunkSize, DefaultChunkSize)
	}
	if cfg.Progress != nil {
		t.Fatal("unexpected progress sink")
	}
}
