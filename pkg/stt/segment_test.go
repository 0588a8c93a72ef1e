package stt

import "testing"

// chunkOf returns 100ms of mono 16kHz PCM at the given constant amplitude.
func chunkOf(amplitude int16) []int16 {
	chunk := make([]int16, 1600)
	for i := range chunk {
		chunk[i] = amplitude
	}
	return chunk
}

func TestSegmenter_LeadingSilenceDiscarded(t *testing.T) {
	s := NewSegmenter(16000)

	for i := 0; i < 20; i++ {
		if got := s.Feed(chunkOf(0)); got != nil {
			t.Fatalf("silence-only feed %d returned an utterance of %d samples", i, len(got))
		}
	}
	if got := s.Flush(); got != nil {
		t.Errorf("Flush after pure silence returned %d samples; want nil", len(got))
	}
}

func TestSegmenter_UtteranceEndsOnSilence(t *testing.T) {
	s := NewSegmenter(16000)

	// Three chunks of speech.
	for i := 0; i < 3; i++ {
		if got := s.Feed(chunkOf(5000)); got != nil {
			t.Fatalf("utterance closed early at speech chunk %d", i)
		}
	}
	// 400ms of silence: still open.
	for i := 0; i < 4; i++ {
		if got := s.Feed(chunkOf(0)); got != nil {
			t.Fatalf("utterance closed at %dms of silence; want 500ms", (i+1)*100)
		}
	}
	// The fifth silent chunk crosses the 500ms threshold.
	got := s.Feed(chunkOf(0))
	if got == nil {
		t.Fatal("utterance should close after 500ms of silence")
	}
	// 3 speech + 5 silence chunks, 1600 samples each.
	if len(got) != 8*1600 {
		t.Errorf("utterance length = %d samples; want %d", len(got), 8*1600)
	}

	// The segmenter is fully reset afterwards.
	if got := s.Feed(chunkOf(0)); got != nil {
		t.Error("post-flush silence must not produce an utterance")
	}
}

func TestSegmenter_SpeechResetsSilenceCounter(t *testing.T) {
	s := NewSegmenter(16000)

	s.Feed(chunkOf(5000))
	for i := 0; i < 4; i++ {
		s.Feed(chunkOf(0))
	}
	// Speech resumes before the threshold: the counter starts over.
	s.Feed(chunkOf(5000))
	for i := 0; i < 4; i++ {
		if got := s.Feed(chunkOf(0)); got != nil {
			t.Fatalf("utterance closed %dms into the second silence run", (i+1)*100)
		}
	}
	if got := s.Feed(chunkOf(0)); got == nil {
		t.Error("utterance should close after the second 500ms silence run")
	}
}

func TestSegmenter_MaxDurationForcesFlush(t *testing.T) {
	s := NewSegmenter(16000)

	var utterance []int16
	for i := 0; i < 150; i++ {
		if got := s.Feed(chunkOf(5000)); got != nil {
			utterance = got
			break
		}
	}
	if utterance == nil {
		t.Fatal("continuous speech never hit the duration cap")
	}
	if ms := len(utterance) * 1000 / 16000; ms < 9000 || ms > 11000 {
		t.Errorf("forced flush at %dms; want ~10000ms", ms)
	}
}

func TestSegmenter_FlushReturnsOpenUtterance(t *testing.T) {
	s := NewSegmenter(16000)

	s.Feed(chunkOf(5000))
	s.Feed(chunkOf(5000))
	got := s.Flush()
	if len(got) != 2*1600 {
		t.Errorf("Flush returned %d samples; want %d", len(got), 2*1600)
	}
}

func TestRMS(t *testing.T) {
	if got := rms(nil); got != 0 {
		t.Errorf("rms(nil) = %v; want 0", got)
	}
	if got := rms(chunkOf(0)); got != 0 {
		t.Errorf("rms(silence) = %v; want 0", got)
	}
	if got := rms(chunkOf(1000)); got < 999 || got > 1001 {
		t.Errorf("rms(constant 1000) = %v; want 1000", got)
	}
	if got := rms(chunkOf(100)); got >= rmsThreshold {
		t.Errorf("rms(constant 100) = %v; want below the silence threshold", got)
	}
}

func TestToFloat32(t *testing.T) {
	got := ToFloat32([]int16{0, 16384, -32768, 32767})
	want := []float32{0, 0.5, -1, 32767.0 / 32768.0}
	if len(got) != len(want) {
		t.Fatalf("length = %d; want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v; want %v", i, got[i], want[i])
		}
	}
}
