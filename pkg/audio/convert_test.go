package audio_test

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/clarionvoice/clarion/pkg/audio"
)

func TestDecodePCM16(t *testing.T) {
	t.Parallel()
	data := make([]byte, 6)
	binary.LittleEndian.PutUint16(data[0:], uint16(int16(0)))
	binary.LittleEndian.PutUint16(data[2:], uint16(int16(16384)))
	minSample := int16(-32768)
	binary.LittleEndian.PutUint16(data[4:], uint16(minSample))

	got := audio.DecodePCM16(data)
	want := []float64{0, 0.5, -1}
	if len(got) != len(want) {
		t.Fatalf("length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDownmixStereo(t *testing.T) {
	t.Parallel()
	got := audio.DownmixStereo([]float64{0.2, 0.4, -0.5, 0.5})
	want := []float64{0.3, 0}
	if len(got) != len(want) {
		t.Fatalf("length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("frame %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestResample_Downsample(t *testing.T) {
	t.Parallel()
	src := sine(440, 0.5, 0.5, 48000)
	got := audio.Resample(src.Samples, 48000, 16000)

	wantLen := len(src.Samples) / 3
	if got == nil || abs(len(got)-wantLen) > 1 {
		t.Fatalf("resampled length = %d, want about %d", len(got), wantLen)
	}

	// The resampled tone must keep its frequency: ZCR scales with the rate.
	zcr := audio.ZeroCrossingRate(got)
	want := 880.0 / 16000.0
	if math.Abs(zcr-want) > want*0.1 {
		t.Errorf("resampled zcr = %v, want about %v", zcr, want)
	}
}

func TestResample_SameRateUnchanged(t *testing.T) {
	t.Parallel()
	src := []float64{0.1, 0.2, 0.3}
	got := audio.Resample(src, 16000, 16000)
	if &got[0] != &src[0] {
		t.Error("same-rate resample should return the input unchanged")
	}
}

func TestNormalize_StereoToMonoAndResample(t *testing.T) {
	t.Parallel()
	// Interleaved stereo with identical channels.
	mono := sine(440, 0.5, 0.25, 48000)
	stereo := make([]float64, len(mono.Samples)*2)
	for i, s := range mono.Samples {
		stereo[i*2] = s
		stereo[i*2+1] = s
	}

	clip := audio.Normalize(stereo, 48000, 2, 16000)
	if clip.SampleRate != 16000 {
		t.Errorf("sample rate = %d, want 16000", clip.SampleRate)
	}
	if math.Abs(clip.Duration()-0.25) > 0.01 {
		t.Errorf("duration = %v, want about 0.25", clip.Duration())
	}
}

func TestReadWAV_RoundTrip(t *testing.T) {
	t.Parallel()
	clip := sine(440, 0.5, 0.25, 16000)
	wav := encodeWAV(t, clip, 1)

	got, err := audio.ReadWAV(bytes.NewReader(wav))
	if err != nil {
		t.Fatalf("ReadWAV: %v", err)
	}
	if got.SampleRate != 16000 {
		t.Errorf("sample rate = %d, want 16000", got.SampleRate)
	}
	if len(got.Samples) != len(clip.Samples) {
		t.Errorf("samples = %d, want %d", len(got.Samples), len(clip.Samples))
	}
}

func TestReadWAV_RejectsNonRIFF(t *testing.T) {
	t.Parallel()
	_, err := audio.ReadWAV(bytes.NewReader([]byte("definitely not a wav file")))
	if err == nil {
		t.Fatal("expected error for non-RIFF input")
	}
}

// encodeWAV writes a minimal 16-bit PCM WAV stream for tests.
func encodeWAV(t *testing.T, clip audio.Clip, channels int) []byte {
	t.Helper()

	pcm := make([]byte, len(clip.Samples)*2)
	for i, s := range clip.Samples {
		v := int16(s * 32767)
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(v))
	}

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(channels))
	binary.Write(&buf, binary.LittleEndian, uint32(clip.SampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(clip.SampleRate*channels*2))
	binary.Write(&buf, binary.LittleEndian, uint16(channels*2))
	binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)
	return buf.Bytes()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
