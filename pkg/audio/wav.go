package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// ReadWAVFile reads a 16-bit PCM WAV file from disk and returns a normalised
// mono clip. Stereo files are downmixed.
func ReadWAVFile(path string) (Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return Clip{}, fmt.Errorf("audio: open wav %q: %w", path, err)
	}
	defer f.Close()

	clip, err := ReadWAV(f)
	if err != nil {
		return Clip{}, fmt.Errorf("audio: read wav %q: %w", path, err)
	}
	return clip, nil
}

// ReadWAV decodes a RIFF/WAVE stream containing 16-bit integer PCM and
// returns a mono clip. Only the "fmt " and "data" chunks are interpreted;
// other chunks are skipped.
func ReadWAV(r io.Reader) (Clip, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return Clip{}, fmt.Errorf("audio: read riff header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return Clip{}, fmt.Errorf("audio: not a RIFF/WAVE stream")
	}

	var (
		sampleRate int
		channels   int
		bitDepth   int
		haveFmt    bool
	)

	for {
		var chunkHeader [8]byte
		if _, err := io.ReadFull(r, chunkHeader[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return Clip{}, fmt.Errorf("audio: wav stream has no data chunk")
			}
			return Clip{}, fmt.Errorf("audio: read chunk header: %w", err)
		}
		chunkID := string(chunkHeader[0:4])
		chunkSize := binary.LittleEndian.Uint32(chunkHeader[4:8])

		switch chunkID {
		case "fmt ":
			body := make([]byte, chunkSize)
			if _, err := io.ReadFull(r, body); err != nil {
				return Clip{}, fmt.Errorf("audio: read fmt chunk: %w", err)
			}
			if len(body) < 16 {
				return Clip{}, fmt.Errorf("audio: fmt chunk too small: %d bytes", len(body))
			}
			format := binary.LittleEndian.Uint16(body[0:2])
			if format != 1 { // PCM
				return Clip{}, fmt.Errorf("audio: unsupported wav format code %d (need PCM)", format)
			}
			channels = int(binary.LittleEndian.Uint16(body[2:4]))
			sampleRate = int(binary.LittleEndian.Uint32(body[4:8]))
			bitDepth = int(binary.LittleEndian.Uint16(body[14:16]))
			if bitDepth != 16 {
				return Clip{}, fmt.Errorf("audio: unsupported bit depth %d (need 16)", bitDepth)
			}
			if channels < 1 || sampleRate <= 0 {
				return Clip{}, fmt.Errorf("audio: invalid wav format: %d channels at %d Hz", channels, sampleRate)
			}
			haveFmt = true

		case "data":
			if !haveFmt {
				return Clip{}, fmt.Errorf("audio: wav data chunk before fmt chunk")
			}
			body := make([]byte, chunkSize)
			if _, err := io.ReadFull(r, body); err != nil {
				return Clip{}, fmt.Errorf("audio: read data chunk: %w", err)
			}
			samples := DecodePCM16(body)
			return Normalize(samples, sampleRate, channels, sampleRate), nil

		default:
			// Skip unknown chunks (LIST, fact, cue, ...). Chunks are
			// word-aligned: odd sizes carry a pad byte.
			skip := int64(chunkSize)
			if chunkSize%2 == 1 {
				skip++
			}
			if _, err := io.CopyN(io.Discard, r, skip); err != nil {
				return Clip{}, fmt.Errorf("audio: skip %s chunk: %w", chunkID, err)
			}
		}
	}
}
