package media

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

const (
	wavFormatIEEEFloat = 3
	wavBitsPerSample   = 32
)

// WriteWAV stores a [C, S] waveform as a 32-bit float WAV file.
func WriteWAV(path string, waveform Tensor, sampleRate int) error {
	if err := waveform.Validate(); err != nil {
		return fmt.Errorf("write wav: %w", err)
	}
	if waveform.Dim() != 2 {
		return fmt.Errorf("write wav: expected [channels, samples], got %v", waveform.Shape)
	}
	if sampleRate <= 0 {
		return fmt.Errorf("write wav: invalid sample rate %d", sampleRate)
	}
	channels, samples := waveform.Shape[0], waveform.Shape[1]

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write wav: %w", err)
	}
	defer file.Close()

	blockAlign := channels * wavBitsPerSample / 8
	dataSize := samples * blockAlign

	header := make([]byte, 44)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+dataSize))
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], wavFormatIEEEFloat)
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(sampleRate*blockAlign))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], wavBitsPerSample)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataSize))

	w := bufio.NewWriter(file)
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("write wav: %w", err)
	}
	var sample [4]byte
	for i := 0; i < samples; i++ {
		for c := 0; c < channels; c++ {
			binary.LittleEndian.PutUint32(sample[:], math.Float32bits(waveform.Data[c*samples+i]))
			if _, err := w.Write(sample[:]); err != nil {
				return fmt.Errorf("write wav: %w", err)
			}
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write wav: %w", err)
	}
	return file.Close()
}
