package output

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// WritePFM encodes the buffer as a little-endian colour PFM.
// Values stay linear, clamped to [0,1]; scanlines run bottom to top.
func WritePFM(w io.Writer, buf *Buffer) error {
	bw := bufio.NewWriter(w)

	// A negative scale marks little-endian data
	if _, err := fmt.Fprintf(bw, "PF\n%d %d\n-1.0\n", buf.Width, buf.Height); err != nil {
		return fmt.Errorf("failed to write PFM header: %w", err)
	}

	row := make([]byte, 12*buf.Width)
	for y := buf.Height - 1; y >= 0; y-- {
		for x := 0; x < buf.Width; x++ {
			c := buf.Average(x, y)
			off := 12 * x
			binary.LittleEndian.PutUint32(row[off:], math.Float32bits(float32(floatIntensity.Clamp(c.X))))
			binary.LittleEndian.PutUint32(row[off+4:], math.Float32bits(float32(floatIntensity.Clamp(c.Y))))
			binary.LittleEndian.PutUint32(row[off+8:], math.Float32bits(float32(floatIntensity.Clamp(c.Z))))
		}
		if _, err := bw.Write(row); err != nil {
			return fmt.Errorf("failed to write PFM row %d: %w", y, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush PFM: %w", err)
	}
	return nil
}
