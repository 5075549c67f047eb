package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/strayfield/roadgrade/internal/terrain"
)

// pgmMaxGray is the PGM gray range; heights in [0,1] map onto it.
const pgmMaxGray = 255

// WritePGM writes the heightfield as a plain (P2) PGM image, one gray
// level per cell, row-major with y as rows. Handy for eyeballing the
// graded terrain in any image viewer.
func WritePGM(w io.Writer, hf *terrain.Heightfield) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "P2\n%d %d\n%d\n", hf.Width, hf.Height, pgmMaxGray)
	for y := 0; y < hf.Height; y++ {
		for x := 0; x < hf.Width; x++ {
			v := hf.At(x, y)
			if v < 0 {
				v = 0
			}
			if v > 1 {
				v = 1
			}
			if x > 0 {
				fmt.Fprint(bw, " ")
			}
			fmt.Fprintf(bw, "%d", int(v*pgmMaxGray+0.5))
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

// SavePGM writes the heightfield to a file, creating parent directories.
func SavePGM(path string, hf *terrain.Heightfield) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := WritePGM(f, hf); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
