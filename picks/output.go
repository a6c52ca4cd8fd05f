package picks

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// Column names of the corrected output.
const (
	OutputColumnP = "itp"
	OutputColumnS = "its"
)

// ErrLengthMismatch indicates P and S columns of different length.
var ErrLengthMismatch = errors.New("picks: P and S columns differ in length")

// WriteCSV writes the corrected itp / its columns with a header row.
func WriteCSV(w io.Writer, p, s []int) error {
	if len(p) != len(s) {
		return fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(p), len(s))
	}

	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(OutputColumnP + "," + OutputColumnS + "\n"); err != nil {
		return err
	}

	buf := make([]byte, 0, 32)
	for i := range p {
		buf = buf[:0]
		buf = strconv.AppendInt(buf, int64(p[i]), 10)
		buf = append(buf, ',')
		buf = strconv.AppendInt(buf, int64(s[i]), 10)
		buf = append(buf, '\n')

		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteCSVFile writes the corrected columns to filename. The data goes to a
// temporary file in the same directory which is renamed over filename only
// after a successful write, so a failed run never leaves a truncated file.
func WriteCSVFile(filename string, p, s []int) (err error) {
	dir := filepath.Dir(filename)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filename)+".*.tmp")
	if err != nil {
		return fmt.Errorf("picks: create temp output: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("picks: chmod temp output: %w", err)
	}

	if err = WriteCSV(tmp, p, s); err != nil {
		return fmt.Errorf("picks: write %s: %w", filename, err)
	}

	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("picks: sync %s: %w", filename, err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("picks: close %s: %w", filename, err)
	}

	if err = os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("picks: rename into %s: %w", filename, err)
	}

	return nil
}
