// Package report - Plain-text detection result files.
//
// Each detection is one line:
//
//	<label> <x> <y> <width> <height> <confidence>
//
// with coordinates in original image pixels and five decimals per float.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-yolo/images"
	"github.com/nvr-ai/go-yolo/models/postprocess"
)

// Extension is the file extension of result files.
const Extension = ".txt"

// Write serializes detections to w, one line each, in slice order.
func Write(w io.Writer, dets []postprocess.Detection) error {
	bw := bufio.NewWriter(w)
	for _, d := range dets {
		if _, err := fmt.Fprintf(bw, "%d %.5f %.5f %.5f %.5f %.5f\n",
			d.Label, d.Box.X, d.Box.Y, d.Box.Width, d.Box.Height, d.Confidence); err != nil {
			return errors.Wrap(err, "writing detection")
		}
	}
	return errors.Wrap(bw.Flush(), "flushing detections")
}

// FileName returns the result file name for an image: its base name with the
// last extension replaced by Extension.
//
// @example
// FileName("/data/images/street.scene.jpg") // "street.scene.txt"
func FileName(imagePath string) string {
	base := filepath.Base(imagePath)
	if ext := filepath.Ext(base); ext != "" && ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	return base + Extension
}

// WriteFile writes the detections of imagePath to dir/FileName(imagePath).
//
// Arguments:
//   - dir: The output directory. "" writes to the working directory.
//   - imagePath: The source image path; only its base name is used.
//   - dets: The detections to write.
//
// Returns:
//   - string: The path of the written file.
//   - error: If the file cannot be created or written.
func WriteFile(dir, imagePath string, dets []postprocess.Detection) (string, error) {
	path := filepath.Join(dir, FileName(imagePath))

	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(err, "creating %s", path)
	}

	if err := Write(f, dets); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrapf(err, "closing %s", path)
	}
	return path, nil
}

// Read parses result lines written by Write. Blank lines are skipped.
func Read(r io.Reader) ([]postprocess.Detection, error) {
	var dets []postprocess.Detection

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 6 {
			return nil, errors.Errorf("line %d: expected 6 fields, got %d", line, len(fields))
		}

		label, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: label", line)
		}

		var vals [5]float32
		for i := range vals {
			v, err := strconv.ParseFloat(fields[i+1], 32)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: field %d", line, i+2)
			}
			vals[i] = float32(v)
		}

		dets = append(dets, postprocess.Detection{
			Box:        images.Rect{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]},
			Label:      label,
			Confidence: vals[4],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading detections")
	}
	return dets, nil
}

// ReadFile parses a result file.
func ReadFile(path string) ([]postprocess.Detection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()
	return Read(f)
}
