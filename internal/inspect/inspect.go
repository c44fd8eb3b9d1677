// Package inspect probes matched triples to flag groups whose images do not
// look related. Verification is informational only and never changes what
// gets matched or copied.
package inspect

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/corona10/goimagehash"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp"

	"tripletmatch/internal/models"
)

// Probe decodes images and computes perceptual hashes
type Probe struct{}

// NewProbe creates a new Probe
func NewProbe() *Probe {
	return &Probe{}
}

// TripleReport holds the probes for one matched triple and the largest
// pairwise perceptual distance between them.
type TripleReport struct {
	Probes      [3]*models.ImageProbe
	MaxDistance int
}

// ProbeImage decodes the image at path and returns its metadata and
// perceptual hash.
func (p *Probe) ProbeImage(path string) (*models.ImageProbe, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// Check for EXIF data before decoding, as Decode consumes the reader.
	hasExif := checkExif(path)

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	hash, err := goimagehash.PerceptionHash(img)
	if err != nil {
		return nil, fmt.Errorf("failed to compute hash: %w", err)
	}

	bounds := img.Bounds()
	return &models.ImageProbe{
		Path:    path,
		Hash:    hash.GetHash(),
		Width:   bounds.Dx(),
		Height:  bounds.Dy(),
		Format:  strings.ToLower(format),
		HasExif: hasExif,
	}, nil
}

// VerifyTriple probes all three files of a matched group and reports the
// maximum pairwise Hamming distance between their perceptual hashes.
func (p *Probe) VerifyTriple(paths [3]string) (*TripleReport, error) {
	report := &TripleReport{}
	for i, path := range paths {
		probe, err := p.ProbeImage(path)
		if err != nil {
			return nil, fmt.Errorf("failed to probe %s: %w", path, err)
		}
		report.Probes[i] = probe
	}

	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			dist := HammingDistance(report.Probes[i].Hash, report.Probes[j].Hash)
			if dist > report.MaxDistance {
				report.MaxDistance = dist
			}
		}
	}

	return report, nil
}

// checkExif checks if an image file contains EXIF data
func checkExif(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	_, err = exif.Decode(file)
	return err == nil
}

// HammingDistance calculates the Hamming distance between two hashes
func HammingDistance(hash1, hash2 uint64) int {
	xor := hash1 ^ hash2
	count := 0
	for xor != 0 {
		count++
		xor &= xor - 1
	}
	return count
}
