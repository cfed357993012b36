// Package sliceio loads and saves 3-D volumes as directories of 2-D
// grayscale slice images, the way this engine's reconstruction-pipeline
// ancestor loaded MRI slices and its visualization ancestor extracted and
// saved them back out. PNG replaces the ancestor's JPEG because distance
// values need a lossless round trip.
package sliceio

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gdt/internal/models"
)

// LoadVolume reads every PNG file in dir, sorted by the digits in its
// filename (matching the slice-ordering convention of this engine's
// reconstruction-pipeline ancestor), and stacks them into a 3-D
// models.Image[float64] of shape (width, height, depth) with voxel values
// normalized to [0,1].
func LoadVolume(dir string, spacingX, spacingY, spacingZ float64) (*models.Image[float64], error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("sliceio: reading %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.ToLower(filepath.Ext(e.Name())) == ".png" {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("sliceio: no PNG slices found in %s", dir)
	}

	sort.Slice(names, func(i, j int) bool {
		return extractNumber(names[i]) < extractNumber(names[j])
	})

	var width, height int
	slices := make([][]float64, len(names))
	for i, name := range names {
		data, w, h, err := loadGraySlice(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("sliceio: loading %s: %w", name, err)
		}
		if i == 0 {
			width, height = w, h
		} else if w != width || h != height {
			return nil, fmt.Errorf("sliceio: slice %s is %dx%d, want %dx%d", name, w, h, width, height)
		}
		slices[i] = data
	}

	region := models.NewRegion(width, height, len(slices))
	vol := models.NewImage[float64](region, []float64{spacingX, spacingY, spacingZ})
	for z, data := range slices {
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				vol.Set([]int{x, y, z}, data[y*width+x])
			}
		}
	}
	return vol, nil
}

// extractNumber concatenates every digit of a filename's base name into
// one number (0 if there are none), used to order slices numerically by
// their index rather than lexicographically.
func extractNumber(name string) int {
	base := filepath.Base(name)
	var digits strings.Builder
	for _, c := range base {
		if c >= '0' && c <= '9' {
			digits.WriteRune(c)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return n
}

func loadGraySlice(path string) (data []float64, width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, 0, 0, err
	}

	bounds := img.Bounds()
	width, height = bounds.Dx(), bounds.Dy()
	data = make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, _, _, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			data[y*width+x] = float64(r) / 65535.0
		}
	}
	return data, width, height, nil
}

// LoadSlice2D reads a single grayscale PNG file into a 2-D
// models.Image[float64] with voxel values normalized to [0,1].
func LoadSlice2D(path string, spacingX, spacingY float64) (*models.Image[float64], error) {
	data, width, height, err := loadGraySlice(path)
	if err != nil {
		return nil, fmt.Errorf("sliceio: loading %s: %w", path, err)
	}
	region := models.NewRegion(width, height)
	img := models.NewImage[float64](region, []float64{spacingX, spacingY})
	copy(img.Data, data)
	return img, nil
}

// SaveGraySlice writes a 2-D float64 slice, clamped to [0,1], as a 16-bit
// grayscale PNG.
func SaveGraySlice(data []float64, width, height int, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("sliceio: creating directory for %s: %w", path, err)
	}

	img := image.NewGray16(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			if idx >= len(data) {
				continue
			}
			v := math.Max(0, math.Min(1, data[idx]))
			img.SetGray16(x, y, color.Gray16{Y: uint16(v * 65535.0)})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sliceio: creating %s: %w", path, err)
	}
	defer f.Close()

	return png.Encode(f, img)
}

// ExtractSlice extracts a 2-D plane from a 3-D volume along axis (0=x,
// 1=y, 2=z) at the given position. It generalizes the axis-slicing logic
// of this engine's visualization ancestor, which indexed a flat volume
// buffer directly, to operate on a models.Image instead.
func ExtractSlice(vol *models.Image[float64], axis, position int) (data []float64, width, height int, err error) {
	if vol.Region.Dimension() != 3 {
		return nil, 0, 0, fmt.Errorf("sliceio: ExtractSlice requires a 3-D volume, got %d dimensions", vol.Region.Dimension())
	}
	if axis < 0 || axis > 2 {
		return nil, 0, 0, fmt.Errorf("sliceio: invalid axis %d (must be 0, 1 or 2)", axis)
	}
	if position < 0 || position >= vol.Region.Size[axis] {
		return nil, 0, 0, fmt.Errorf("sliceio: position %d out of range for axis %d (size %d)", position, axis, vol.Region.Size[axis])
	}

	var dims []int
	for k := 0; k < 3; k++ {
		if k != axis {
			dims = append(dims, k)
		}
	}
	width = vol.Region.Size[dims[0]]
	height = vol.Region.Size[dims[1]]

	data = make([]float64, width*height)
	coord := make([]int, 3)
	coord[axis] = position
	for b := 0; b < height; b++ {
		coord[dims[1]] = b
		for a := 0; a < width; a++ {
			coord[dims[0]] = a
			data[b*width+a] = vol.At(coord)
		}
	}
	return data, width, height, nil
}

// SaveVolumeSlices extracts and saves every slice of vol along axis as a
// sequence of grayscale PNGs in outDir, mirroring SaveSliceSequence from
// this engine's visualization ancestor.
func SaveVolumeSlices(vol *models.Image[float64], axis int, outDir string) error {
	if axis < 0 || axis > 2 {
		return fmt.Errorf("sliceio: invalid axis %d (must be 0, 1 or 2)", axis)
	}
	size := vol.Region.Size[axis]
	for pos := 0; pos < size; pos++ {
		data, w, h, err := ExtractSlice(vol, axis, pos)
		if err != nil {
			return err
		}
		path := filepath.Join(outDir, fmt.Sprintf("slice_%03d.png", pos))
		if err := SaveGraySlice(data, w, h, path); err != nil {
			return err
		}
	}
	return nil
}
