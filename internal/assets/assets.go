package assets

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	_ "golang.org/x/image/webp"
)

// Fixed locations the kiosk image ships its assets at.
const (
	DefaultFontPath   = "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf"
	DefaultFontSize   = 24
	DefaultBannerPath = "assets/sit.png"
	DefaultSleepGlob  = "assets/sleep/frame_*.png"
)

// LoadFontFace reads a TrueType or OpenType font file and returns a face at sizePt.
// TrueType outlines go through freetype; CFF-flavoured OpenType falls back to x/image.
func LoadFontFace(path string, sizePt float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return ParseFontFace(data, sizePt)
}

func ParseFontFace(data []byte, sizePt float64) (font.Face, error) {
	if sizePt <= 0 {
		sizePt = DefaultFontSize
	}
	if tt, err := truetype.Parse(data); err == nil {
		return truetype.NewFace(tt, &truetype.Options{Size: sizePt, DPI: 72, Hinting: font.HintingFull}), nil
	}
	otf, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(otf, &opentype.FaceOptions{Size: sizePt, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("font face: %w", err)
	}
	return face, nil
}

// LoadImage decodes a PNG, JPEG or WebP file.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// LoadFrames decodes every image matching pattern, ordered frame_2 before
// frame_10. No match is not an error; the animation is optional.
func LoadFrames(pattern string) ([]image.Image, error) {
	if pattern == "" {
		return nil, nil
	}
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("frames %s: %w", pattern, err)
	}
	sort.Slice(paths, func(i, j int) bool {
		if len(paths[i]) != len(paths[j]) {
			return len(paths[i]) < len(paths[j])
		}
		return paths[i] < paths[j]
	})
	frames := make([]image.Image, 0, len(paths))
	for _, path := range paths {
		img, err := LoadImage(path)
		if err != nil {
			return nil, err
		}
		frames = append(frames, img)
	}
	return frames, nil
}
