package render

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// PNGPresenter writes every frame to Dir as a PNG file.
// When Name is set the next frame is written as <Name>.png, otherwise frame-NNN.png.
type PNGPresenter struct {
	Dir  string
	Name string

	seq int
}

func (p *PNGPresenter) Present(frame *image.RGBA) error {
	name := p.Name
	if name == "" {
		name = fmt.Sprintf("frame-%03d", p.seq)
	}
	p.seq++
	p.Name = ""

	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(p.Dir, name+".png"))
	if err != nil {
		return err
	}
	if err := png.Encode(f, frame); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return f.Close()
}

func (p *PNGPresenter) Close() error { return nil }
