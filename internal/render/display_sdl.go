//go:build preview

package render

import (
	"fmt"
	"image"
	"runtime"
	"unsafe"

	"github.com/rook-computer/kioskshell/internal/input"
	"github.com/veandco/go-sdl2/sdl"
)

// SDL must be driven from the thread that initialised it.
func init() { runtime.LockOSThread() }

// OpenDisplay opens a desktop preview window instead of the framebuffer.
func OpenDisplay(opts DisplayOptions, l logger) (Presenter, error) {
	p := &SDLPresenter{title: opts.Title, width: opts.Width, height: opts.Height}
	if err := p.init(); err != nil {
		return nil, err
	}
	if l != nil {
		l.Infof("sdl", "preview window %dx%d open", opts.Width, opts.Height)
	}
	return p, nil
}

// SDLPresenter shows frames in an SDL window and turns keyboard and mouse
// input into kiosk events.
type SDLPresenter struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	title    string
	width    int
	height   int
}

var _ input.Poller = (*SDLPresenter)(nil)

func (p *SDLPresenter) init() error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("sdl init: %w", err)
	}
	title := p.title
	if title == "" {
		title = "kioskshell preview"
	}
	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(p.width), int32(p.height), sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	p.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	p.renderer = renderer

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STREAMING,
		int32(p.width), int32(p.height))
	if err != nil {
		return fmt.Errorf("create texture: %w", err)
	}
	p.texture = texture
	return nil
}

func (p *SDLPresenter) Present(frame *image.RGBA) error {
	if frame == nil || len(frame.Pix) == 0 {
		return nil
	}
	rect := &sdl.Rect{X: 0, Y: 0, W: int32(frame.Bounds().Dx()), H: int32(frame.Bounds().Dy())}
	if err := p.texture.Update(rect, unsafe.Pointer(&frame.Pix[0]), frame.Stride); err != nil {
		return fmt.Errorf("update texture: %w", err)
	}
	if err := p.renderer.Clear(); err != nil {
		return err
	}
	if err := p.renderer.Copy(p.texture, nil, nil); err != nil {
		return err
	}
	p.renderer.Present()
	return nil
}

func (p *SDLPresenter) PollEvents() ([]input.Event, bool) {
	var events []input.Event
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			return events, true
		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN {
				continue
			}
			if k := sdlKey(e.Keysym.Sym, e.Repeat != 0); k != input.KeyNone {
				events = append(events, input.KeyEvent(k))
			}
		case *sdl.MouseButtonEvent:
			if e.Type == sdl.MOUSEBUTTONDOWN && e.Button == sdl.BUTTON_LEFT {
				events = append(events, input.TapEvent(int(e.X), int(e.Y)))
			}
		}
	}
	return events, false
}

func sdlKey(sym sdl.Keycode, repeat bool) input.Key {
	var k input.Key
	switch sym {
	case sdl.K_UP:
		k = input.KeyUp
	case sdl.K_DOWN:
		k = input.KeyDown
	case sdl.K_LEFT:
		k = input.KeyLeft
	case sdl.K_RIGHT:
		k = input.KeyRight
	case sdl.K_PAGEUP:
		k = input.KeyPageUp
	case sdl.K_PAGEDOWN:
		k = input.KeyPageDown
	case sdl.K_RETURN, sdl.K_KP_ENTER:
		k = input.KeyEnter
	case sdl.K_ESCAPE, sdl.K_BACKSPACE:
		k = input.KeyBack
	case sdl.K_F4:
		k = input.KeyExit
	default:
		return input.KeyNone
	}
	if repeat && (k == input.KeyEnter || k == input.KeyBack || k == input.KeyExit) {
		return input.KeyNone
	}
	return k
}

func (p *SDLPresenter) Close() error {
	if p.texture != nil {
		_ = p.texture.Destroy()
	}
	if p.renderer != nil {
		_ = p.renderer.Destroy()
	}
	if p.window != nil {
		_ = p.window.Destroy()
	}
	sdl.Quit()
	return nil
}
