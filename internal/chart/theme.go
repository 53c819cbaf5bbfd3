package chart

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrUnknownTheme is returned for a theme name other than light or dark
var ErrUnknownTheme = errors.New("unknown theme")

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts "light" or "dark" in any case
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTheme, s)
}

// Toggle returns the other theme
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Color is an sRGB color with alpha in [0, 1]
type Color struct {
	R, G, B uint8
	A       float64
}

func rgb(r, g, b uint8) Color { return Color{R: r, G: g, B: b, A: 1} }

// WithAlpha returns the same color at alpha a
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// CSS renders opaque colors as #rrggbb and translucent ones as rgba()
func (c Color) CSS() string {
	if c.A >= 1 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", c.R, c.G, c.B, c.A)
}

// Drawing converts to the raster renderer's color type
func (c Color) Drawing() drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: uint8(c.A*255 + 0.5)}
}

// Palette holds every theme-dependent color of a chart
type Palette struct {
	Grid            Color
	Text            Color
	Background      Color
	BackgroundAlpha float64
	Series          map[string]Color
}

var seriesColors = map[string]Color{
	"revenue":  rgb(0x27, 0xae, 0x60),
	"profit":   rgb(0x27, 0xae, 0x60),
	"earnings": rgb(0x27, 0xae, 0x60),
	"expenses": rgb(0xe7, 0x4c, 0x3c),
	"distance": rgb(0x34, 0x98, 0xdb),
	"fuel":     rgb(0xf3, 0x9c, 0x12),
}

// PaletteFor returns the palette of theme
func PaletteFor(theme Theme) Palette {
	if theme == ThemeDark {
		return Palette{
			Grid:            Color{R: 255, G: 255, B: 255, A: 0.1},
			Text:            rgb(0x95, 0xa5, 0xa6),
			Background:      rgb(0x2c, 0x3e, 0x50),
			BackgroundAlpha: 0.15,
			Series:          seriesColors,
		}
	}
	return Palette{
		Grid:            Color{R: 0, G: 0, B: 0, A: 0.1},
		Text:            rgb(0x7f, 0x8c, 0x8d),
		Background:      rgb(0xff, 0xff, 0xff),
		BackgroundAlpha: 0.1,
		Series:          seriesColors,
	}
}

// SeriesColor returns the line color for a dataset key, falling back to the text color
func (p Palette) SeriesColor(key string) Color {
	if c, ok := p.Series[key]; ok {
		return c
	}
	return p.Text
}

// ThemeEvent is published after every theme transition
type ThemeEvent struct {
	Previous Theme `json:"previous"`
	Current  Theme `json:"current"`
}

// ThemeNotifier is the two-state theme machine. Hooks run synchronously on
// every transition, before subscribers are notified.
type ThemeNotifier struct {
	transitionMu sync.Mutex // serializes transitions

	mu          sync.Mutex
	current     Theme
	hooks       []func(Theme)
	subscribers map[int]chan ThemeEvent
	nextID      int
}

func NewThemeNotifier(initial Theme) *ThemeNotifier {
	return &ThemeNotifier{
		current:     initial,
		subscribers: make(map[int]chan ThemeEvent),
	}
}

// Current returns the active theme
func (n *ThemeNotifier) Current() Theme {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// OnChange registers a hook that recolors live instances on each transition
func (n *ThemeNotifier) OnChange(hook func(Theme)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.hooks = append(n.hooks, hook)
}

// Subscribe returns a channel of theme events and a function that closes it.
// A subscriber whose buffer is full is dropped and its channel closed.
func (n *ThemeNotifier) Subscribe(buffer int) (<-chan ThemeEvent, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	ch := make(chan ThemeEvent, buffer)
	n.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			if sub, ok := n.subscribers[id]; ok {
				delete(n.subscribers, id)
				close(sub)
			}
		})
	}
}

// Set transitions to theme. Setting the current theme again still reruns the
// hooks, which leaves colors unchanged.
func (n *ThemeNotifier) Set(theme Theme) ThemeEvent {
	return n.transition(func(Theme) Theme { return theme })
}

// Toggle flips between light and dark
func (n *ThemeNotifier) Toggle() ThemeEvent {
	return n.transition(Theme.Toggle)
}

func (n *ThemeNotifier) transition(next func(Theme) Theme) ThemeEvent {
	n.transitionMu.Lock()
	defer n.transitionMu.Unlock()

	n.mu.Lock()
	event := ThemeEvent{Previous: n.current, Current: next(n.current)}
	n.current = event.Current
	hooks := append([]func(Theme){}, n.hooks...)
	n.mu.Unlock()

	for _, hook := range hooks {
		hook(event.Current)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	for id, sub := range n.subscribers {
		select {
		case sub <- event:
		default:
			delete(n.subscribers, id)
			close(sub)
		}
	}
	return event
}
