package chart

import (
	"fmt"
	"io"

	gochart "github.com/wcharczuk/go-chart/v2"
)

// Image formats accepted by Render
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

const (
	renderWidth  = 960
	renderHeight = 400
)

var titles = map[Kind]string{
	KindProfitLoss:        "Profit & Loss",
	KindTruckPerformance:  "Truck Performance",
	KindDriverPerformance: "Driver Performance",
}

// Render draws cfg as a line chart in the given image format. The "y" scale is
// the primary axis; every other value scale shares the secondary axis. Legend
// entries carry the formatted latest value of each dataset.
func Render(cfg *Config, imageFormat string, w io.Writer) error {
	var provider gochart.RendererProvider
	switch imageFormat {
	case FormatPNG, "":
		provider = gochart.PNG
	case FormatSVG:
		provider = gochart.SVG
	default:
		return fmt.Errorf("unsupported image format %q", imageFormat)
	}

	palette := PaletteFor(cfg.Theme)
	text := gochart.Style{FontColor: palette.Text.Drawing()}
	grid := gochart.Style{StrokeColor: palette.Grid.Drawing(), StrokeWidth: 1}

	xs := make([]float64, len(cfg.Labels))
	ticks := make([]gochart.Tick, len(cfg.Labels))
	for i, label := range cfg.Labels {
		xs[i] = float64(i)
		ticks[i] = gochart.Tick{Value: float64(i), Label: label}
	}

	var hasSecondary bool
	series := make([]gochart.Series, 0, len(cfg.Datasets))
	for i, ds := range cfg.Datasets {
		axis := gochart.YAxisPrimary
		if ds.YAxisID != "y" {
			axis = gochart.YAxisSecondary
			hasSecondary = true
		}

		line := palette.SeriesColor(ds.Key)
		style := gochart.Style{
			StrokeColor: line.Drawing(),
			StrokeWidth: 2,
			DotColor:    line.Drawing(),
			DotWidth:    3,
		}
		if ds.Fill {
			style.FillColor = line.WithAlpha(palette.BackgroundAlpha).Drawing()
		}

		series = append(series, gochart.ContinuousSeries{
			Name:    legendLabel(cfg, i),
			XValues: xs,
			YValues: ds.Data,
			Style:   style,
			YAxis:   axis,
		})
	}

	ch := gochart.Chart{
		Title:      titles[cfg.Kind],
		TitleStyle: text,
		Width:      renderWidth,
		Height:     renderHeight,
		Background: gochart.Style{
			FillColor: palette.Background.Drawing(),
			Padding:   gochart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Canvas: gochart.Style{FillColor: palette.Background.Drawing()},
		XAxis: gochart.XAxis{
			Style:          text,
			Ticks:          ticks,
			GridMajorStyle: grid,
		},
		YAxis: gochart.YAxis{
			Style:          text,
			GridMajorStyle: grid,
			ValueFormatter: tickFormatter(cfg, "y"),
		},
		Series: series,
	}
	if beginsAtZero(cfg, "y") {
		ch.YAxis.Range = &gochart.ContinuousRange{Min: 0, Max: maxOnAxis(cfg, "y")}
	}
	if hasSecondary {
		ch.YAxisSecondary = gochart.YAxis{
			Style:          text,
			ValueFormatter: tickFormatter(cfg, secondaryScaleID(cfg)),
		}
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}

	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("failed to render %s chart: %w", cfg.Kind, err)
	}
	return nil
}

// legendLabel is the tooltip line of dataset i at its latest value
func legendLabel(cfg *Config, i int) string {
	data := cfg.Datasets[i].Data
	if len(data) == 0 {
		return cfg.Datasets[i].Label
	}
	return cfg.TooltipLabel(i, data[len(data)-1])
}

func tickFormatter(cfg *Config, scaleID string) gochart.ValueFormatter {
	return func(v interface{}) string {
		if f, ok := v.(float64); ok {
			return cfg.TickLabel(scaleID, f)
		}
		return fmt.Sprintf("%v", v)
	}
}

func beginsAtZero(cfg *Config, scaleID string) bool {
	for _, sc := range cfg.Scales {
		if sc.ID == scaleID {
			return sc.BeginAtZero
		}
	}
	return false
}

func maxOnAxis(cfg *Config, scaleID string) float64 {
	max := 1.0
	for _, ds := range cfg.Datasets {
		if ds.YAxisID != scaleID {
			continue
		}
		for _, v := range ds.Data {
			if v > max {
				max = v
			}
		}
	}
	return max * 1.1
}

// secondaryScaleID picks the tick format of the last non-primary scale, which
// carries the widest values on the shared secondary axis
func secondaryScaleID(cfg *Config) string {
	id := "y"
	for _, sc := range cfg.Scales {
		if sc.ID != "x" && sc.ID != "y" {
			id = sc.ID
		}
	}
	return id
}
