// Package chart turns stored time series into declarative chart configs and
// renders them. Configs carry format codes; values are formatted only when a
// tooltip or tick is rendered.
package chart

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Vlad1s43nko/LogisticsSystem/internal/format"
	"github.com/Vlad1s43nko/LogisticsSystem/internal/storage"
)

// ErrUnknownKind is returned for an unsupported chart kind
var ErrUnknownKind = errors.New("unknown chart kind")

type Kind string

const (
	KindProfitLoss        Kind = "profit-loss"
	KindTruckPerformance  Kind = "truck-performance"
	KindDriverPerformance Kind = "driver-performance"
)

// Kinds lists every supported chart kind
var Kinds = []Kind{KindProfitLoss, KindTruckPerformance, KindDriverPerformance}

func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// SeriesName is the name of the stored series a kind is built from
func (k Kind) SeriesName() string {
	switch k {
	case KindProfitLoss:
		return storage.SeriesProfitLoss
	case KindTruckPerformance:
		return storage.SeriesTruckPerformance
	case KindDriverPerformance:
		return storage.SeriesDriverPerformance
	}
	return ""
}

type Dataset struct {
	Key             string      `json:"key"`
	Label           string      `json:"label"`
	Data            []float64   `json:"data"`
	YAxisID         string      `json:"y_axis_id"`
	Tension         float64     `json:"tension"`
	Fill            bool        `json:"fill"`
	BorderColor     string      `json:"border_color"`
	BackgroundColor string      `json:"background_color"`
	Tooltip         format.Code `json:"tooltip_format"`
}

// Scale is one axis. Scales other than "x" are value axes.
type Scale struct {
	ID             string      `json:"id"`
	Position       string      `json:"position"`
	BeginAtZero    bool        `json:"begin_at_zero"`
	Title          string      `json:"title,omitempty"`
	TitleColor     string      `json:"title_color,omitempty"`
	DrawOnChart    bool        `json:"draw_on_chart_area"`
	GridColor      string      `json:"grid_color"`
	TickColor      string      `json:"tick_color"`
	TickFormat     format.Code `json:"tick_format"`
	titleSeriesKey string
}

type Legend struct {
	Position   string `json:"position"`
	Align      string `json:"align"`
	LabelColor string `json:"label_color"`
}

type Interaction struct {
	Mode      string `json:"mode"`
	Intersect bool   `json:"intersect"`
}

// Config is a complete declarative chart description
type Config struct {
	Kind                Kind        `json:"kind"`
	Theme               Theme       `json:"theme"`
	Labels              []string    `json:"labels"`
	Datasets            []Dataset   `json:"datasets"`
	Scales              []Scale     `json:"scales"`
	Legend              Legend      `json:"legend"`
	Interaction         Interaction `json:"interaction"`
	Responsive          bool        `json:"responsive"`
	MaintainAspectRatio bool        `json:"maintain_aspect_ratio"`
}

// layout describes the fixed shape of one chart kind
type layout struct {
	axes     []string // y axis id per dataset
	fill     bool
	tooltips func(label string) format.Code
	scales   []Scale
	legend   Legend
}

func currencyTooltips(string) format.Code { return format.CodeCurrency }

func plainTooltips(string) format.Code { return format.CodePlain }

// driverTooltips formats euro datasets as currency and distance with a km suffix
func driverTooltips(label string) format.Code {
	switch {
	case strings.Contains(label, "€"):
		return format.CodeCurrency
	case strings.Contains(label, "Distance"):
		return format.CodeDistance
	}
	return format.CodeNumber
}

var layouts = map[Kind]layout{
	KindProfitLoss: {
		axes:     []string{"y", "y"},
		fill:     true,
		tooltips: currencyTooltips,
		scales: []Scale{
			{ID: "x", Position: "bottom", DrawOnChart: true, TickFormat: format.CodePlain},
			{ID: "y", Position: "left", BeginAtZero: true, DrawOnChart: true, TickFormat: format.CodeCurrencyCompact},
		},
		legend: Legend{Position: "top", Align: "end"},
	},
	KindTruckPerformance: {
		axes:     []string{"y", "y1", "y2"},
		tooltips: plainTooltips,
		scales: []Scale{
			{ID: "x", Position: "bottom", DrawOnChart: true, TickFormat: format.CodePlain},
			{ID: "y", Position: "left", Title: "Distance (km)", DrawOnChart: true, TickFormat: format.CodePlain, titleSeriesKey: "distance"},
			{ID: "y1", Position: "right", Title: "Fuel (l/100km)", TickFormat: format.CodePlain, titleSeriesKey: "fuel"},
			{ID: "y2", Position: "right", Title: "Profit (€)", TickFormat: format.CodeCurrencyCompact, titleSeriesKey: "profit"},
		},
		legend: Legend{Position: "top", Align: "center"},
	},
	KindDriverPerformance: {
		axes:     []string{"y", "y", "y"},
		tooltips: driverTooltips,
		scales: []Scale{
			{ID: "x", Position: "bottom", DrawOnChart: true, TickFormat: format.CodePlain},
			{ID: "y", Position: "left", BeginAtZero: true, DrawOnChart: true, TickFormat: format.CodePlain},
		},
		legend: Legend{Position: "top", Align: "center"},
	},
}

// BuildSeries builds the config of kind from series, colored for theme.
// Labels and data are copied; series is never modified.
func BuildSeries(kind Kind, series storage.ChartSeries, theme Theme) (*Config, error) {
	l, ok := layouts[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}
	if len(series.Datasets) != len(l.axes) {
		return nil, fmt.Errorf("%w: %s expects %d datasets, got %d",
			storage.ErrInvalidSeries, kind, len(l.axes), len(series.Datasets))
	}

	cfg := &Config{
		Kind:                kind,
		Labels:              append([]string(nil), series.Labels...),
		Datasets:            make([]Dataset, len(series.Datasets)),
		Scales:              append([]Scale(nil), l.scales...),
		Legend:              l.legend,
		Interaction:         Interaction{Mode: "index", Intersect: false},
		Responsive:          true,
		MaintainAspectRatio: false,
	}

	for i, ds := range series.Datasets {
		cfg.Datasets[i] = Dataset{
			Key:     ds.Key,
			Label:   ds.Label,
			Data:    append([]float64(nil), ds.Data...),
			YAxisID: l.axes[i],
			Tension: 0.3,
			Fill:    l.fill,
			Tooltip: l.tooltips(ds.Label),
		}
	}

	ApplyTheme(cfg, theme)
	return cfg, nil
}

// ApplyTheme updates every color field of cfg in place. Applying the same
// theme twice yields the same config.
func ApplyTheme(cfg *Config, theme Theme) {
	palette := PaletteFor(theme)
	cfg.Theme = theme

	for i := range cfg.Datasets {
		ds := &cfg.Datasets[i]
		line := palette.SeriesColor(ds.Key)
		ds.BorderColor = line.CSS()
		ds.BackgroundColor = line.WithAlpha(palette.BackgroundAlpha).CSS()
	}

	for i := range cfg.Scales {
		sc := &cfg.Scales[i]
		sc.GridColor = palette.Grid.CSS()
		sc.TickColor = palette.Text.CSS()
		if sc.titleSeriesKey != "" {
			sc.TitleColor = palette.SeriesColor(sc.titleSeriesKey).CSS()
		}
	}

	cfg.Legend.LabelColor = palette.Text.CSS()
}

// TooltipLabel renders the tooltip line of dataset i at value v
func (c *Config) TooltipLabel(i int, v float64) string {
	ds := c.Datasets[i]
	label := ds.Label
	if label != "" {
		label += ": "
	}
	return label + format.Apply(ds.Tooltip, v)
}

// TickLabel renders value v on the scale with id scaleID
func (c *Config) TickLabel(scaleID string, v float64) string {
	for _, sc := range c.Scales {
		if sc.ID == scaleID {
			return format.Apply(sc.TickFormat, v)
		}
	}
	return format.Apply(format.CodePlain, v)
}

// Clone returns a deep copy of c
func (c *Config) Clone() *Config {
	clone := *c
	clone.Labels = append([]string(nil), c.Labels...)
	clone.Scales = append([]Scale(nil), c.Scales...)
	clone.Datasets = make([]Dataset, len(c.Datasets))
	for i, ds := range c.Datasets {
		ds.Data = append([]float64(nil), ds.Data...)
		clone.Datasets[i] = ds
	}
	return &clone
}
