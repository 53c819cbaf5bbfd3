package chart

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vlad1s43nko/LogisticsSystem/internal/storage"
)

func seedSeries(t *testing.T, name string) storage.ChartSeries {
	t.Helper()
	for _, s := range storage.SeedSnapshot().Series {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("series %s not in seed", name)
	return storage.ChartSeries{}
}

func TestBuildSeries_AllKinds(t *testing.T) {
	for _, kind := range Kinds {
		t.Run(string(kind), func(t *testing.T) {
			series := seedSeries(t, kind.SeriesName())

			cfg, err := BuildSeries(kind, series, ThemeLight)
			require.NoError(t, err)

			assert.Equal(t, series.Labels, cfg.Labels)
			require.Len(t, cfg.Datasets, len(series.Datasets))
			for i, ds := range cfg.Datasets {
				assert.Equal(t, series.Datasets[i].Data, ds.Data)
				assert.Equal(t, series.Datasets[i].Label, ds.Label)
				assert.Equal(t, 0.3, ds.Tension)
			}
			assert.Equal(t, "index", cfg.Interaction.Mode)
			assert.False(t, cfg.Interaction.Intersect)
		})
	}
}

func TestBuildSeries_ProfitLoss(t *testing.T) {
	cfg, err := BuildSeries(KindProfitLoss, seedSeries(t, storage.SeriesProfitLoss), ThemeLight)
	require.NoError(t, err)

	assert.True(t, cfg.Datasets[0].Fill)
	assert.Equal(t, "#27ae60", cfg.Datasets[0].BorderColor)
	assert.Equal(t, "rgba(39, 174, 96, 0.1)", cfg.Datasets[0].BackgroundColor)
	assert.Equal(t, "#e74c3c", cfg.Datasets[1].BorderColor)
	assert.Equal(t, "end", cfg.Legend.Align)
	assert.Equal(t, "Revenue: 38.500,00\u00a0€", cfg.TooltipLabel(0, 38500))
	assert.Equal(t, "38.500\u00a0€", cfg.TickLabel("y", 38500))
}

func TestBuildSeries_TruckPerformanceScales(t *testing.T) {
	cfg, err := BuildSeries(KindTruckPerformance, seedSeries(t, storage.SeriesTruckPerformance), ThemeDark)
	require.NoError(t, err)

	axes := []string{cfg.Datasets[0].YAxisID, cfg.Datasets[1].YAxisID, cfg.Datasets[2].YAxisID}
	assert.Equal(t, []string{"y", "y1", "y2"}, axes)

	scales := map[string]Scale{}
	for _, sc := range cfg.Scales {
		scales[sc.ID] = sc
	}
	require.Len(t, scales, 4)
	assert.Equal(t, "left", scales["y"].Position)
	assert.Equal(t, "right", scales["y1"].Position)
	assert.False(t, scales["y1"].DrawOnChart)
	assert.False(t, scales["y2"].DrawOnChart)
	assert.Equal(t, "#f39c12", scales["y1"].TitleColor)
	assert.Equal(t, "rgba(255, 255, 255, 0.1)", scales["y"].GridColor)
	assert.Equal(t, "#95a5a6", scales["y"].TickColor)
	assert.Equal(t, "rgba(52, 152, 219, 0.15)", cfg.Datasets[0].BackgroundColor)
	assert.False(t, cfg.Datasets[0].Fill)
}

func TestBuildSeries_DriverTooltips(t *testing.T) {
	cfg, err := BuildSeries(KindDriverPerformance, seedSeries(t, storage.SeriesDriverPerformance), ThemeLight)
	require.NoError(t, err)

	assert.Equal(t, "Distance (km): 5.200 km", cfg.TooltipLabel(0, 5200))
	assert.Equal(t, "Expenses (€): 2.300,00\u00a0€", cfg.TooltipLabel(1, 2300))
	assert.Equal(t, "Earnings (€): 6.800,00\u00a0€", cfg.TooltipLabel(2, 6800))
}

func TestBuildSeries_Invalid(t *testing.T) {
	series := seedSeries(t, storage.SeriesProfitLoss)

	_, err := BuildSeries("pie", series, ThemeLight)
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = BuildSeries(KindTruckPerformance, series, ThemeLight)
	assert.ErrorIs(t, err, storage.ErrInvalidSeries)

	short := series.Clone()
	short.Datasets[1].Data = short.Datasets[1].Data[:11]
	_, err = BuildSeries(KindProfitLoss, short, ThemeLight)
	assert.ErrorIs(t, err, storage.ErrInvalidSeries)
}

func TestBuildSeries_DoesNotAliasInput(t *testing.T) {
	series := seedSeries(t, storage.SeriesProfitLoss)
	original := series.Clone()

	cfg, err := BuildSeries(KindProfitLoss, series, ThemeLight)
	require.NoError(t, err)

	cfg.Datasets[0].Data[0] = -1
	cfg.Labels[0] = "changed"
	ApplyTheme(cfg, ThemeDark)

	assert.Equal(t, original, series)
}

func TestApplyTheme_Idempotent(t *testing.T) {
	for _, theme := range []Theme{ThemeLight, ThemeDark} {
		once, err := BuildSeries(KindTruckPerformance, seedSeries(t, storage.SeriesTruckPerformance), ThemeLight)
		require.NoError(t, err)
		ApplyTheme(once, theme)

		twice, err := BuildSeries(KindTruckPerformance, seedSeries(t, storage.SeriesTruckPerformance), ThemeLight)
		require.NoError(t, err)
		ApplyTheme(twice, theme)
		ApplyTheme(twice, theme)

		assert.Equal(t, once, twice)
	}

	light, _ := BuildSeries(KindProfitLoss, seedSeries(t, storage.SeriesProfitLoss), ThemeLight)
	roundTrip, _ := BuildSeries(KindProfitLoss, seedSeries(t, storage.SeriesProfitLoss), ThemeLight)
	ApplyTheme(roundTrip, ThemeDark)
	ApplyTheme(roundTrip, ThemeLight)
	assert.Equal(t, light, roundTrip)
}

func TestConfig_Clone(t *testing.T) {
	cfg, err := BuildSeries(KindDriverPerformance, seedSeries(t, storage.SeriesDriverPerformance), ThemeLight)
	require.NoError(t, err)

	clone := cfg.Clone()
	assert.Equal(t, cfg, clone)

	ApplyTheme(clone, ThemeDark)
	clone.Datasets[0].Data[0] = 0
	assert.Equal(t, ThemeLight, cfg.Theme)
	assert.Equal(t, 5200.0, cfg.Datasets[0].Data[0])
	assert.Equal(t, "rgba(0, 0, 0, 0.1)", cfg.Scales[0].GridColor)
}

func TestParseTheme(t *testing.T) {
	theme, err := ParseTheme(" Dark ")
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, theme)
	assert.Equal(t, ThemeLight, theme.Toggle())

	_, err = ParseTheme("sepia")
	assert.ErrorIs(t, err, ErrUnknownTheme)
}

func TestThemeNotifier(t *testing.T) {
	n := NewThemeNotifier(ThemeLight)

	var seen []Theme
	n.OnChange(func(th Theme) { seen = append(seen, th) })

	events, unsubscribe := n.Subscribe(4)

	event := n.Toggle()
	assert.Equal(t, ThemeEvent{Previous: ThemeLight, Current: ThemeDark}, event)
	assert.Equal(t, ThemeDark, n.Current())

	n.Set(ThemeDark)
	assert.Equal(t, []Theme{ThemeDark, ThemeDark}, seen)

	select {
	case got := <-events:
		assert.Equal(t, ThemeDark, got.Current)
	case <-time.After(time.Second):
		t.Fatal("expected a theme event")
	}

	unsubscribe()
	unsubscribe()

	// drain the second event, then the channel must be closed
	<-events
	_, open := <-events
	assert.False(t, open)

	n.Toggle()
	assert.Equal(t, ThemeLight, n.Current())
}

func TestThemeNotifier_DropsSlowSubscriber(t *testing.T) {
	n := NewThemeNotifier(ThemeLight)

	slow, unsubscribe := n.Subscribe(1)
	n.Toggle()
	n.Toggle()

	got, open := <-slow
	assert.True(t, open)
	assert.Equal(t, ThemeDark, got.Current)
	_, open = <-slow
	assert.False(t, open)

	unsubscribe()
	n.Toggle()
	assert.Equal(t, ThemeDark, n.Current())
}

func TestRender(t *testing.T) {
	for _, kind := range Kinds {
		cfg, err := BuildSeries(kind, seedSeries(t, kind.SeriesName()), ThemeDark)
		require.NoError(t, err)

		var png bytes.Buffer
		require.NoError(t, Render(cfg, FormatPNG, &png))
		assert.True(t, bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")), kind)

		var svg bytes.Buffer
		require.NoError(t, Render(cfg, FormatSVG, &svg))
		assert.Contains(t, svg.String(), "<svg")
	}

	cfg, _ := BuildSeries(KindProfitLoss, seedSeries(t, storage.SeriesProfitLoss), ThemeLight)
	assert.Error(t, Render(cfg, "gif", &bytes.Buffer{}))
}

func TestLegendLabel(t *testing.T) {
	cfg, err := BuildSeries(KindDriverPerformance, seedSeries(t, storage.SeriesDriverPerformance), ThemeLight)
	require.NoError(t, err)

	for i, ds := range cfg.Datasets {
		assert.Equal(t, cfg.TooltipLabel(i, ds.Data[len(ds.Data)-1]), legendLabel(cfg, i))
	}
	assert.Contains(t, legendLabel(cfg, 0), " km")

	cfg.Datasets[1].Data = nil
	assert.Equal(t, cfg.Datasets[1].Label, legendLabel(cfg, 1))
}
