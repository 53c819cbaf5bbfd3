package service

import (
	"context"
	"testing"

	awskinesis "github.com/aws/aws-sdk-go-v2/service/kinesis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Vlad1s43nko/LogisticsSystem/internal/chart"
	"github.com/Vlad1s43nko/LogisticsSystem/internal/kinesis"
	"github.com/Vlad1s43nko/LogisticsSystem/internal/mapview"
	"github.com/Vlad1s43nko/LogisticsSystem/internal/storage"
	"github.com/Vlad1s43nko/LogisticsSystem/internal/widget"
)

func newTestWidgets(t *testing.T) *WidgetService {
	t.Helper()
	svc, theme := newTestService(t, false)
	return NewWidgetService(svc, theme)
}

func TestWidgetService_ChartRecoloredOnThemeChange(t *testing.T) {
	w := newTestWidgets(t)
	ctx := context.Background()

	created, err := w.CreateChart(ctx, "dashboard", "profitLossChart", chart.KindProfitLoss)
	require.NoError(t, err)
	assert.Equal(t, chart.ThemeLight, created.Chart.Theme)
	assert.Equal(t, "rgba(0, 0, 0, 0.1)", created.Chart.Scales[1].GridColor)

	event := w.ToggleTheme(ctx)
	assert.Equal(t, chart.ThemeEvent{Previous: chart.ThemeLight, Current: chart.ThemeDark}, event)

	state, err := w.Widget(created.Handle)
	require.NoError(t, err)
	assert.Equal(t, WidgetChart, state.Type)
	assert.Equal(t, chart.ThemeDark, state.Chart.Theme)
	assert.Equal(t, "rgba(255, 255, 255, 0.1)", state.Chart.Scales[1].GridColor)
	// dataset values are untouched by recoloring
	assert.Equal(t, created.Chart.Datasets[0].Data, state.Chart.Datasets[0].Data)

	// a chart created after the change starts in the new theme
	later, err := w.CreateChart(ctx, "dashboard", "otherChart", chart.KindDriverPerformance)
	require.NoError(t, err)
	assert.Equal(t, chart.ThemeDark, later.Chart.Theme)

	w.SetTheme(ctx, chart.ThemeDark)
	again, err := w.Widget(created.Handle)
	require.NoError(t, err)
	assert.Equal(t, state.Chart, again.Chart)
}

// seriesHookStore runs onSeries before handing out a chart series
type seriesHookStore struct {
	storage.RecordStore
	onSeries func()
}

func (s *seriesHookStore) GetChartSeries(ctx context.Context, name string) (*storage.ChartSeries, error) {
	s.onSeries()
	return s.RecordStore.GetChartSeries(ctx, name)
}

func TestWidgetService_ThemeChangeWhileCreatingChart(t *testing.T) {
	ctx := context.Background()
	theme := chart.NewThemeNotifier(chart.ThemeLight)
	store := &seriesHookStore{RecordStore: storage.NewSeededMemoryRecordStore()}
	svc := NewDashboardService(store, mapview.NewProjector(mapview.DefaultTileURL), theme, false)
	w := NewWidgetService(svc, theme)

	toggled := false
	store.onSeries = func() {
		if !toggled {
			toggled = true
			w.ToggleTheme(ctx)
		}
	}

	created, err := w.CreateChart(ctx, "dashboard", "profitLossChart", chart.KindProfitLoss)
	require.NoError(t, err)
	require.True(t, toggled)
	assert.Equal(t, chart.ThemeDark, created.Chart.Theme)

	state, err := w.Widget(created.Handle)
	require.NoError(t, err)
	assert.Equal(t, w.Theme(), state.Chart.Theme)
	assert.Equal(t, "rgba(255, 255, 255, 0.1)", state.Chart.Scales[1].GridColor)
}

func TestWidgetService_CreateMap(t *testing.T) {
	w := newTestWidgets(t)
	ctx := context.Background()

	first, err := w.CreateMap(ctx, "truck-T001", "truckMap", mapview.TargetTruck, "T001")
	require.NoError(t, err)
	assert.Empty(t, first.Replaced)
	require.Len(t, first.Map.Markers, 1)

	trip, err := w.CreateMap(ctx, "truck-T001", "truckMap", mapview.TargetTrip, "TR1001")
	require.NoError(t, err)
	assert.Equal(t, first.Handle, trip.Replaced)
	assert.Len(t, trip.Map.PolylinePoints(), 4)
	assert.Equal(t, []widget.Handle{trip.Handle}, w.ViewWidgets("truck-T001"))

	_, err = w.Widget(first.Handle)
	assert.ErrorIs(t, err, widget.ErrUnknownHandle)

	_, err = w.CreateMap(ctx, "truck-T001", "truckMap", "route", "T001")
	assert.ErrorIs(t, err, ErrUnknownMapType)

	_, err = w.CreateMap(ctx, "", "truckMap", mapview.TargetTruck, "T001")
	assert.ErrorIs(t, err, widget.ErrMissingOwner)
}

func TestWidgetService_CreateMapUnavailable(t *testing.T) {
	theme := chart.NewThemeNotifier(chart.ThemeLight)
	svc := NewDashboardService(storage.NewSeededMemoryRecordStore(), mapview.NewProjector(""), theme, false)
	w := NewWidgetService(svc, theme)

	_, err := w.CreateMap(context.Background(), "trip-TR1001", "tripMap", mapview.TargetTrip, "TR1001")
	assert.ErrorIs(t, err, mapview.ErrMapUnavailable)
	assert.Empty(t, w.ViewWidgets("trip-TR1001"))
}

func TestWidgetService_DestroyView(t *testing.T) {
	w := newTestWidgets(t)
	ctx := context.Background()

	mapWidget, err := w.CreateMap(ctx, "driver-D001", "driverMap", mapview.TargetTrip, "TR1002")
	require.NoError(t, err)
	chartWidget, err := w.CreateChart(ctx, "driver-D001", "driverPerformanceChart", chart.KindDriverPerformance)
	require.NoError(t, err)
	other, err := w.CreateChart(ctx, "dashboard", "profitLossChart", chart.KindProfitLoss)
	require.NoError(t, err)

	destroyed := w.DestroyView(ctx, "driver-D001")
	assert.ElementsMatch(t, []widget.Handle{mapWidget.Handle, chartWidget.Handle}, destroyed)
	assert.Empty(t, w.ViewWidgets("driver-D001"))

	_, err = w.Widget(other.Handle)
	assert.NoError(t, err)
}

func TestWidgetService_DestroyWidget(t *testing.T) {
	w := newTestWidgets(t)
	ctx := context.Background()

	created, err := w.CreateChart(ctx, "dashboard", "profitLossChart", chart.KindProfitLoss)
	require.NoError(t, err)

	require.NoError(t, w.DestroyWidget(ctx, created.Handle))
	assert.ErrorIs(t, w.DestroyWidget(ctx, created.Handle), widget.ErrUnknownHandle)
	assert.ErrorIs(t, w.DestroyWidget(ctx, "missing"), widget.ErrUnknownHandle)

	// destroyed charts are no longer recolored
	w.ToggleTheme(ctx)
	_, err = w.Widget(created.Handle)
	assert.ErrorIs(t, err, widget.ErrUnknownHandle)
}

func TestWidgetService_PublishesEvents(t *testing.T) {
	svc, theme := newTestService(t, false)
	mockClient := new(MockKinesisClient)
	mockClient.On("PutRecord", mock.Anything, mock.Anything).Return(&awskinesis.PutRecordOutput{}, nil)
	svc.SetKinesisStreamer(kinesis.NewStreamer(mockClient, "dashboard-events"))
	w := NewWidgetService(svc, theme)
	ctx := context.Background()

	created, err := w.CreateChart(ctx, "dashboard", "profitLossChart", chart.KindProfitLoss)
	require.NoError(t, err)
	_, err = w.CreateChart(ctx, "dashboard", "profitLossChart", chart.KindProfitLoss)
	require.NoError(t, err)
	w.ToggleTheme(ctx)
	w.DestroyView(ctx, "dashboard")

	// created, replaced + created, theme changed, view destroyed
	mockClient.AssertNumberOfCalls(t, "PutRecord", 5)
	assert.NotEmpty(t, created.Handle)
}

func TestWidgetService_SubscribeTheme(t *testing.T) {
	w := newTestWidgets(t)

	events, unsubscribe := w.SubscribeTheme(1)
	defer unsubscribe()

	w.SetTheme(context.Background(), chart.ThemeDark)
	got := <-events
	assert.Equal(t, chart.ThemeDark, got.Current)
	assert.Equal(t, chart.ThemeDark, w.Theme())
}
