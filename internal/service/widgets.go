package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Vlad1s43nko/LogisticsSystem/internal/chart"
	"github.com/Vlad1s43nko/LogisticsSystem/internal/kinesis"
	"github.com/Vlad1s43nko/LogisticsSystem/internal/mapview"
	"github.com/Vlad1s43nko/LogisticsSystem/internal/widget"
)

// ErrUnknownMapType is returned for a map widget that is neither a truck nor a trip
var ErrUnknownMapType = errors.New("unknown map type")

// Widget types
const (
	WidgetMap   = "map"
	WidgetChart = "chart"
)

// WidgetState is a snapshot of one live widget
type WidgetState struct {
	Handle    widget.Handle `json:"handle"`
	Type      string        `json:"type"`
	ViewID    string        `json:"view_id"`
	Target    string        `json:"target"`
	CreatedAt time.Time     `json:"created_at"`
	Replaced  widget.Handle `json:"replaced,omitempty"`
	Map       *mapview.View `json:"map,omitempty"`
	Chart     *chart.Config `json:"chart,omitempty"`
}

// WidgetService owns the live map and chart instances of every view. Chart
// instances are recolored in place when the theme changes.
type WidgetService struct {
	dashboard *DashboardService
	theme     *chart.ThemeNotifier
	maps      *widget.Registry[*mapview.View]
	charts    *widget.Registry[*chart.Config]
}

func NewWidgetService(dashboard *DashboardService, theme *chart.ThemeNotifier) *WidgetService {
	w := &WidgetService{
		dashboard: dashboard,
		theme:     theme,
		maps:      widget.NewRegistry[*mapview.View](),
		charts:    widget.NewRegistry[*chart.Config](),
	}
	theme.OnChange(w.recolor)
	return w
}

func (w *WidgetService) recolor(theme chart.Theme) {
	w.charts.Each(func(inst *widget.Instance[*chart.Config]) {
		chart.ApplyTheme(inst.State, theme)
	})
}

// CreateMap projects the truck or trip with id and draws it into target of
// viewID, replacing a map already drawn there.
func (w *WidgetService) CreateMap(ctx context.Context, viewID, target string, kind mapview.Target, id string) (*WidgetState, error) {
	var (
		view *mapview.View
		err  error
	)
	switch kind {
	case mapview.TargetTruck:
		view, _, err = w.dashboard.TruckMap(ctx, id)
	case mapview.TargetTrip:
		view, _, err = w.dashboard.TripMap(ctx, id)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMapType, kind)
	}
	if err != nil {
		return nil, err
	}

	inst, replaced, err := w.maps.Create(viewID, target, view)
	if err != nil {
		return nil, err
	}
	w.created(ctx, WidgetMap, inst.Handle, viewID, view.ID, replaced)

	return &WidgetState{
		Handle:    inst.Handle,
		Type:      WidgetMap,
		ViewID:    inst.ViewID,
		Target:    inst.Target,
		CreatedAt: inst.CreatedAt,
		Replaced:  replaced,
		Map:       view,
	}, nil
}

// CreateChart builds a chart of kind in the current theme and draws it into
// target of viewID.
func (w *WidgetService) CreateChart(ctx context.Context, viewID, target string, kind chart.Kind) (*WidgetState, error) {
	cfg, err := w.dashboard.Chart(ctx, kind, w.theme.Current())
	if err != nil {
		return nil, err
	}

	inst, replaced, err := w.charts.Create(viewID, target, cfg)
	if err != nil {
		return nil, err
	}

	// a transition that ran before registration skipped this instance
	var snapshot *chart.Config
	err = w.charts.With(inst.Handle, func(i *widget.Instance[*chart.Config]) error {
		chart.ApplyTheme(i.State, w.theme.Current())
		snapshot = i.State.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	w.created(ctx, WidgetChart, inst.Handle, viewID, string(kind), replaced)

	return &WidgetState{
		Handle:    inst.Handle,
		Type:      WidgetChart,
		ViewID:    inst.ViewID,
		Target:    inst.Target,
		CreatedAt: inst.CreatedAt,
		Replaced:  replaced,
		Chart:     snapshot,
	}, nil
}

func (w *WidgetService) created(ctx context.Context, widgetType string, h widget.Handle, viewID, entityID string, replaced widget.Handle) {
	slog.Info("Widget created", "type", widgetType, "handle", h, "view_id", viewID, "entity_id", entityID)
	if replaced != "" {
		w.dashboard.publish(ctx, kinesis.DashboardEvent{
			EventType:  kinesis.EventWidgetDestroyed,
			ViewID:     viewID,
			Handle:     string(replaced),
			Attributes: map[string]string{"type": widgetType, "reason": "replaced"},
		})
	}
	w.dashboard.publish(ctx, kinesis.DashboardEvent{
		EventType:  kinesis.EventWidgetCreated,
		ViewID:     viewID,
		Handle:     string(h),
		EntityID:   entityID,
		Attributes: map[string]string{"type": widgetType},
	})
}

// Widget returns a snapshot of the widget with handle h
func (w *WidgetService) Widget(h widget.Handle) (*WidgetState, error) {
	if inst, err := w.maps.Get(h); err == nil {
		return &WidgetState{
			Handle:    inst.Handle,
			Type:      WidgetMap,
			ViewID:    inst.ViewID,
			Target:    inst.Target,
			CreatedAt: inst.CreatedAt,
			Map:       inst.State,
		}, nil
	}

	var state *WidgetState
	err := w.charts.With(h, func(inst *widget.Instance[*chart.Config]) error {
		state = &WidgetState{
			Handle:    inst.Handle,
			Type:      WidgetChart,
			ViewID:    inst.ViewID,
			Target:    inst.Target,
			CreatedAt: inst.CreatedAt,
			Chart:     inst.State.Clone(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

// DestroyWidget tears down one widget
func (w *WidgetService) DestroyWidget(ctx context.Context, h widget.Handle) error {
	widgetType, viewID, err := w.destroy(h)
	if err != nil {
		return err
	}

	slog.Info("Widget destroyed", "type", widgetType, "handle", h, "view_id", viewID)
	w.dashboard.publish(ctx, kinesis.DashboardEvent{
		EventType:  kinesis.EventWidgetDestroyed,
		ViewID:     viewID,
		Handle:     string(h),
		Attributes: map[string]string{"type": widgetType},
	})
	return nil
}

func (w *WidgetService) destroy(h widget.Handle) (widgetType, viewID string, err error) {
	if inst, err := w.maps.Get(h); err == nil {
		return WidgetMap, inst.ViewID, w.maps.Destroy(h)
	}
	inst, err := w.charts.Get(h)
	if err != nil {
		return "", "", err
	}
	return WidgetChart, inst.ViewID, w.charts.Destroy(h)
}

// DestroyView tears down every widget owned by viewID and returns their handles
func (w *WidgetService) DestroyView(ctx context.Context, viewID string) []widget.Handle {
	handles := append(w.maps.DestroyView(viewID), w.charts.DestroyView(viewID)...)

	slog.Info("View destroyed", "view_id", viewID, "widgets", len(handles))
	w.dashboard.publish(ctx, kinesis.DashboardEvent{
		EventType:  kinesis.EventViewDestroyed,
		ViewID:     viewID,
		Attributes: map[string]string{"widgets": fmt.Sprint(len(handles))},
	})
	return handles
}

// ViewWidgets lists the handles of every widget a view owns, maps first
func (w *WidgetService) ViewWidgets(viewID string) []widget.Handle {
	return append(w.maps.ViewHandles(viewID), w.charts.ViewHandles(viewID)...)
}

// Theme returns the active theme
func (w *WidgetService) Theme() chart.Theme {
	return w.theme.Current()
}

// SetTheme switches the theme and recolors every live chart
func (w *WidgetService) SetTheme(ctx context.Context, theme chart.Theme) chart.ThemeEvent {
	return w.themeChanged(ctx, w.theme.Set(theme))
}

// ToggleTheme flips the theme and recolors every live chart
func (w *WidgetService) ToggleTheme(ctx context.Context) chart.ThemeEvent {
	return w.themeChanged(ctx, w.theme.Toggle())
}

func (w *WidgetService) themeChanged(ctx context.Context, event chart.ThemeEvent) chart.ThemeEvent {
	slog.Info("Theme changed", "previous", event.Previous, "current", event.Current, "charts", w.charts.Len())
	w.dashboard.publish(ctx, kinesis.DashboardEvent{
		EventType:  kinesis.EventThemeChanged,
		Attributes: map[string]string{"previous": string(event.Previous), "current": string(event.Current)},
	})
	return event
}

// SubscribeTheme streams theme events until the returned function is called
func (w *WidgetService) SubscribeTheme(buffer int) (<-chan chart.ThemeEvent, func()) {
	return w.theme.Subscribe(buffer)
}
