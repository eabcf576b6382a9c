package project

import (
	"log"

	"github.com/bloodmagesoftware/motoed/engine"
	"github.com/bloodmagesoftware/motoed/store"
	"github.com/bloodmagesoftware/motoed/tool"
)

// StoreOptions returns the store settings of the editor section.
func (e EditorConfig) StoreOptions(logger *log.Logger) store.Options {
	return store.Options{
		MinZoom:         e.MinZoom,
		MaxZoom:         e.MaxZoom,
		HistoryThrottle: e.HistoryThrottle,
		HistoryLimit:    e.HistoryLimit,
		Logger:          logger,
	}
}

// ToolConfig returns the hit-test radii and picture list. The clipboard is
// left to the caller.
func (e EditorConfig) ToolConfig(clip tool.Clipboard) tool.Config {
	cfg := tool.DefaultConfig()
	cfg.VertexThresholdPx = e.VertexThresholdPx
	cfg.EdgeThresholdPx = e.EdgeThresholdPx
	cfg.ObjectThresholdPx = e.ObjectThresholdPx
	cfg.CloseThresholdPx = e.CloseThresholdPx
	if len(e.PictureNames) > 0 {
		cfg.PictureNames = e.PictureNames
	}
	if clip != nil {
		cfg.Clipboard = clip
	}
	return cfg
}

// EngineOptions returns the camera settings and tool config of the editor
// section.
func (e EditorConfig) EngineOptions(clip tool.Clipboard, logger *log.Logger) engine.Options {
	return engine.Options{
		PanSpeed:      e.PanSpeed,
		ArrowPanStep:  e.ArrowPanStep,
		ZoomStep:      e.ZoomStep,
		WheelZoomStep: e.WheelZoomStep,
		FitPadding:    e.FitPadding,
		FitFraction:   e.FitFraction,
		Tools:         e.ToolConfig(clip),
		Logger:        logger,
	}
}
