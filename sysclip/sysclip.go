// Package sysclip connects the select tool's copy and paste to the system
// clipboard.
package sysclip

import (
	"log"

	"golang.design/x/clipboard"

	"github.com/bloodmagesoftware/motoed/tool"
)

// System is a tool.Clipboard backed by the operating system clipboard.
type System struct{}

func (System) ReadText() ([]byte, bool) {
	data := clipboard.Read(clipboard.FmtText)
	return data, len(data) > 0
}

func (System) WriteText(data []byte) {
	clipboard.Write(clipboard.FmtText, data)
}

// Open returns the system clipboard, or a process-local one when the system
// clipboard is unavailable (no display, cgo disabled).
func Open(logger *log.Logger) tool.Clipboard {
	if logger == nil {
		logger = log.Default()
	}
	if err := clipboard.Init(); err != nil {
		logger.Printf("system clipboard unavailable, using an in-memory one: %v", err)
		return &tool.MemoryClipboard{}
	}
	return System{}
}
