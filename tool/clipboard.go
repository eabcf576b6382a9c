package tool

// Clipboard moves text between the editor and the rest of the system.
type Clipboard interface {
	ReadText() ([]byte, bool)
	WriteText(data []byte)
}

// MemoryClipboard is a process-local clipboard.
type MemoryClipboard struct {
	data []byte
}

func (m *MemoryClipboard) ReadText() ([]byte, bool) {
	if m.data == nil {
		return nil, false
	}
	return append([]byte(nil), m.data...), true
}

func (m *MemoryClipboard) WriteText(data []byte) {
	m.data = append([]byte(nil), data...)
}
