package wizard

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/jothom/inquiry/internal/inquiry"
	"github.com/jothom/inquiry/internal/tui/theme"
)

// FileItem represents a file or directory in the file picker.
type FileItem struct {
	name  string // Name of file/directory
	path  string // Full path
	isDir bool   // True if directory
}

// Render returns the display line for the item, cut to width.
func (f *FileItem) Render(width int) string {
	icon := "📄"
	if f.isDir {
		icon = "📁"
	}
	return truncate(icon+" "+f.name, width-4)
}

// FilePicker browses directories and picks attachable files.
type FilePicker struct {
	currentPath string
	items       []*FileItem
	added       map[string]bool // paths staged from this picker
	selectedIdx int
	offset      int
	err         string
	width       int
	height      int
}

// NewFilePicker creates a picker rooted at dir, or the working directory
// when dir is empty or unreadable.
func NewFilePicker(dir string) *FilePicker {
	fp := &FilePicker{
		added:  make(map[string]bool),
		width:  60,
		height: 10,
	}
	if dir == "" || fp.loadDirectory(dir) != nil {
		cwd, err := os.Getwd()
		if err != nil {
			cwd = "."
		}
		if err := fp.loadDirectory(cwd); err != nil {
			fp.currentPath = cwd
			fp.err = err.Error()
		}
	}
	return fp
}

// loadDirectory lists path, keeping directories and files the upload step
// accepts.
func (f *FilePicker) loadDirectory(path string) error {
	entries, err := os.ReadDir(path)
	if err != nil {
		return err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	items := make([]*FileItem, 0, len(entries)+1)
	if absPath != filepath.Dir(absPath) {
		items = append(items, &FileItem{name: "..", path: filepath.Dir(absPath), isDir: true})
	}

	var dirs, files []*FileItem
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		fullPath := filepath.Join(absPath, entry.Name())
		switch {
		case entry.IsDir():
			dirs = append(dirs, &FileItem{name: entry.Name(), path: fullPath, isDir: true})
		case inquiry.Accepts(entry.Name()):
			files = append(files, &FileItem{name: entry.Name(), path: fullPath})
		}
	}

	byName := func(list []*FileItem) {
		sort.Slice(list, func(i, j int) bool {
			return strings.ToLower(list[i].name) < strings.ToLower(list[j].name)
		})
	}
	byName(dirs)
	byName(files)

	f.items = append(append(items, dirs...), files...)
	f.currentPath = absPath
	f.selectedIdx = 0
	f.offset = 0
	f.err = ""
	return nil
}

// CurrentDir returns the directory being browsed.
func (f *FilePicker) CurrentDir() string {
	return f.currentPath
}

// SetSize updates the dimensions for the file picker.
func (f *FilePicker) SetSize(width, height int) {
	f.width = width
	f.height = height
}

func (f *FilePicker) visibleRows() int {
	return max(3, f.height-6)
}

// Update handles key presses. Enter opens a directory, or adds a file and
// closes the picker. Space adds a file and keeps browsing.
func (f *FilePicker) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if f.selectedIdx > 0 {
			f.selectedIdx--
		}
	case "down", "j":
		if f.selectedIdx < len(f.items)-1 {
			f.selectedIdx++
		}
	case "space":
		item := f.current()
		if item == nil || item.isDir || f.added[item.path] {
			return nil
		}
		f.added[item.path] = true
		if f.selectedIdx < len(f.items)-1 {
			f.selectedIdx++
		}
		f.scroll()
		return loadFilesCmd(item.path, false)
	case "enter":
		item := f.current()
		if item == nil {
			return nil
		}
		if item.isDir {
			f.open(item.path)
			return nil
		}
		if f.added[item.path] {
			return emit(FilesPickedMsg{Done: true})
		}
		f.added[item.path] = true
		return loadFilesCmd(item.path, true)
	case "backspace":
		if parent := filepath.Dir(f.currentPath); parent != f.currentPath {
			f.open(parent)
		}
	}

	f.scroll()
	return nil
}

func (f *FilePicker) open(path string) {
	if err := f.loadDirectory(path); err != nil {
		f.err = err.Error()
	}
}

func (f *FilePicker) current() *FileItem {
	if f.selectedIdx < 0 || f.selectedIdx >= len(f.items) {
		return nil
	}
	return f.items[f.selectedIdx]
}

func (f *FilePicker) scroll() {
	rows := f.visibleRows()
	if f.selectedIdx < f.offset {
		f.offset = f.selectedIdx
	}
	if f.selectedIdx >= f.offset+rows {
		f.offset = f.selectedIdx - rows + 1
	}
}

// Forget clears the staged marks, after the upload list was cleared.
func (f *FilePicker) Forget() {
	f.added = make(map[string]bool)
}

// Unmark lets path be added again, after its file was removed from the
// upload list or could not be read.
func (f *FilePicker) Unmark(path string) {
	delete(f.added, path)
}

// loadFilesCmd reads a file off the event loop.
func loadFilesCmd(path string, done bool) tea.Cmd {
	return func() tea.Msg {
		a, err := inquiry.LoadAttachment(path)
		if err != nil {
			return FilePickErrorMsg{Path: path, Err: err}
		}
		return FilesPickedMsg{Files: []inquiry.Attachment{a}, Done: done}
	}
}

// View renders the file picker.
func (f *FilePicker) View() string {
	st := theme.Current().S()
	var b strings.Builder

	b.WriteString(st.Muted.Render(truncate(f.currentPath, f.width)))
	b.WriteString("\n\n")

	hasFiles := false
	for _, item := range f.items {
		if !item.isDir {
			hasFiles = true
			break
		}
	}

	end := min(len(f.items), f.offset+f.visibleRows())
	for i := f.offset; i < end; i++ {
		item := f.items[i]
		mark := "  "
		if f.added[item.path] {
			mark = "✓ "
		}
		line := mark + item.Render(f.width)
		if i == f.selectedIdx {
			b.WriteString(st.Selected.Render("▸ " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	if !hasFiles {
		b.WriteString(st.Muted.Italic(true).Render("No images or PDFs in this directory"))
		b.WriteString("\n")
	}
	if f.err != "" {
		b.WriteString(renderError(f.err))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderHintBar(
		"↑↓", "navigate",
		"space", "add",
		"enter", "add & close",
		"backspace", "up",
		"esc", "cancel",
	))
	return b.String()
}
