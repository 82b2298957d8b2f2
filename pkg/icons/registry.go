package icons

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
)

// Fallback is substituted for icon names the registry cannot resolve.
const Fallback = "HelpCircle"

//go:embed assets/*.svg
var embeddedIcons embed.FS

// Icon is a named, sanitized SVG glyph.
type Icon struct {
	Name string
	SVG  string
}

// Registry maps icon names to sanitized SVG markup. Lookups ignore case and
// separators, so "help-circle" resolves HelpCircle.
type Registry struct {
	mu    sync.RWMutex
	icons map[string]Icon
}

// NewRegistry returns a registry preloaded with the bundled icons.
func NewRegistry() *Registry {
	reg := &Registry{icons: make(map[string]Icon)}
	if err := reg.LoadFS(embeddedIcons, "assets"); err != nil {
		// The embed directive guarantees the assets exist.
		panic(err)
	}
	return reg
}

// NewEmptyRegistry returns a registry without bundled icons.
func NewEmptyRegistry() *Registry {
	return &Registry{icons: make(map[string]Icon)}
}

// Register sanitizes and stores svg under name.
func (r *Registry) Register(name, svg string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("icons: name is required")
	}
	clean := Sanitize(svg)
	if !strings.HasPrefix(clean, "<svg") {
		return fmt.Errorf("icons: %q has no usable svg markup", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.icons[normalize(name)] = Icon{Name: name, SVG: clean}
	return nil
}

// LoadFS registers every .svg file under dir, named after the file.
func (r *Registry) LoadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("icons: read %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".svg" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("icons: read %s: %w", entry.Name(), err)
		}
		if err := r.Register(strings.TrimSuffix(entry.Name(), ".svg"), string(data)); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the icon registered under name.
func (r *Registry) Lookup(name string) (Icon, bool) {
	if r == nil {
		return Icon{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	icon, ok := r.icons[normalize(name)]
	return icon, ok
}

// Resolve returns the named icon, or the fallback icon with fallback set when
// the name is unknown.
func (r *Registry) Resolve(name string) (icon Icon, fallback bool) {
	if icon, ok := r.Lookup(name); ok {
		return icon, false
	}
	icon, _ = r.Lookup(Fallback)
	if icon.Name == "" {
		icon.Name = Fallback
	}
	return icon, true
}

// Names lists the registered icon names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.icons))
	for _, icon := range r.icons {
		names = append(names, icon.Name)
	}
	sort.Strings(names)
	return names
}

func normalize(name string) string {
	var out strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if r == '-' || r == '_' || r == ' ' {
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}
