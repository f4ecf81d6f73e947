package logger

import (
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// FilterHook rejects entries by collection kind, component or level.
// Entries without the inspected field always pass.
type FilterHook struct {
	allowedKinds      map[string]bool
	allowedComponents map[string]bool
	allowedLevels     map[string]bool

	mu sync.RWMutex
}

// NewFilterHook creates a filter hook from the configuration
func NewFilterHook(cfg *LogConfig) *FilterHook {
	hook := &FilterHook{}
	hook.UpdateFilters(cfg)
	return hook
}

// UpdateFilters replaces the filters
func (h *FilterHook) UpdateFilters(cfg *LogConfig) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.allowedKinds = parseFilter(cfg.FilterKinds)
	h.allowedComponents = parseFilter(cfg.FilterComponents)
	h.allowedLevels = parseFilter(cfg.FilterLevels)
}

// parseFilter turns "a,b,c" into a set; nil means allow all
func parseFilter(filterStr string) map[string]bool {
	filterStr = strings.TrimSpace(filterStr)
	if filterStr == "" || filterStr == "*" {
		return nil
	}

	result := make(map[string]bool)
	for _, v := range strings.Split(filterStr, ",") {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "*" {
			return nil
		}
		if v != "" {
			result[v] = true
		}
	}
	return result
}

// Levels returns every level
func (h *FilterHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire marks rejected entries; AsyncHook skips them
func (h *FilterHook) Fire(entry *logrus.Entry) error {
	if !h.Allows(entry) {
		entry.Data[filteredField] = true
	}
	return nil
}

// Allows reports whether the entry passes every filter
func (h *FilterHook) Allows(entry *logrus.Entry) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.allowedLevels != nil && !h.allowedLevels[strings.ToLower(entry.Level.String())] {
		return false
	}
	if !allowedField(h.allowedKinds, entry.Data[FieldKind]) {
		return false
	}
	return allowedField(h.allowedComponents, entry.Data[FieldComponent])
}

func allowedField(allowed map[string]bool, value interface{}) bool {
	if allowed == nil {
		return true
	}
	s, ok := value.(string)
	if !ok || s == "" {
		return true
	}
	return allowed[strings.ToLower(s)]
}
