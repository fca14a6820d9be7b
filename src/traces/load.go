package traces

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Load opens a capture by extension: .xlsx via LoadWorkbook, anything else as JSONL.
func Load(path string, opts LoadOptions) (*Capture, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		c, err := LoadWorkbook(path, opts.Sheet)
		if err != nil {
			return nil, err
		}
		c.Set = c.Set.Filter(opts.LabelFilter)
		if opts.MaxTraces > 0 && len(c.Set) > opts.MaxTraces {
			c.Set = c.Set[len(c.Set)-opts.MaxTraces:]
		}
		return c, nil
	case ".xls":
		return nil, fmt.Errorf("%s: legacy .xls workbooks are not supported; save as .xlsx", path)
	default:
		return LoadJSONL(path, opts)
	}
}
