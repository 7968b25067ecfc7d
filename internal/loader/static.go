package loader

import (
	"fmt"
	"os"
)

// Static serves assets from memory. Paths it does not know fail like a
// missing file would.
type Static struct {
	Assets map[string]Asset
	Errors map[string]error
}

func (s *Static) Load(path string) *Future {
	if err, ok := s.Errors[path]; ok {
		return Resolved(path, nil, err)
	}
	asset, ok := s.Assets[path]
	if !ok {
		return Resolved(path, nil, fmt.Errorf("%s: %w", path, os.ErrNotExist))
	}
	asset.Path = path
	return Resolved(path, &asset, nil)
}
