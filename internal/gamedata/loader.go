package gamedata

import (
	"encoding/json"

	"github.com/samdwyer/rpgmap/internal/errors"
)

// Load decodes one of the embedded map data files into T. The files ship
// inside the binary, so a missing or malformed one is an internal error.
func Load[T any](name string) (T, error) {
	var v T

	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return v, errors.Wrap(errors.ErrCodeInternal, err, "map data %s is not embedded", name)
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, errors.Wrap(errors.ErrCodeInternal, err, "decode map data %s", name)
	}
	return v, nil
}
