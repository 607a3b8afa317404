package domain

import (
	"encoding/json"
	"fmt"
)

// SelectorAll is the sentinel clients send to mean "no restriction".
const SelectorAll = "all"

// Selector picks either everything or an explicit set of document IDs.
// It decodes from JSON as the string "all", a single ID, or an array of IDs.
type Selector struct {
	All bool
	IDs []string
}

// All matches every document.
func AllSelector() Selector {
	return Selector{All: true}
}

// IDSelector matches the given IDs only.
func IDSelector(ids ...string) Selector {
	return Selector{IDs: ids}
}

// IsSingle reports whether the selector names exactly one ID.
func (s Selector) IsSingle() bool {
	return !s.All && len(s.IDs) == 1
}

// UnmarshalJSON accepts "all", "some-id" or ["id-a", "id-b"].
func (s *Selector) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == SelectorAll {
			*s = Selector{All: true}
		} else {
			*s = Selector{IDs: []string{single}}
		}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*s = Selector{IDs: many}
		return nil
	}

	return fmt.Errorf("selector must be %q, an id, or an array of ids", SelectorAll)
}

// MarshalJSON is the inverse of UnmarshalJSON.
func (s Selector) MarshalJSON() ([]byte, error) {
	if s.All {
		return json.Marshal(SelectorAll)
	}
	if len(s.IDs) == 1 {
		return json.Marshal(s.IDs[0])
	}
	return json.Marshal(s.IDs)
}
