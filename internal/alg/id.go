package alg

import (
	"fmt"
	"strings"

	"github.com/nuphys/nusim/internal/params"
)

// DefaultLabel is the config-set label assumed when an ID omits one. It is
// the store's default label: an unlabelled ID reads that set.
const DefaultLabel = params.DefaultLabel

// ID identifies one configured algorithm: a namespaced name plus the label of
// the parameter set it reads. IDs are pure values; equality over both fields
// defines pool-key uniqueness.
type ID struct {
	Name  string
	Label string
}

// NewID builds an ID, defaulting an empty label to DefaultLabel.
func NewID(name, label string) ID {
	if label == "" {
		label = DefaultLabel
	}
	return ID{Name: name, Label: label}
}

// ParseID parses the combined text form "namespace::Name/Label". The label
// part may be introduced with '/' or '@' and defaults to DefaultLabel when
// absent. An empty name fails with ErrMalformedID.
func ParseID(text string) (ID, error) {
	name := text
	label := DefaultLabel

	if i := strings.IndexAny(text, "/@"); i >= 0 {
		name = text[:i]
		label = text[i+1:]
		if label == "" {
			label = DefaultLabel
		}
	}
	if name == "" {
		return ID{}, fmt.Errorf("%w: %q", ErrMalformedID, text)
	}

	return ID{Name: name, Label: label}, nil
}

// Key renders the canonical "name/label" pool key.
func (id ID) Key() string {
	return id.Name + "/" + id.Label
}

func (id ID) String() string {
	return id.Key()
}
