package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ID distinguishes rows the backend already knows from rows created locally
// during an edit session. Local placeholder ids carry a known prefix and must
// never reach the backend as real identifiers; Wire is the only way to obtain
// an outbound id and it withholds placeholders.
type ID string

const (
	PrefixNetwork        = "network"
	PrefixRegion         = "region"
	PrefixColor          = "color"
	PrefixDefaultStorage = "ds"
	PrefixStorage        = "s"
)

var localPrefixes = []string{
	PrefixNetwork + "-",
	PrefixRegion + "-",
	PrefixColor + "-",
	PrefixDefaultStorage + "-",
	PrefixStorage + "-",
}

// NewLocalID generates a placeholder id for a row that has not been persisted.
func NewLocalID(prefix string) ID {
	return ID(fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), uuid.NewString()[:8]))
}

// PersistedID wraps a durable backend identifier.
func PersistedID(raw string) ID { return ID(raw) }

// Local reports whether the id is a client-only placeholder.
func (id ID) Local() bool {
	for _, p := range localPrefixes {
		if strings.HasPrefix(string(id), p) {
			return true
		}
	}
	return false
}

// Wire returns the id to place on an outbound payload. The second return is
// false for empty and placeholder ids, which signals the backend to create a
// new row.
func (id ID) Wire() (string, bool) {
	if id == "" || id.Local() {
		return "", false
	}
	return string(id), true
}

func (id ID) String() string { return string(id) }
