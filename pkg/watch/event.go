package watch

import (
	"github.com/arthur-debert/autobarrel/pkg/barrel"
	"github.com/arthur-debert/autobarrel/pkg/match"
)

// Op is the kind of change an Event describes.
type Op int

const (
	// OpAdd is a file that appeared.
	OpAdd Op = iota
	// OpRemove is a file that disappeared or was renamed away.
	OpRemove
	// OpAddDir is a directory that appeared.
	OpAddDir
	// OpRemoveDir is a directory that disappeared or was renamed away.
	OpRemoveDir
	// OpChange is a content or metadata change.
	OpChange
)

// String returns the string representation of the op
func (o Op) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpRemove:
		return "remove"
	case OpAddDir:
		return "addDir"
	case OpRemoveDir:
		return "removeDir"
	case OpChange:
		return "change"
	default:
		return "unknown"
	}
}

// Event is a single filesystem change. Path is slash-separated and relative
// to the watched root.
type Event struct {
	Op   Op
	Path string
}

// Trigger decides which events warrant a pass.
type Trigger struct {
	conv    barrel.Conventions
	include []string
	ignore  []string
}

// NewTrigger creates a trigger for the given include and ignore patterns.
func NewTrigger(conv barrel.Conventions, include, ignore []string) Trigger {
	return Trigger{conv: conv, include: include, ignore: ignore}
}

// Fires reports whether ev should cause a pass. Module files added or
// removed under an include pattern fire, and so does any removed directory.
// Added directories only matter once a module shows up in them. Barrel
// files never fire.
func (tr Trigger) Fires(ev Event) bool {
	if tr.conv.IsBarrel(ev.Path) {
		return false
	}
	if match.Any(tr.ignore, ev.Path) {
		return false
	}

	switch ev.Op {
	case OpAdd, OpRemove:
		return tr.conv.IsModule(ev.Path) && match.Any(tr.include, ev.Path)
	case OpRemoveDir:
		return true
	default:
		return false
	}
}
