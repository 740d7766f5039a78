package archive

type targetKind int

const (
	targetUnset targetKind = iota
	targetDeclined
	targetHandle
)

// Target is where finalized posts go: not chosen yet, explicitly declined, or
// a writable directory.
type Target struct {
	kind targetKind
	dir  Directory
}

func Unset() Target {
	return Target{kind: targetUnset}
}

func Declined() Target {
	return Target{kind: targetDeclined}
}

// HandleOf wraps dir. A nil directory is treated as declined.
func HandleOf(dir Directory) Target {
	if dir == nil {
		return Declined()
	}
	return Target{kind: targetHandle, dir: dir}
}

func (t Target) IsUnset() bool    { return t.kind == targetUnset }
func (t Target) IsDeclined() bool { return t.kind == targetDeclined }

func (t Target) Directory() (Directory, bool) {
	if t.kind != targetHandle {
		return nil, false
	}
	return t.dir, true
}

func (t Target) String() string {
	switch t.kind {
	case targetDeclined:
		return "declined"
	case targetHandle:
		return t.dir.Name()
	default:
		return "unset"
	}
}
