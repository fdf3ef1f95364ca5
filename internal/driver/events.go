package driver

// Stage identifies a step in per-file generation, in execution order.
type Stage uint8

const (
	StageDecode Stage = iota
	StageEmit
	StageCheck
	StageWrite
)

func (s Stage) String() string {
	switch s {
	case StageDecode:
		return "decode"
	case StageEmit:
		return "emit"
	case StageCheck:
		return "check"
	case StageWrite:
		return "write"
	default:
		return "unknown"
	}
}

// Event reports one completed (or failed) stage for one file.
type Event struct {
	Path  string
	Stage Stage
	Err   error
}

func (o Options) emit(ev Event) {
	if o.Events != nil {
		o.Events <- ev
	}
}
