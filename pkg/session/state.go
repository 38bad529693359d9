package session

import "fmt"

// State is the capture session state. Idle is both initial and terminal.
type State int

const (
	// StateIdle means no camera is open and no loop is running.
	StateIdle State = iota

	// StateCapturing means the camera is open and the render loop is live.
	StateCapturing

	// StateProcessing means a capture is being processed. The render loop
	// keeps running; only the capture trigger is gated.
	StateProcessing
)

// String returns the wire name of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCapturing:
		return "capturing"
	case StateProcessing:
		return "processing"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Event drives state transitions.
type Event int

const (
	// EventStart opens the camera and begins capturing.
	EventStart Event = iota

	// EventCapture begins processing the current frame.
	EventCapture

	// EventUploadOK settles a capture successfully.
	EventUploadOK

	// EventUploadFail settles a capture with an upload error.
	EventUploadFail

	// EventStop tears the session down. Valid in every state, so stopping
	// is always a transition rather than a separate cancellation path.
	EventStop
)

// String returns the event name.
func (e Event) String() string {
	switch e {
	case EventStart:
		return "start"
	case EventCapture:
		return "capture"
	case EventUploadOK:
		return "upload_ok"
	case EventUploadFail:
		return "upload_fail"
	case EventStop:
		return "stop"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

// Next is the pure transition function. Side effects (camera calls,
// drawing, uploads) happen at the Session boundary, never here.
//
//	Idle       --start-->   Capturing
//	Capturing  --capture--> Processing
//	Processing --upload_ok/upload_fail--> Capturing
//	any        --stop-->    Idle
func Next(s State, e Event) (State, error) {
	if e == EventStop {
		return StateIdle, nil
	}

	switch s {
	case StateIdle:
		if e == EventStart {
			return StateCapturing, nil
		}
	case StateCapturing:
		if e == EventCapture {
			return StateProcessing, nil
		}
	case StateProcessing:
		if e == EventUploadOK || e == EventUploadFail {
			return StateCapturing, nil
		}
	}

	return s, fmt.Errorf("session: invalid transition %s on %s", e, s)
}
