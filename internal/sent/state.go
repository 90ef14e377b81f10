package sent

// fsmState is a fast-channel state, spec §3/§4.3. Transitions are driven
// by explicit assignments in fastframe.go and the nextDataState switch
// below, never by incrementing the
// underlying int — REDESIGN FLAG (spec §9) warns that ordinal arithmetic
// is fragile if the variants are ever reordered.
type fsmState int

const (
	stateCalib fsmState = iota
	stateInit
	stateSync
	stateStatus
	stateSig1D1
	stateSig1D2
	stateSig1D3
	stateSig2D1
	stateSig2D2
	stateSig2D3
	stateCRC
)

func (s fsmState) String() string {
	switch s {
	case stateCalib:
		return "CALIB"
	case stateInit:
		return "INIT"
	case stateSync:
		return "SYNC"
	case stateStatus:
		return "STATUS"
	case stateSig1D1:
		return "SIG1_D1"
	case stateSig1D2:
		return "SIG1_D2"
	case stateSig1D3:
		return "SIG1_D3"
	case stateSig2D1:
		return "SIG2_D1"
	case stateSig2D2:
		return "SIG2_D2"
	case stateSig2D3:
		return "SIG2_D3"
	case stateCRC:
		return "CRC"
	default:
		return "UNKNOWN"
	}
}

// nextDataState returns the state that follows a successfully captured
// data nibble in the given state, per the frame diagram in spec §4.3.
// It panics if called on a state that doesn't capture a data nibble;
// callers only reach it from the payload states.
func nextDataState(s fsmState) fsmState {
	switch s {
	case stateStatus:
		return stateSig1D1
	case stateSig1D1:
		return stateSig1D2
	case stateSig1D2:
		return stateSig1D3
	case stateSig1D3:
		return stateSig2D1
	case stateSig2D1:
		return stateSig2D2
	case stateSig2D2:
		return stateSig2D3
	case stateSig2D3:
		return stateCRC
	default:
		panic("sent: nextDataState called on non-payload state " + s.String())
	}
}
