package playback

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
type Subscription struct {
	StatusChanged <-chan Status
	StateChanged  <-chan StateChange
	TrackChanged  <-chan TrackChange
	Error         <-chan ErrorEvent
	Done          <-chan struct{}

	// Internal write channels
	statusCh chan Status
	stateCh  chan StateChange
	trackCh  chan TrackChange
	errorCh  chan ErrorEvent
	doneCh   chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		statusCh: make(chan Status, eventBufferSize),
		stateCh:  make(chan StateChange, eventBufferSize),
		trackCh:  make(chan TrackChange, eventBufferSize),
		errorCh:  make(chan ErrorEvent, eventBufferSize),
		doneCh:   make(chan struct{}),
	}
	s.StatusChanged = s.statusCh
	s.StateChanged = s.stateCh
	s.TrackChanged = s.trackCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// sendStatus sends a status snapshot (non-blocking).
func (s *Subscription) sendStatus(st Status) {
	select {
	case s.statusCh <- st:
	default:
		// Drop if buffer full; the next tick carries a fresher snapshot
	}
}

// sendState sends a state change event (non-blocking).
func (s *Subscription) sendState(e StateChange) {
	select {
	case s.stateCh <- e:
	default:
	}
}

// sendTrack sends a track change event (non-blocking).
func (s *Subscription) sendTrack(e TrackChange) {
	select {
	case s.trackCh <- e:
	default:
	}
}

// sendError sends an error event (non-blocking). When the buffer is full the
// oldest queued error is dropped so the latest one, which may end the
// session, always gets through.
func (s *Subscription) sendError(e ErrorEvent) {
	for {
		select {
		case s.errorCh <- e:
			return
		default:
		}
		select {
		case <-s.errorCh:
		default:
		}
	}
}
