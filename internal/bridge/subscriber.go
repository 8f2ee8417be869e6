package bridge

import "sync"

// subscriber delivers notifications in order without ever blocking the
// sender. Whatever does not fit the channel queues in backlog and is drained
// by a flush goroutine.
type subscriber struct {
	ch   chan Notification
	quit chan struct{}

	mu       sync.Mutex
	backlog  []Notification
	flushing bool
	closed   bool
}

func newSubscriber(buffer int) *subscriber {
	return &subscriber{
		ch:   make(chan Notification, buffer),
		quit: make(chan struct{}),
	}
}

func (s *subscriber) send(n Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	if len(s.backlog) == 0 {
		select {
		case s.ch <- n:
			return
		default:
		}
	}

	s.backlog = append(s.backlog, n)
	if !s.flushing {
		s.flushing = true
		go s.flush()
	}
}

// flush drains the backlog into ch. It owns closing ch if close was called
// while it ran.
func (s *subscriber) flush() {
	for {
		s.mu.Lock()
		if s.closed || len(s.backlog) == 0 {
			s.flushing = false
			if s.closed {
				close(s.ch)
			}
			s.mu.Unlock()
			return
		}
		n := s.backlog[0]
		s.mu.Unlock()

		select {
		case s.ch <- n:
			s.mu.Lock()
			if len(s.backlog) > 0 {
				s.backlog = s.backlog[1:]
			}
			s.mu.Unlock()
		case <-s.quit:
		}
	}
}

// close drops the backlog and closes ch. Safe to call more than once.
func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.backlog = nil
	close(s.quit)
	if !s.flushing {
		close(s.ch)
	}
}
