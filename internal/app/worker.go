package app

// worker is the join handle of the background goroutine.
type worker struct {
	done     chan struct{}
	panicked any
}

// spawn runs fn on a new goroutine. A panic in fn is recovered and reported
// by join.
func spawn(fn func()) *worker {
	w := &worker{done: make(chan struct{})}
	go func() {
		defer close(w.done)
		defer func() {
			if r := recover(); r != nil {
				w.panicked = r
			}
		}()
		fn()
	}()
	return w
}

// join waits for the goroutine to exit and returns its panic value, if any.
func (w *worker) join() any {
	<-w.done
	return w.panicked
}
