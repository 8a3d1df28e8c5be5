package service

// Listener observes a search as it runs. It never changes what the search returns.
// Find calls it from the goroutine that called Find.
type Listener interface {
	// Match is called for every matching path, root by root in root order
	Match(path string)
	// Error is called once when any root failed
	Error(err error)
	// End is called once when the search is over, whether it failed or not
	End()
}

// ListenerFuncs adapts plain functions to Listener. Nil functions are skipped.
type ListenerFuncs struct {
	OnMatch func(path string)
	OnError func(err error)
	OnEnd   func()
}

func (l ListenerFuncs) Match(path string) {
	if l.OnMatch != nil {
		l.OnMatch(path)
	}
}

func (l ListenerFuncs) Error(err error) {
	if l.OnError != nil {
		l.OnError(err)
	}
}

func (l ListenerFuncs) End() {
	if l.OnEnd != nil {
		l.OnEnd()
	}
}

type listeners []Listener

func (ls listeners) match(path string) {
	for _, l := range ls {
		l.Match(path)
	}
}

func (ls listeners) error(err error) {
	for _, l := range ls {
		l.Error(err)
	}
}

func (ls listeners) end() {
	for _, l := range ls {
		l.End()
	}
}
