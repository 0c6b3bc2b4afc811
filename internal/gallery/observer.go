package gallery

// Observer receives the new cursor value after every cursor change.
// The cursor is -1 when nothing is selected.
type Observer func(index int)

// SetObserver replaces the registered observer. Passing nil unregisters it.
func (f *Fetcher) SetObserver(observer Observer) {
	f.mu.Lock()
	f.observer = observer
	f.mu.Unlock()
}

// notify must be called with the owner lock held so observers never overlap.
func (f *Fetcher) notify(index int) {
	f.mu.RLock()
	observer := f.observer
	f.mu.RUnlock()

	if observer != nil {
		observer(index)
	}
}
