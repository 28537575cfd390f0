package fetcher

// Subscribe returns a channel that receives a snapshot after every state
// transition, starting with the current state. A slow reader only ever sees
// the latest snapshot. Call the returned func to unsubscribe; it closes the
// channel.
func (c *Controller) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)

	c.mu.RLock()
	c.subMu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = ch
	ch <- c.snapshotLocked()
	c.subMu.Unlock()
	c.mu.RUnlock()

	return ch, func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()

		if sub, ok := c.subscribers[id]; ok {
			delete(c.subscribers, id)
			close(sub)
		}
	}
}

// publishLocked delivers the current state to subscribers. Callers hold c.mu.
func (c *Controller) publishLocked() {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	if len(c.subscribers) == 0 {
		return
	}

	state := c.snapshotLocked()
	for _, ch := range c.subscribers {
		select {
		case ch <- state:
		default:
			// Replace the stale snapshot nobody has read yet
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- state:
			default:
			}
		}
	}
}
