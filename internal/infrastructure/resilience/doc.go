/*
Package resilience provides a circuit breaker for host collaborators.

The launcher queries the record store several times per app on every
request. When the store is failing, the breaker opens and later queries
fail immediately with ErrCircuitOpen, which the resolver treats like any
other lookup failure.

# Usage

	breaker := resilience.New("records", resilience.Settings{
		MaxRequests:   1,
		Timeout:       5 * time.Second,
		ReadyToTrip:   func(c resilience.Counts) bool { return c.ConsecutiveFailures >= 5 },
		OnStateChange: resilience.LogStateChanges(logger),
	})

	exists, err := resilience.Do(breaker, func() (bool, error) {
		return store.PageExists(ctx, name)
	})

# States

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                       [failure]
	                                           v
	                                          Open
*/
package resilience
