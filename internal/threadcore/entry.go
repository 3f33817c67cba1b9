package threadcore

// Entry is the Go port of the original's entry()/main(): it runs setup
// (where a host registers its initial threads via AddThread and friends)
// and then drives the scheduler loop to completion on the calling
// goroutine. Callers that need to run the scheduler alongside other
// goroutines (signal handling, an errgroup-managed host) should call
// Start directly instead and invoke setup beforehand.
func (t *Table) Entry(setup func(t *Table)) {
	if setup != nil {
		setup(t)
	}
	t.Start()
}
