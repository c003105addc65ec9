// Package resource provides handle tables for host-owned resources.
//
// Engine modules identify the objects they create with small integer
// handles. The host keeps its own side of that bookkeeping in a Table so
// every handle still live at teardown can be released exactly once.
//
//	table := resource.NewTable[*scene]()
//
//	h, err := table.Insert(s)
//	s, ok := table.Get(h)
//	s, ok = table.Remove(h)
//
// Handle 0 is reserved and never issued, so it can signal "no handle"
// across the module boundary.
//
// # Observers
//
// Register observers to track lifecycle events:
//
//	table.Subscribe(resource.ObserverFunc(func(e resource.Event) {
//	    log.Printf("handle %d %s", e.Handle, e.Type)
//	}))
//
// Close drops every remaining value and rejects further inserts.
package resource
