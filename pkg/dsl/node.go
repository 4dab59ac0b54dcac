package dsl

// NodeBuilder provides a fluent API for configuring a state.
type NodeBuilder struct {
	id      string
	final   bool
	edges   map[string][]string
	builder *Builder
}

// On adds transitions from this state to every target on symbol.
// Calling On again for the same symbol adds more targets.
func (n *NodeBuilder) On(symbol string, targets ...string) *NodeBuilder {
	n.edges[symbol] = append(n.edges[symbol], targets...)
	return n
}

// Loop adds a transition from this state to itself on each symbol.
func (n *NodeBuilder) Loop(symbols ...string) *NodeBuilder {
	for _, symbol := range symbols {
		n.On(symbol, n.id)
	}
	return n
}

// Final marks the state as accepting.
func (n *NodeBuilder) Final() *NodeBuilder {
	n.final = true
	return n
}

// Add continues with another state of the same automaton.
func (n *NodeBuilder) Add(id string) *NodeBuilder {
	return n.builder.Add(id)
}
