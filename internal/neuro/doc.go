// Package neuro provides the domain object model for electrophysiology
// recordings and the traversal utilities that operate on it.
//
// # Object model
//
// Recordings are organised as a tree: a Block holds Segments and
// Groups, a Segment holds the data objects recorded in one time window
// (SpikeTrains, AnalogSignals, Events, Epochs), a Group holds Units and
// a Unit holds the SpikeTrains attributed to one source. Data objects
// keep links back to their parents so metadata can be resolved up the
// chain.
//
// # Capabilities
//
// Traversal never depends on the concrete type of a container. A value
// participates by implementing DomainObject, and containers additionally
// implement any of RecursiveChildrenLister, FlatChildLister and
// ChildLister. Collect dispatches on whichever capabilities are present,
// in that order of preference.
//
// Object graphs are assumed to be acyclic. Traversal of a cyclic graph
// recurses without bound; the runtime stack limit is the only ceiling.
package neuro
