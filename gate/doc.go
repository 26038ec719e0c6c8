// Package gate defines immutable quantum gate values.
//
// QuantumGate is a fully bound operation; ParametricQuantumGate is a template
// whose parameters are supplied later. Both validate on construction, copy
// their inputs, hand out copies from accessors, compare by value and hash
// consistently with Equal. They can be shared between goroutines freely.
//
// Gates serialize to a tagged field tuple (Tag, Fields) and back through
// Reconstruct; Marshal and Unmarshal carry that tuple as MessagePack.
package gate
