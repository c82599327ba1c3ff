// Package graph builds the normalized layer model of a computation graph.
//
// # Overview
//
// A [Builder] consumes node and edge visitation events (it implements
// viz.Graph) and, once traversal completes, produces an ordered list of
// [Layer] records ready for serialization. The builder tolerates any
// interleaving of events: an edge may name an endpoint before that node has
// been recorded, as long as every referenced node is recorded before
// [Builder.Layers] is called.
//
// # Node Detail
//
// Each visited node carries a detail string of newline-separated key:value
// pairs. [ParseDetail] turns it into [Params]. The split is strict: a
// non-empty line must contain exactly one colon, otherwise the node is
// rejected with a [MalformedDetailError].
//
//	params, err := graph.ParseDetail("name_hint:x\ndtype:float32")
//	// params = {"name_hint": "x", "dtype": "float32"}
//
// # Layer Records
//
// Layers are emitted in first-seen order: the order in which each identity
// first appeared, either as the end of an edge or as a recorded node. Each
// layer carries its predecessors as inbound nodes encoded as 4-tuples
// ([name, 0, 0, {}]) and a flat string configuration:
//
//	{
//	  "name": "nn.dense_3",
//	  "class_name": "nn.dense",
//	  "inbound_nodes": [["Var_0", 0, 0, {}]],
//	  "config": {"name": "nn.dense_3", "units": "10"}
//	}
//
// The configuration is seeded with the node's name_hint parameter (or its
// layer name). An out_dtype parameter whose value is a single space is
// replaced by a dtype entry inherited from the last predecessor that declares
// one.
//
// # Concurrency
//
// A Builder is owned by a single traversal and is not safe for concurrent
// use. Distinct builders share no state.
package graph
