// Package export writes finalized graph models into layerbox containers.
//
// A [Plotter] hands out one [graph.Builder] per graph name and, on Render,
// finalizes each builder and writes it with a [Writer]. Each container holds:
//
//	model_config            root scalar, JSON manifest of all layers
//	model_weights/
//	    backend             scalar, e.g. "tvm.relay"
//	    tvm_version         scalar, e.g. "0.11"
//	    layer_names         array of layer names, or
//	    layer_names0..N     the same array split to fit the object limit
//
// # Destinations
//
// Render derives one path per graph from its dest argument:
//
//	dest == ""               <graph name>.lbox (inside Options.OutputDir if set)
//	dest set, one graph      dest + ".lbox" (an existing .lbox is kept)
//	dest set, many graphs    dest + "_" + <graph name> + ".lbox"
//
// Writes are not atomic. A failed write may leave a partial container at its
// destination.
package export
