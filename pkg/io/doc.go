// Package io reads and writes event documents: recorded graph traversals
// that can be replayed into a [viz.Plotter].
//
// # Format
//
// A document lists graphs in traversal order; each graph lists its events in
// visitation order. Every event holds exactly one of "node" or "edge":
//
//	{
//	  "graphs": [
//	    {
//	      "name": "main",
//	      "events": [
//	        {"node": {"identity": "0", "type_name": "Var", "detail": "name_hint:x\ndtype:float32"}},
//	        {"node": {"identity": "1", "type_name": "nn.relu"}},
//	        {"edge": {"start": "0", "end": "1"}}
//	      ]
//	    }
//	  ]
//	}
//
// The same structure is accepted as YAML. [ImportEvents] and [ExportEvents]
// pick the format from the file extension (.json, .yaml, .yml).
//
// # Import
//
//	doc, err := io.ImportEvents("events.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Decoding validates the document shape only: every graph has a name and
// every event is a node or an edge. Detail strings are parsed later, when
// the events are replayed into a graph builder.
package io
