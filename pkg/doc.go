// Package pkg provides the core libraries for Placeview placement visualization.
//
// # Overview
//
// Placeview turns IC placement candidates into thermal maps and metric
// reports. The pkg directory is organized into four main areas:
//
//  1. Domain logic (placement parsing, geometry, metrics)
//  2. Rendering (draw models, palettes, SVG/JSON sinks, net graphs)
//  3. Infrastructure (caching, workspaces, observability hooks)
//  4. Orchestration (the parse → model → encode pipeline)
//
// # Architecture
//
// The typical data flow through Placeview:
//
//	Placement File (GeoJSON-style feature collection)
//	         ↓
//	[placement] parse features into records
//	         ↓
//	[metrics] compute wirelength and thermal statistics
//	         ↓
//	[render] build the draw model (shapes, routes, labels)
//	         ↓
//	[render/sink] encode SVG or JSON artifacts
//
// The [pipeline] package orchestrates these stages and caches each one
// through [cache]. The [view] package supplies the viewport transform
// used by interactive frontends, [workspace] tracks placements loaded
// for comparison, and [scheme] generates synthetic placements for
// testing and demos.
package pkg
