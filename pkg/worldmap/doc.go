// Package worldmap provides serialization for wayfind world maps.
//
// This package defines the canonical wire format for the directed graph of
// world states and transitions, used for JSON files, API payloads, caching,
// and the persisted map store.
//
// # Formats
//
// JSON is the canonical interchange format:
//
//	{
//	  "name": "game",
//	  "transitions": [
//	    {"from": "login", "to": "lobby", "action": "press_start"},
//	    {"from": "lobby", "to": "match"}
//	  ]
//	}
//
// TOML manifests (world.toml) are the human-authored configuration format:
//
//	[world]
//	name = "game"
//
//	[[transition]]
//	from = "login"
//	to = "lobby"
//	action = "press_start"
//
// # Ordering
//
// Transition order is significant and preserved through every round trip:
// the pathfinder visits neighbors in map order, so the order written in a
// manifest decides which of several equally short routes is returned.
//
// # Common operations
//
//	m, _ := worldmap.ReadMapFile("world.json")      // File → Map
//	m, _ := worldmap.ReadManifestFile("world.toml") // Manifest → Map
//	g, _ := worldmap.ToGraph(m)                     // Map → routing graph
//	worldmap.WriteMapFile(m, "out.json")            // Map → File
package worldmap
