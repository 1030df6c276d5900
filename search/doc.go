// File: doc.go — see model.go for StateModel/GroundedModel, bfs.go/gbfs.go
// for the two search engines, arena.go for the node arena.
package search
