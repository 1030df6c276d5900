// File: doc.go — see state.go for State and layer.go for Layer.
package state
