// File: doc.go — see bookkeeping.go for Bookkeeping and Record.
package rpg
