// File: doc.go — see driver.go for Driver and Evaluate.
package heuristic
