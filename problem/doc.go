// File: doc.go
// Role: package-level overview; see types.go for the data model and
// index.go/tupleindex.go for the Problem Index operations (§4.A).
package problem
