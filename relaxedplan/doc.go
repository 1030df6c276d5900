// File: doc.go — see extractor.go for Extractor.
package relaxedplan
