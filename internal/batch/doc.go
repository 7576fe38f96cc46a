// Package batch pairs subtitle files with video files and runs sync jobs
// over the pairs with bounded concurrency. One item's failure never stops
// the others; every pairing ends with a terminal status.
package batch
