// Package dioverify holds the shared types of the direct I/O verifier: the
// Config built once at start, the Error type and its errno mapping, retry
// helpers for interrupted system calls, and logging setup.
//
// The verifier writes one page of self-describing chunk records to a temporary
// file with ordinary buffered writes, reads the page back through a
// cache-bypassing descriptor into a page-aligned buffer, and checks the first
// record. See package chunk for the record layout, package fs for the I/O and
// package runner for the sequencing.
package dioverify
