// ABOUTME: Container format detection from magic bytes
// ABOUTME: Ordered signature table, first match wins
// Package sniff classifies raw audio bytes by their leading signature.
//
// Detection never trusts a declared content type. Signatures are checked in
// the order of the Signatures table; the first match wins and inputs shorter
// than a signature simply fail to match.
//
// Example:
//
//	switch f := sniff.Detect(data); f {
//	case audio.FormatUnknown:
//	    // hand the bytes to a transcoder
//	default:
//	    // save verbatim as "." + f.Extension()
//	}
package sniff
