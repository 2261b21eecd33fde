// Package extractors provides implementations of the TextExtractor interface
// for the file formats course materials arrive in. Each extractor knows how
// to turn one family of file extensions into plain text.
//
// Extractors are registered with the Registry at startup. Files of an
// unregistered type resolve to a no-op extractor that yields empty text.
package extractors
