// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - PassageStore: Passage persistence and relevance ranking
//   - TextExtractor / ExtractorRegistry: File type to plain text
//   - Reader: Answer span extraction
//   - PostProcessor / PostProcessorPipeline: Cleaning and chunking
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil or unimplemented - the application degrades gracefully:
//
//   - CourseLister: Native distinct-course query. Without it, listing scans ListAll.
//   - Stager: Upload staging. Without it, uploads are read from memory into a temp file.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, extractor, or postprocessor package
package driven
