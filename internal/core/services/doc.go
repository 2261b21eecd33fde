// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Ingestion runs extract -> preprocess -> store; question answering runs
// retrieve -> read. Services hold no per-request state.
package services
