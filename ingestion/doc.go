// Package ingestion provides pipeline orchestration for turning source
// documents into searchable chunks.
//
// The Pipeline type manages the ingestion workflow for documents, including:
//   - Splitting markdown into sections and structure-aware chunks
//   - Adding chunks to storage
//   - Generating embeddings asynchronously
//
// Embedding is performed concurrently using a worker pool to maximize
// throughput. Errors during async processing are logged but do not fail
// the ingestion operation.
package ingestion
