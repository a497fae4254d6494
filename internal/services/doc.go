// Package services holds the shared error taxonomy and context annotations
// used by the external-service adapters and the pipeline.
package services
