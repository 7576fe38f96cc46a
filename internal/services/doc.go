// Package services defines the shared error taxonomy for the alignment
// engine and its external collaborators.
//
// Every failure a sync job can produce is tagged with one of the exported
// sentinel errors so callers classify outcomes with errors.Is instead of
// string matching. Wrap attaches component and operation context while
// preserving the marker in the error chain.
package services
