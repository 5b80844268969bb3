// Package types defines the item capability set, the generic Repository
// interface, the item error taxonomy, and configuration for the Stockroom
// storage system. Backends live under internal/ and implement Repository for
// any Stockable item variant.
package types
