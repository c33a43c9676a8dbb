// Package tensorio stores online tensors and tensor lists as binary artifacts.
//
// The backend is generic over the tensor type: callers pass a Factory that
// creates the zero-filled destination, and the importer fills it after
// checking the stored kind and shape. Every call runs in a Comm scope; only
// rank 0 writes and all ranks meet at Barrier. Online objects always use Self.
//
// An artifact is one file, <dir>/<name>.dat. A list is a single artifact with
// a count prefix followed by the tensors in order. Payloads may be compressed
// with LZ4 or zstd (WithCompression); imports read the codec from the header.
//
// Missing artifacts yield ErrNotFound, corrupt or mismatching ones ErrFormat.
package tensorio
