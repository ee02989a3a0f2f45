// Package compression implements the precompression codecs used for build
// output. Static hosts can serve the precompressed siblings directly.
package compression

import "fmt"

type Compressor interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)

	// Ext returns the file extension appended to precompressed siblings.
	Ext() string
}

// ForAlgorithm maps a configured algorithm name to its codec.
func ForAlgorithm(name string) (Compressor, error) {
	switch name {
	case "gzip":
		return GzipCompressor{}, nil
	case "zstd":
		return ZstdCompressor{}, nil
	default:
		return nil, fmt.Errorf("unknown compression algorithm %q", name)
	}
}
