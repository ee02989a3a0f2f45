package compression

import (
	"bytes"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	compressors := []struct {
		name string
		c    Compressor
		ext  string
	}{
		{"gzip", GzipCompressor{}, ".gz"},
		{"zstd", ZstdCompressor{}, ".zst"},
	}

	payloads := [][]byte{
		[]byte(""),
		[]byte("<html><body>hello</body></html>"),
		bytes.Repeat([]byte("abcdefgh"), 4096),
	}

	for _, tc := range compressors {
		t.Run(tc.name, func(t *testing.T) {
			if tc.c.Ext() != tc.ext {
				t.Errorf("Expected extension %q, got %q", tc.ext, tc.c.Ext())
			}

			for _, payload := range payloads {
				compressed, err := tc.c.Compress(payload)
				if err != nil {
					t.Fatalf("Compress failed: %v", err)
				}

				decompressed, err := tc.c.Decompress(compressed)
				if err != nil {
					t.Fatalf("Decompress failed: %v", err)
				}

				if !bytes.Equal(payload, decompressed) {
					t.Errorf("Round trip mismatch for payload of %d bytes", len(payload))
				}
			}
		})
	}
}

func TestForAlgorithm(t *testing.T) {
	testCases := []struct {
		name        string
		algorithm   string
		expectError bool
	}{
		{"gzip", "gzip", false},
		{"zstd", "zstd", false},
		{"unknown", "brotli", true},
		{"empty", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := ForAlgorithm(tc.algorithm)
			if tc.expectError {
				if err == nil {
					t.Error("Expected error for unknown algorithm")
				}
				return
			}
			if err != nil {
				t.Fatalf("ForAlgorithm failed: %v", err)
			}
			if c == nil {
				t.Error("Expected non-nil compressor")
			}
		})
	}
}
