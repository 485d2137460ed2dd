package cli

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	cipherlab "github.com/cipherlab/cipherlab-go"
)

// readInput returns the contents of path, or of stdin when path is "-"
// or empty.
func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// openInput opens path for streaming reads, or hands back stdin when
// path is "-" or empty. The returned func closes the file; for stdin
// it is a no-op.
func openInput(path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// writeOutput writes data to path, or to stdout when path is "-" or
// empty.
func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// resolveKey turns the --key / --passphrase flag pair into key bytes.
// An explicit hex key wins; otherwise the passphrase is stretched into
// a keyLen-byte key.
func resolveKey(keyHex, passphrase string, keyLen int) ([]byte, error) {
	switch {
	case keyHex != "":
		key, err := hex.DecodeString(keyHex)
		if err != nil {
			return nil, fmt.Errorf("parse --key: %w", err)
		}
		return key, nil
	case passphrase != "":
		return cipherlab.KeyFromPassphrase(passphrase, keyLen)
	default:
		return nil, fmt.Errorf("one of --key or --passphrase is required")
	}
}

// encodeBytes renders bytes for output, hex by default.
func encodeBytes(data []byte, useBase64 bool) string {
	if useBase64 {
		return base64.StdEncoding.EncodeToString(data)
	}
	return hex.EncodeToString(data)
}

// decodeBytes parses hex or base64 input, tolerating surrounding
// whitespace such as the trailing newline encrypt emits.
func decodeBytes(s string, useBase64 bool) ([]byte, error) {
	s = strings.TrimSpace(s)
	if useBase64 {
		return base64.StdEncoding.DecodeString(s)
	}
	return hex.DecodeString(s)
}
