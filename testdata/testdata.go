package testdata

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"embed"
	"testing"

	"github.com/stretchr/testify/require"
)

//go:embed *.json *.txt
var data embed.FS

func readFile(t *testing.T, path string) []byte {
	b, err := data.ReadFile(path)
	require.NoError(t, err)
	return b
}

func newScanner(t *testing.T, path string) *bufio.Scanner {
	scanner := bufio.NewScanner(bytes.NewReader(readFile(t, path)))
	t.Cleanup(func() {
		require.NoError(t, scanner.Err())
	})

	return scanner
}

// Stations returns an AWC station cache excerpt
func Stations(t *testing.T) []byte {
	return readFile(t, "stations.json")
}

// StationsGzip returns the Stations fixture gzipped, as AWC serves it
func StationsGzip(t *testing.T) []byte {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(Stations(t))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func METAR(t *testing.T) *bufio.Scanner {
	return newScanner(t, "metar.txt")
}
