package library

import (
	"bufio"
	"os"
	"testing"
	"testing/fstest"
)

// TVFSFromFile builds a filesystem with an empty file for every line of the fixture at path
func TVFSFromFile(t *testing.T, path string) (fstest.MapFS, []string) {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("couldn't open file: %v", err)
	}
	defer f.Close()

	testfs := fstest.MapFS{}
	paths := []string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		p := scanner.Text()
		if p == "" {
			continue
		}
		testfs[p] = &fstest.MapFile{Data: []byte(p)}
		paths = append(paths, p)
	}

	if err := scanner.Err(); err != nil {
		t.Fatal(err)
	}

	return testfs, paths
}
