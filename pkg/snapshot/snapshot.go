// Package snapshot compares JSON encodings against golden files
package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"blackjack-server/internal/util"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// Dir is where golden files are kept, relative to the package under test
var Dir = "testdata"

// Match compares the indented JSON encoding of obj to Dir/<name>.json
// A missing golden file is written and the comparison passes.
// Set BJ_UPDATE_SNAPSHOTS=1 to rewrite existing files.
func Match(t *testing.T, name string, obj interface{}, msgAndArgs ...interface{}) bool {
	t.Helper()

	actual, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		t.Fatalf("could not encode snapshot %s: %v", name, err)
	}

	filename := filepath.Join(Dir, name+".json")
	expects, err := os.ReadFile(filename)
	if os.IsNotExist(err) || util.Getenv("BJ_UPDATE_SNAPSHOTS", "") == "1" {
		if err := write(filename, actual); err != nil {
			t.Fatalf("could not write snapshot %s: %v", filename, err)
		}

		return true
	} else if err != nil {
		t.Fatalf("could not read snapshot %s: %v", filename, err)
	}

	if !assert.Equal(t, strings.TrimSpace(string(expects)), strings.TrimSpace(string(actual)), msgAndArgs...) {
		t.Logf("snapshot %s", filename)
		return false
	}

	return true
}

func write(filename string, b []byte) error {
	logrus.WithField("filename", filename).Info("writing snapshot file")
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return err
	}

	return os.WriteFile(filename, append(b, '\n'), 0644)
}
