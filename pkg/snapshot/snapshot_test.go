package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"blackjack-server/internal/util"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	a := assert.New(t)

	dir := Dir
	Dir = t.TempDir()
	defer func() { Dir = dir }()

	obj := map[string]int{"balance": 1000}

	// first run writes the file
	a.True(Match(t, "table", obj))
	b, err := os.ReadFile(filepath.Join(Dir, "table.json"))
	a.NoError(err)
	a.Equal("{\n  \"balance\": 1000\n}\n", string(b))

	a.True(Match(t, "table", obj))

	unset := util.SetEnv("BJ_UPDATE_SNAPSHOTS", "1")
	defer unset()

	a.True(Match(t, "table", map[string]int{"balance": 900}))
	b, err = os.ReadFile(filepath.Join(Dir, "table.json"))
	a.NoError(err)
	a.Contains(string(b), "900")
}
