package migrations

import (
	"io/fs"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// El runner de cmd/migrate aplica lo que haya embebido acá: cada up debe
// tener su down y los prefijos numéricos deben dar el orden de aplicación.
func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(FS, ".")
	require.NoError(t, err)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, "_up.sql"):
			ups[strings.TrimSuffix(name, "_up.sql")] = true
		case strings.HasSuffix(name, "_down.sql"):
			downs[strings.TrimSuffix(name, "_down.sql")] = true
		default:
			t.Errorf("archivo embebido con sufijo desconocido: %s", name)
		}
	}

	require.NotEmpty(t, ups)
	assert.Equal(t, ups, downs, "cada *_up.sql necesita su *_down.sql")

	// El orden lexicográfico es el orden de aplicación: los prefijos
	// tienen que venir ya ordenados y sin duplicados.
	var prefixes []string
	for p := range ups {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)
	seen := map[string]bool{}
	for _, p := range prefixes {
		num, _, ok := strings.Cut(p, "_")
		require.True(t, ok, "prefijo sin número: %s", p)
		assert.False(t, seen[num], "número de migración duplicado: %s", num)
		seen[num] = true
	}
}

func TestEmbeddedMigrationsAreReadable(t *testing.T) {
	entries, err := fs.ReadDir(FS, ".")
	require.NoError(t, err)

	for _, e := range entries {
		b, err := fs.ReadFile(FS, e.Name())
		require.NoError(t, err)
		assert.NotEmpty(t, strings.TrimSpace(string(b)), "%s está vacío", e.Name())
	}
}
