package candidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSkills(t *testing.T) {
	got := NormalizeSkills([]string{" Go ", "go", "", "  Kotlin  Multiplatform ", "SQL", "sql"})
	assert.Equal(t, []string{"Go", "Kotlin Multiplatform", "SQL"}, got)
}

func TestNormalizeSkills_Empty(t *testing.T) {
	assert.Empty(t, NormalizeSkills(nil))
}
