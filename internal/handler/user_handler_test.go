package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	// Wildcards in a search term must match literally, not act as patterns.
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `back\\slash`, escapeLike(`back\slash`))
	assert.Equal(t, "alice", escapeLike("alice"))
	assert.Equal(t, `\%\_\\`, escapeLike(`%_\`))
}
