package corpusdex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStem_Porter2LinksCatAndCats(t *testing.T) {
	assert.Equal(t, Stem("cat", StemPorter2), Stem("cats", StemPorter2))
}

func TestStem_NoneIsIdentity(t *testing.T) {
	assert.Equal(t, "running", Stem("running", StemNone))
}
