package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsAny(t *testing.T) {
	patterns := []string{"coretemp", "zenpower*"}

	assert.True(t, ContainsAny("coretemp_package_id_0", patterns))
	assert.True(t, ContainsAny("CoreTemp", patterns))
	assert.True(t, ContainsAny("zenpower3_tctl", patterns))
	assert.False(t, ContainsAny("amd_zenpower", patterns), "starred patterns match as prefix only")
	assert.False(t, ContainsAny("nvme_composite", patterns))
	assert.False(t, ContainsAny("coretemp", nil))
}
