package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	assert.Equal(t, "website-development", Make("Website Development"))
	assert.Equal(t, "tax-consulting", Make("  Tax   Consulting  "))
	assert.Equal(t, "seo-100-guaranteed", Make("SEO 100% Guaranteed!"))
	assert.Equal(t, "", Make("!!!"))
}
