package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmbedCmd_Use(t *testing.T) {
	assert.Equal(t, "embed [text]", embedCmd.Use)
}

func TestFormatVectorPreview_Short(t *testing.T) {
	preview := formatVectorPreview([]float32{0.1, -0.25}, 8)

	assert.Equal(t, "[0.1000, -0.2500]", preview)
}

func TestFormatVectorPreview_Truncated(t *testing.T) {
	vector := make([]float32, 768)
	vector[0] = 1

	preview := formatVectorPreview(vector, 4)

	assert.Equal(t, "[1.0000, 0.0000, 0.0000, 0.0000, ...]", preview)
}

func TestFormatVectorPreview_ExactLength(t *testing.T) {
	preview := formatVectorPreview([]float32{1, 2, 3}, 3)

	assert.Equal(t, "[1.0000, 2.0000, 3.0000]", preview)
}

func TestFormatVectorPreview_Empty(t *testing.T) {
	assert.Equal(t, "[]", formatVectorPreview(nil, 8))
}
