package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-yolo/models/model"
)

func TestYOLOClasses(t *testing.T) {
	require.Len(t, YOLOClasses.Names, 80)
	assert.Equal(t, model.ModelFamilyYOLO, YOLOClasses.Family)
	assert.Equal(t, "person", YOLOClasses.Names[0])
	assert.Equal(t, "toothbrush", YOLOClasses.Names[79])

	name, ok := YOLOClasses.Name(9)
	assert.True(t, ok)
	assert.Equal(t, "traffic light", name)
	_, ok = YOLOClasses.Name(80)
	assert.False(t, ok)
	_, ok = YOLOClasses.Name(-1)
	assert.False(t, ok)
}

func TestClassName(t *testing.T) {
	assert.Equal(t, "person", ClassName(0))
	assert.Equal(t, "dog", ClassName(16))
	assert.Equal(t, "hair drier", ClassName(78))
	assert.Equal(t, "80", ClassName(80))
	assert.Equal(t, "-1", ClassName(-1))
}
