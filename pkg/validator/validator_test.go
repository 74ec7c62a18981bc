package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type sampleInput struct {
	Name  string `json:"name" validate:"required"`
	Level int    `json:"religious_level" validate:"min=1,max=5"`
}

func TestValidateStructPasses(t *testing.T) {
	require.NoError(t, ValidateStruct(sampleInput{Name: "Dana", Level: 3}))
}

func TestValidateStructCollectsFailures(t *testing.T) {
	err := ValidateStruct(sampleInput{Level: 9})
	require.Error(t, err)

	failures, ok := err.(ValidationErrors)
	require.True(t, ok)
	require.Len(t, failures, 2)

	// Field names come from json tags, not Go identifiers.
	require.Equal(t, "name", failures[0].Field)
	require.Equal(t, "required", failures[0].Tag)
	require.Equal(t, "religious_level", failures[1].Field)
	require.Equal(t, "max", failures[1].Tag)
	require.Equal(t, "5", failures[1].Param)

	require.True(t, failures.HasTag("required"))
	require.False(t, failures.HasTag("email"))
}
