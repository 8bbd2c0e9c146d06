package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSingleInputSource_ExactlyOneSourceSucceeds(t *testing.T) {
	err := ValidateSingleInputSource("none given", "too many given", false, true, false)
	assert.NoError(t, err)
}

func TestValidateSingleInputSource_NoSourceErrors(t *testing.T) {
	err := ValidateSingleInputSource("none given", "too many given", false, false, false)
	assert.EqualError(t, err, "none given")
}

func TestValidateSingleInputSource_MultipleSourcesErrors(t *testing.T) {
	err := ValidateSingleInputSource("none given", "too many given", true, true, false)
	assert.EqualError(t, err, "too many given")
}

func TestValidateSingleInputSource_NoArgsIsNoSource(t *testing.T) {
	err := ValidateSingleInputSource("none given", "too many given")
	assert.EqualError(t, err, "none given")
}
