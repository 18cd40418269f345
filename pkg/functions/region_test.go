package functions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionValid(t *testing.T) {
	assert.True(t, RegionAny.Valid())
	assert.True(t, RegionUsEast1.Valid())
	assert.True(t, RegionApSoutheast1.Valid())
	assert.False(t, Region("").Valid())
	assert.False(t, Region("us-east-9").Valid())
}

func TestParseRegion(t *testing.T) {
	region, err := ParseRegion("eu-central-1")
	require.NoError(t, err)
	assert.Equal(t, RegionEuCentral1, region)

	_, err = ParseRegion("atlantis-1")
	require.Error(t, err)
	assert.True(t, IsType(err, ErrorTypeInvalidArgument))
}

func TestRegionString(t *testing.T) {
	assert.Equal(t, "ap-northeast-2", RegionApNortheast2.String())
	assert.Equal(t, "any", RegionAny.String())
}
