package functions

// Region routes an invocation to a geographically-local execution environment.
// It is sent as the x-region request header; RegionAny emits no header and
// leaves placement to the relay.
type Region string

const (
	RegionAny          Region = "any"
	RegionApNortheast1 Region = "ap-northeast-1"
	RegionApNortheast2 Region = "ap-northeast-2"
	RegionApSouth1     Region = "ap-south-1"
	RegionApSoutheast1 Region = "ap-southeast-1"
	RegionApSoutheast2 Region = "ap-southeast-2"
	RegionCaCentral1   Region = "ca-central-1"
	RegionEuCentral1   Region = "eu-central-1"
	RegionEuWest1      Region = "eu-west-1"
	RegionEuWest2      Region = "eu-west-2"
	RegionEuWest3      Region = "eu-west-3"
	RegionSaEast1      Region = "sa-east-1"
	RegionUsEast1      Region = "us-east-1"
	RegionUsWest1      Region = "us-west-1"
	RegionUsWest2      Region = "us-west-2"
)

// String returns the wire form of the region
func (r Region) String() string {
	return string(r)
}

// Valid reports whether r is a supported region
func (r Region) Valid() bool {
	switch r {
	case RegionAny,
		RegionApNortheast1, RegionApNortheast2,
		RegionApSouth1, RegionApSoutheast1, RegionApSoutheast2,
		RegionCaCentral1, RegionEuCentral1,
		RegionEuWest1, RegionEuWest2, RegionEuWest3,
		RegionSaEast1,
		RegionUsEast1, RegionUsWest1, RegionUsWest2:
		return true
	}
	return false
}

// ParseRegion converts a wire-form region string into a Region
func ParseRegion(s string) (Region, error) {
	r := Region(s)
	if !r.Valid() {
		return "", Newf(ErrorTypeInvalidArgument, "unsupported region %q", s)
	}
	return r, nil
}
