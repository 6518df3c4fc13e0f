package logparse

import (
	"strconv"
	"strings"
)

// Region names produced by RegionForAddr. The mapping is synthetic and
// fixed; downstream consumers depend on the exact names and boundaries.
const (
	RegionNorthAmerica = "North America"
	RegionEurope       = "Europe"
	RegionAsia         = "Asia"
	RegionAfrica       = "Africa"
	RegionOther        = "Other"
)

// RegionForAddr buckets an address by its first dot-separated octet:
// 1-49 North America, 50-99 Europe, 100-149 Asia, 150-199 Africa,
// everything else (including unparseable input) Other.
func RegionForAddr(addr string) string {
	first, _, found := strings.Cut(addr, ".")
	if !found {
		first = addr
	}
	octet, err := strconv.Atoi(first)
	if err != nil {
		return RegionOther
	}

	switch {
	case octet >= 1 && octet <= 49:
		return RegionNorthAmerica
	case octet >= 50 && octet <= 99:
		return RegionEurope
	case octet >= 100 && octet <= 149:
		return RegionAsia
	case octet >= 150 && octet <= 199:
		return RegionAfrica
	default:
		return RegionOther
	}
}
