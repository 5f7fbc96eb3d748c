package script

import (
	"strings"

	cerrors "carrental/cli/internal/errors"
)

// Marker separates the system section of the procedure script from the tenant section.
const Marker = "-- BEGIN CAR_RENTAL PROCEDURES"

// SplitSections cuts script at the first occurrence of marker. The system part
// is everything before the marker; the tenant part starts with the marker
// itself, so system+tenant == script.
func SplitSections(script, marker string) (system, tenant string, err error) {
	idx := strings.Index(script, marker)
	if idx < 0 {
		return "", "", cerrors.Newf(cerrors.Resource, "section marker %q not found in script", marker)
	}
	return script[:idx], script[idx:], nil
}
