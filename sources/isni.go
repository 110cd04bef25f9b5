package sources

import (
	"net/url"
	"strings"
)

// ISNIPattern identifies ISNI IRIs.
const ISNIPattern = "isni.org"

// NormalizeISNI makes sure an isni.org IRI carries the /isni/ path segment,
// e.g. http://www.isni.org/0000000109311081 becomes
// http://www.isni.org/isni/0000000109311081. Other values are returned as is.
func NormalizeISNI(iri string) string {
	u, err := url.Parse(iri)
	if err != nil || !strings.HasSuffix(u.Host, ISNIPattern) {
		return iri
	}
	if u.Path == "/isni" || strings.HasPrefix(u.Path, "/isni/") {
		return iri
	}
	u.Path = "/isni/" + strings.TrimPrefix(u.Path, "/")
	if u.RawPath != "" {
		u.RawPath = "/isni/" + strings.TrimPrefix(u.RawPath, "/")
	}
	return u.String()
}
