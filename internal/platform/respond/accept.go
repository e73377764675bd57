package respond

import (
	"strconv"
	"strings"
)

type mediaRange struct {
	typ     string
	subtype string
	q       float64
}

// parseAccept splits an Accept header into media ranges. A missing or
// unparseable q defaults to 1. A bare type ("text") reads as "text/*".
func parseAccept(header string) []mediaRange {
	var ranges []mediaRange
	for part := range strings.SplitSeq(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		params := strings.Split(part, ";")
		mt := strings.ToLower(strings.TrimSpace(params[0]))
		typ, subtype, found := strings.Cut(mt, "/")
		if !found {
			subtype = "*"
		}
		mr := mediaRange{typ: typ, subtype: subtype, q: 1}
		for _, p := range params[1:] {
			k, v, ok := strings.Cut(strings.TrimSpace(p), "=")
			if !ok || strings.ToLower(strings.TrimSpace(k)) != "q" {
				continue
			}
			if q, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && q >= 0 && q <= 1 {
				mr.q = q
			}
		}
		ranges = append(ranges, mr)
	}
	return ranges
}

// quality returns the q of the most specific range matching typ/subtype, or 0.
func quality(ranges []mediaRange, typ, subtype string) float64 {
	best, specificity := 0.0, -1
	for _, mr := range ranges {
		var s int
		switch {
		case mr.typ == typ && mr.subtype == subtype:
			s = 2
		case mr.typ == typ && mr.subtype == "*":
			s = 1
		case mr.typ == "*" && mr.subtype == "*":
			s = 0
		default:
			continue
		}
		if s > specificity {
			best, specificity = mr.q, s
		}
	}
	return best
}

// preferCBOR reports whether the client ranks CBOR strictly above JSON.
// Ties, wildcards and an empty header all resolve to JSON.
func preferCBOR(accept string) bool {
	if accept == "" {
		return false
	}
	ranges := parseAccept(accept)
	return quality(ranges, "application", "cbor") > quality(ranges, "application", "json")
}
