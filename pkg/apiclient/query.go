package apiclient

import (
	"net/url"
	"strconv"
	"strings"
)

// Query holds outbound query parameters. The setters drop absent and empty
// values so an optional argument the caller left out never reaches the wire.
type Query map[string]string

// Set stores v under k unless v is empty.
func (q Query) Set(k, v string) Query {
	if v != "" {
		q[k] = v
	}
	return q
}

// SetInt stores n under k unless n is zero.
func (q Query) SetInt(k string, n int) Query {
	if n != 0 {
		q[k] = strconv.Itoa(n)
	}
	return q
}

// SetInt64 stores n under k unless n is zero.
func (q Query) SetInt64(k string, n int64) Query {
	if n != 0 {
		q[k] = strconv.FormatInt(n, 10)
	}
	return q
}

// SetBool stores *b under k unless b is nil.
func (q Query) SetBool(k string, b *bool) Query {
	if b != nil {
		q[k] = strconv.FormatBool(*b)
	}
	return q
}

// SetFlag stores "true" under k when on is set.
func (q Query) SetFlag(k string, on bool) Query {
	if on {
		q[k] = "true"
	}
	return q
}

// SetList stores the comma-joined non-empty values under k.
func (q Query) SetList(k string, vs []string) Query {
	kept := make([]string, 0, len(vs))
	for _, v := range vs {
		if v != "" {
			kept = append(kept, v)
		}
	}
	return q.Set(k, strings.Join(kept, ","))
}

// Values converts q to url.Values, skipping empty entries written directly
// into the map.
func (q Query) Values() url.Values {
	vals := url.Values{}
	for k, v := range q {
		if v == "" {
			continue
		}
		vals.Set(k, v)
	}
	return vals
}

// Encode renders the query sorted by key.
func (q Query) Encode() string {
	return q.Values().Encode()
}
