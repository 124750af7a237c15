package apiclient

import (
	"net/url"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestQuery_OmitsAbsentValues(t *testing.T) {
	q := Query{}
	q.Set("category", "").
		Set("platform", "youtube").
		SetInt("limit", 0).
		SetInt("offset", 20).
		SetBool("isFavorite", nil).
		SetFlag("content", false).
		SetList("tags", []string{"", ""})

	assert.Equal(t, "offset=20&platform=youtube", q.Encode())
}

func TestQuery_BoolPointer(t *testing.T) {
	f := false
	q := Query{}.SetBool("isArchived", &f)
	assert.Equal(t, "isArchived=false", q.Encode())
}

func TestQuery_ListJoin(t *testing.T) {
	q := Query{}.SetList("tags", []string{"ai", "", "ml"})
	assert.Equal(t, "ai,ml", q["tags"])
}

func TestQuery_EncodeSkipsEmptyLiterals(t *testing.T) {
	q := Query{"a": "", "b": "1"}
	assert.Equal(t, "b=1", q.Encode())
}

// For any mix of optional fields, a key appears in the encoded query only when
// its source value was present and non-empty.
func TestQuery_NeverEncodesEmptyProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("empty strings and zero values never appear", prop.ForAll(
		func(keys []string, vals []string, n int) bool {
			q := Query{}
			want := map[string]string{}
			for i, k := range keys {
				if k == "" {
					continue
				}
				v := ""
				if i < len(vals) {
					v = vals[i]
				}
				q.Set(k, v)
				if v != "" {
					want[k] = v
				}
			}
			q.SetInt("n_limit", n)

			parsed, err := url.ParseQuery(q.Encode())
			if err != nil {
				return false
			}
			for k := range parsed {
				if parsed.Get(k) == "" {
					return false
				}
			}
			if n == 0 && parsed.Has("n_limit") {
				return false
			}
			for k, v := range want {
				if parsed.Get(k) != v {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AlphaString()),
		gen.SliceOf(gen.AlphaString().Map(func(s string) string {
			if len(s)%2 == 0 {
				return ""
			}
			return s
		})),
		gen.IntRange(-5, 5),
	))

	properties.TestingRun(t)
}
