package feed

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(rank int, raw string) RawEntry {
	return RawEntry{Rank: rank, Raw: []byte(raw)}
}

func TestMapEntry_Fixture(t *testing.T) {
	raw, err := os.ReadFile("testdata/topmovies.json")
	require.NoError(t, err)
	doc, err := Decode(raw)
	require.NoError(t, err)

	movies, skipped := MapEntries(Select(doc, 10))
	require.Len(t, movies, 3)
	require.Len(t, skipped, 1)

	jw := movies[0]
	assert.Equal(t, 1, jw.Rank)
	assert.Equal(t, "Jurassic World", jw.Title)
	assert.Equal(t, "1001127981", jw.ID)
	assert.Equal(t, "http://is1.mzstatic.com/image/jw/170x170.jpg", jw.ImageURL)
	assert.Equal(t, "Colin Trevorrow", jw.Director)
	assert.Equal(t, "Action & Adventure", jw.Category)
	assert.Equal(t, "$19.99", jw.Price)
	assert.Equal(t, "https://itunes.apple.com/us/movie/jurassic-world/id1001127981", jw.Link)
	require.NotNil(t, jw.ReleaseDate)
	assert.True(t, jw.ReleaseDate.Equal(time.Date(2015, 6, 12, 7, 0, 0, 0, time.UTC)))

	insideOut := movies[1]
	assert.Equal(t, 2, insideOut.Rank)
	assert.Equal(t, "Inside Out", insideOut.Title)
	assert.Equal(t, "https://itunes.apple.com/us/movie/inside-out/id1004047386", insideOut.Link)
	assert.Nil(t, insideOut.ReleaseDate)

	// The nameless entry at rank 3 is skipped without shifting Mad Max.
	mm := movies[2]
	assert.Equal(t, 4, mm.Rank)
	assert.Equal(t, "Mad Max: Fury Road", mm.Title)
	assert.False(t, mm.HasImage())

	var me *MappingError
	require.True(t, errors.As(skipped[0], &me))
	assert.Equal(t, 3, me.Rank)
	assert.Equal(t, "im:name.label", me.Field)
}

func TestMapEntry_Title(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "present", raw: `{"im:name":{"label":"Heat"}}`, want: "Heat"},
		{name: "trimmed", raw: `{"im:name":{"label":"  Heat \n"}}`, want: "Heat"},
		{name: "missing", raw: `{"title":{"label":"Heat - Michael Mann"}}`, wantErr: true},
		{name: "blank", raw: `{"im:name":{"label":"   "}}`, wantErr: true},
		{name: "null", raw: `{"im:name":null}`, wantErr: true},
		{name: "wrong type", raw: `{"im:name":"Heat"}`, wantErr: true},
		{name: "entry not object", raw: `["Heat"]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := MapEntry(entry(7, tt.raw))
			if tt.wantErr {
				var me *MappingError
				require.True(t, errors.As(err, &me))
				assert.Equal(t, 7, me.Rank)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Title)
			assert.Equal(t, 7, m.Rank)
		})
	}
}

func TestMapEntry_Image(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "largest height wins",
			raw:  `{"im:name":{"label":"X"},"im:image":[{"label":"urlX","attributes":{"height":"100"}},{"label":"urlY","attributes":{"height":"200"}}]}`,
			want: "urlY",
		},
		{
			name: "largest height wins regardless of order",
			raw:  `{"im:name":{"label":"X"},"im:image":[{"label":"urlY","attributes":{"height":"200"}},{"label":"urlX","attributes":{"height":"100"}}]}`,
			want: "urlY",
		},
		{
			name: "no heights falls back to last",
			raw:  `{"im:name":{"label":"X"},"im:image":[{"label":"small"},{"label":"large"}]}`,
			want: "large",
		},
		{
			name: "blank largest falls back to smaller",
			raw:  `{"im:name":{"label":"X"},"im:image":[{"label":"small","attributes":{"height":"60"}},{"label":"","attributes":{"height":"170"}}]}`,
			want: "small",
		},
		{
			name: "partial heights fall back to last",
			raw:  `{"im:name":{"label":"X"},"im:image":[{"label":"a","attributes":{"height":"60"}},{"label":"b"}]}`,
			want: "b",
		},
		{
			name: "unparseable height falls back to last",
			raw:  `{"im:name":{"label":"X"},"im:image":[{"label":"a","attributes":{"height":"600"}},{"label":"b","attributes":{"height":"large"}}]}`,
			want: "b",
		},
		{
			name: "single object",
			raw:  `{"im:name":{"label":"X"},"im:image":{"label":"only","attributes":{"height":"60"}}}`,
			want: "only",
		},
		{name: "empty list", raw: `{"im:name":{"label":"X"},"im:image":[]}`},
		{name: "absent", raw: `{"im:name":{"label":"X"}}`},
		{name: "wrong type", raw: `{"im:name":{"label":"X"},"im:image":"nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := MapEntry(entry(1, tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.ImageURL)
		})
	}
}

func TestMapEntry_MalformedOptionalFieldsIgnored(t *testing.T) {
	m, err := MapEntry(entry(1, `{"im:name":{"label":"X"},"summary":42,"category":"drama","id":[],"im:releaseDate":{"label":"June 12, 2015"},"link":[{"attributes":{"rel":"enclosure","href":"http://preview"}}]}`))
	require.NoError(t, err)

	assert.Equal(t, "X", m.Title)
	assert.Empty(t, m.Summary)
	assert.Empty(t, m.Category)
	assert.Empty(t, m.ID)
	assert.Nil(t, m.ReleaseDate)
	assert.Equal(t, "http://preview", m.Link)
}

func TestMapEntries_AllValid(t *testing.T) {
	movies, skipped := MapEntries([]RawEntry{
		entry(1, `{"im:name":{"label":"A"}}`),
		entry(2, `{"im:name":{"label":"B"}}`),
	})
	assert.Empty(t, skipped)
	require.Len(t, movies, 2)
	assert.Equal(t, "A", movies[0].Title)
	assert.Equal(t, "B", movies[1].Title)
}
