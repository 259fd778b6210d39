package links_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/fivetwenty-io/harvest-client/internal/links"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("links and templates", func(t *testing.T) {
		t.Parallel()

		header := http.Header{}
		header.Set(links.HeaderLink, `<http://h.example/api/concepts/>; rel="concepts", <http://h.example/api/ping/>; rel="ping"`)
		header.Set(links.HeaderLinkTemplate, `<http://h.example/api/concepts/{id}/>; rel="concept"`)

		table := links.Parse(header, nil)

		link, ok := table.Link("concepts")
		require.True(t, ok)
		assert.Equal(t, "http://h.example/api/concepts/", link.URL)

		link, ok = table.Link("ping")
		require.True(t, ok)
		assert.Equal(t, "http://h.example/api/ping/", link.URL)

		template, ok := table.Template("concept")
		require.True(t, ok)
		assert.Equal(t, "http://h.example/api/concepts/{id}/", template.URL)

		_, ok = table.Link("concept")
		assert.False(t, ok)
		assert.Equal(t, 3, table.Len())
	})

	t.Run("missing headers", func(t *testing.T) {
		t.Parallel()

		table := links.Parse(http.Header{}, nil)

		_, ok := table.Link("concepts")
		assert.False(t, ok)
		assert.Empty(t, table.Links())
		assert.Empty(t, table.Templates())
	})

	t.Run("multiple header lines", func(t *testing.T) {
		t.Parallel()

		header := http.Header{}
		header.Add(links.HeaderLink, `<http://h.example/api/views/>; rel="views"`)
		header.Add(links.HeaderLink, `<http://h.example/api/queries/>; rel="queries"`)

		table := links.Parse(header, nil)

		assert.Equal(t, map[string]string{
			"views":   "http://h.example/api/views/",
			"queries": "http://h.example/api/queries/",
		}, table.Links())
	})

	t.Run("several relation types", func(t *testing.T) {
		t.Parallel()

		header := http.Header{}
		header.Set(links.HeaderLink, `<http://h.example/api/>; rel="self root"`)

		table := links.Parse(header, nil)

		self, ok := table.Link("self")
		require.True(t, ok)
		root, ok := table.Link("root")
		require.True(t, ok)
		assert.Equal(t, self, root)
	})

	t.Run("root relative urls", func(t *testing.T) {
		t.Parallel()

		base, err := url.Parse("https://h.example/api/")
		require.NoError(t, err)

		header := http.Header{}
		header.Set(links.HeaderLink, `</api/fields/>; rel="fields"`)
		header.Set(links.HeaderLinkTemplate, `</api/fields/{id}/>; rel="field"`)

		table := links.Parse(header, base)

		link, _ := table.Link("fields")
		assert.Equal(t, "https://h.example/api/fields/", link.URL)

		template, _ := table.Template("field")
		assert.Equal(t, "https://h.example/api/fields/{id}/", template.URL)
	})

	t.Run("path relative urls", func(t *testing.T) {
		t.Parallel()

		base, err := url.Parse("https://harvest.example.org/api/")
		require.NoError(t, err)

		header := http.Header{}
		header.Add(links.HeaderLink, `<concepts/>; rel="concepts"`)
		header.Add(links.HeaderLink, `<../status/>; rel="status"`)
		header.Add(links.HeaderLink, `<./views/>; rel="views"`)
		header.Set(links.HeaderLinkTemplate, `<concepts/{id}/>; rel="concept"`)

		table := links.Parse(header, base)

		assert.Equal(t, map[string]string{
			"concepts": "https://harvest.example.org/api/concepts/",
			"status":   "https://harvest.example.org/status/",
			"views":    "https://harvest.example.org/api/views/",
		}, table.Links())

		template, _ := table.Template("concept")
		assert.Equal(t, "https://harvest.example.org/api/concepts/{id}/", template.URL)
	})

	t.Run("path relative urls against a file base", func(t *testing.T) {
		t.Parallel()

		base, err := url.Parse("https://harvest.example.org/api/index")
		require.NoError(t, err)

		header := http.Header{}
		header.Set(links.HeaderLink, `<ping/>; rel="ping"`)

		link, _ := links.Parse(header, base).Link("ping")
		assert.Equal(t, "https://harvest.example.org/api/ping/", link.URL)
	})
}

func TestTable_Nil(t *testing.T) {
	t.Parallel()

	var table *links.Table

	_, ok := table.Link("concepts")
	assert.False(t, ok)

	_, ok = table.Template("concept")
	assert.False(t, ok)
	assert.Equal(t, 0, table.Len())
	assert.Empty(t, table.Links())
}

func TestTable_CopiesAreIndependent(t *testing.T) {
	t.Parallel()

	header := http.Header{}
	header.Set(links.HeaderLink, `<http://h.example/api/views/>; rel="views"`)

	table := links.Parse(header, nil)
	copied := table.Links()
	copied["views"] = "changed"

	link, _ := table.Link("views")
	assert.Equal(t, "http://h.example/api/views/", link.URL)
}
