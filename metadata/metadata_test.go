package metadata

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const brandSuffix = " | 현수 개발 블로그, hyunsu.dev"

func TestBuildDefaultImage(t *testing.T) {
	out := Build(Input{Title: "A", Description: "B", Path: "/blog/x"})

	assert.Equal(t, "https://hyunsu-dev.vercel.app/main.jpg", out.OpenGraph.Images)
	assert.Equal(t, "https://hyunsu-dev.vercel.app/main.jpg", out.Twitter.Images)
}

func TestBuildCustomImage(t *testing.T) {
	out := Build(Input{Title: "A", Description: "B", Path: "/blog/x", Image: "/x.png"})

	assert.Equal(t, "https://hyunsu-dev.vercel.app/x.png", out.OpenGraph.Images)
	assert.Equal(t, out.OpenGraph.Images, out.Twitter.Images)
}

func TestBuildScenario(t *testing.T) {
	out := Build(Input{Title: "A", Description: "B", Path: "/blog/x"})

	assert.Equal(t, "A", out.Title)
	assert.Equal(t, "https://hyunsu-dev.vercel.app/blog/x", out.OpenGraph.URL)
	assert.Equal(t, "B | 현수 개발 블로그, hyunsu.dev", out.Description)
	assert.Equal(t, "hyunsu-dev.vercel.app", out.OpenGraph.SiteName)
	assert.Equal(t, "ko_KR", out.OpenGraph.Locale)
	assert.Equal(t, "summary_large_image", out.Twitter.Card)
	assert.Empty(t, out.OpenGraph.Type)
}

func TestBuildDescriptionSuffix(t *testing.T) {
	for _, desc := range []string{"", "B", "Go 동시성 정리", "ends with |"} {
		out := Build(Input{Title: "t", Description: desc, Path: "/"})
		assert.Equal(t, desc+brandSuffix, out.Description)
		assert.Equal(t, out.Description, out.OpenGraph.Description)
		assert.Equal(t, out.Description, out.Twitter.Description)
	}
}

func TestBuildChannelsAgree(t *testing.T) {
	out := Build(Input{Title: "Title", Description: "D", Path: "/p", Image: "/i.png"})

	assert.Equal(t, out.Title, out.OpenGraph.Title)
	assert.Equal(t, out.Title, out.Twitter.Title)
}

func TestBuildNoPathNormalization(t *testing.T) {
	s := Default
	s.Origin = "https://example.com/"
	out := s.Build(Input{Title: "t", Description: "d", Path: "/a/"})

	assert.Equal(t, "https://example.com//a/", out.OpenGraph.URL)
}

func TestBuildLabelsAbsent(t *testing.T) {
	out := Build(Input{Title: "t", Description: "d", Path: "/"})

	require.Len(t, out.Other, 4)
	for _, key := range OtherKeys {
		v, ok := out.Other[key]
		require.True(t, ok, "missing key %s", key)
		assert.Equal(t, "", v, key)
	}
}

func TestBuildLabelsPassThrough(t *testing.T) {
	out := Build(Input{
		Title:       "t",
		Description: "d",
		Path:        "/",
		Label1:      &Label{Name: "Reading time", Data: 5},
		Label2:      &Label{Name: "Written on", Data: "2024-01-15"},
	})

	assert.Equal(t, "Reading time", out.Other[KeyLabel1])
	assert.Equal(t, 5, out.Other[KeyData1])
	assert.Equal(t, "Written on", out.Other[KeyLabel2])
	assert.Equal(t, "2024-01-15", out.Other[KeyData2])
}

func TestBuildLabelOneSided(t *testing.T) {
	out := Build(Input{
		Title:       "t",
		Description: "d",
		Path:        "/",
		Label2:      &Label{Name: "Views", Data: 3.5},
	})

	assert.Equal(t, "", out.Other[KeyLabel1])
	assert.Equal(t, "", out.Other[KeyData1])
	assert.Equal(t, "Views", out.Other[KeyLabel2])
	assert.Equal(t, 3.5, out.Other[KeyData2])
}

func TestBuildLabelNilData(t *testing.T) {
	out := Build(Input{Title: "t", Description: "d", Path: "/", Label1: &Label{Name: "n"}})

	assert.Equal(t, "n", out.Other[KeyLabel1])
	assert.Equal(t, "", out.Other[KeyData1])
}

func TestBuildIdempotent(t *testing.T) {
	in := Input{
		Title:       "t",
		Description: "d",
		Path:        "/blog/y",
		Image:       "/y.jpg",
		Label1:      &Label{Name: "a", Data: 1},
	}
	assert.Equal(t, Build(in), Build(in))
}

func TestRoot(t *testing.T) {
	out := Default.Root("HyunSu | Frontend Engineer", "hyunsu.dev, 프론트엔드 개발자의 블로그")

	assert.Equal(t, "hyunsu.dev, 프론트엔드 개발자의 블로그", out.Description)
	assert.Equal(t, "website", out.OpenGraph.Type)
	assert.Equal(t, "https://hyunsu-dev.vercel.app", out.OpenGraph.URL)
	assert.Equal(t, "https://hyunsu-dev.vercel.app/main.jpg", out.OpenGraph.Images)
	assert.Len(t, out.Other, 4)
}

func TestHead(t *testing.T) {
	out := Build(Input{
		Title:       `Go & "templ"`,
		Description: "B",
		Path:        "/blog/x",
		Label1:      &Label{Name: "Reading time", Data: 7},
	})

	var buf bytes.Buffer
	require.NoError(t, Head(out).Render(context.Background(), &buf))
	html := buf.String()
	assert.True(t, strings.HasPrefix(html, "<title>Go &amp; &#34;templ&#34;</title>"), html)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><head>" + html + "</head></html>"))
	require.NoError(t, err)

	content := func(sel string) string {
		v, ok := doc.Find(sel).Attr("content")
		require.True(t, ok, sel)
		return v
	}
	assert.Equal(t, "https://hyunsu-dev.vercel.app/blog/x", content(`meta[property="og:url"]`))
	assert.Equal(t, "B"+brandSuffix, content(`meta[name="description"]`))
	assert.Equal(t, "summary_large_image", content(`meta[name="twitter:card"]`))
	assert.Equal(t, "Reading time", content(`meta[name="twitter:label1"]`))
	assert.Equal(t, "7", content(`meta[name="twitter:data1"]`))
	assert.Equal(t, "", content(`meta[name="twitter:label2"]`))
	assert.Equal(t, "", content(`meta[name="twitter:data2"]`))
	assert.Equal(t, 0, doc.Find(`meta[property="og:type"]`).Length())

	href, _ := doc.Find(`link[rel="canonical"]`).Attr("href")
	assert.Equal(t, "https://hyunsu-dev.vercel.app/blog/x", href)
}
