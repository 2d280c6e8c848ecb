// Package metadata builds per-page Open Graph and Twitter card metadata and
// renders it into <head> tags.
package metadata

// Keys of the auxiliary label/data pairs surfaced to link-preview crawlers.
// The names are read verbatim by crawlers and must not change.
const (
	KeyLabel1 = "twitter:label1"
	KeyData1  = "twitter:data1"
	KeyLabel2 = "twitter:label2"
	KeyData2  = "twitter:data2"
)

// OtherKeys lists the keys of Output.Other in render order.
var OtherKeys = []string{KeyLabel1, KeyData1, KeyLabel2, KeyData2}

// Label is an auxiliary name/value annotation. Data holds a string or a number.
type Label struct {
	Name string
	Data any
}

// Input describes a single page. Title, Description and Path are required;
// Path must start with "/". An empty Image selects the site default.
type Input struct {
	Title       string
	Description string
	Path        string
	Image       string
	Label1      *Label
	Label2      *Label
}

// OpenGraph is the og:* block.
type OpenGraph struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	SiteName    string `json:"siteName"`
	Images      string `json:"images"`
	Locale      string `json:"locale"`
	Type        string `json:"type,omitempty"`
}

// Twitter is the twitter:* card block.
type Twitter struct {
	Card        string `json:"card"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Images      string `json:"images"`
}

// Output is the metadata document consumed by Head.
type Output struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	OpenGraph   OpenGraph      `json:"openGraph"`
	Twitter     Twitter        `json:"twitter"`
	Other       map[string]any `json:"other"`
}

// Site holds the constants every page shares.
type Site struct {
	Origin       string // scheme://host, no trailing slash
	SiteName     string
	Brand        string // appended to every description
	DefaultImage string
	Locale       string
	Card         string
}

// Default is the production site.
var Default = Site{
	Origin:       "https://hyunsu-dev.vercel.app",
	SiteName:     "hyunsu-dev.vercel.app",
	Brand:        "현수 개발 블로그, hyunsu.dev",
	DefaultImage: "/main.jpg",
	Locale:       "ko_KR",
	Card:         "summary_large_image",
}

// Build returns the metadata for in using the Default site.
func Build(in Input) Output {
	return Default.Build(in)
}

// Build derives the page metadata. URLs are formed by plain concatenation of
// Origin and the caller's path, so in.Path and in.Image need a leading slash.
func (s Site) Build(in Input) Output {
	image := in.Image
	if image == "" {
		image = s.DefaultImage
	}
	images := s.Origin + image
	description := in.Description + " | " + s.Brand

	return Output{
		Title:       in.Title,
		Description: description,
		OpenGraph: OpenGraph{
			Title:       in.Title,
			Description: description,
			URL:         s.Origin + in.Path,
			SiteName:    s.SiteName,
			Images:      images,
			Locale:      s.Locale,
		},
		Twitter: Twitter{
			Card:        s.Card,
			Title:       in.Title,
			Description: description,
			Images:      images,
		},
		Other: other(in.Label1, in.Label2),
	}
}

// Root returns the site-wide metadata used by the home page. Unlike Build it
// does not append the brand to description.
func (s Site) Root(title, description string) Output {
	images := s.Origin + s.DefaultImage
	return Output{
		Title:       title,
		Description: description,
		OpenGraph: OpenGraph{
			Title:       title,
			Description: description,
			URL:         s.Origin,
			SiteName:    s.SiteName,
			Images:      images,
			Locale:      s.Locale,
			Type:        "website",
		},
		Twitter: Twitter{
			Card:        s.Card,
			Title:       title,
			Description: description,
			Images:      images,
		},
		Other: other(nil, nil),
	}
}

func other(l1, l2 *Label) map[string]any {
	name1, data1 := labelValues(l1)
	name2, data2 := labelValues(l2)
	return map[string]any{
		KeyLabel1: name1,
		KeyData1:  data1,
		KeyLabel2: name2,
		KeyData2:  data2,
	}
}

// labelValues keeps a present label's data as-is (string or number); only
// the absent case is filled with empty strings.
func labelValues(l *Label) (string, any) {
	if l == nil {
		return "", ""
	}
	if l.Data == nil {
		return l.Name, ""
	}
	return l.Name, l.Data
}
