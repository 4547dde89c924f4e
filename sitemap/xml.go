package sitemap

import (
    "encoding/xml"
    "fmt"
    "os"
    "path/filepath"

    "github.com/pkg/errors"
)

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlEntry struct {
    XMLName    xml.Name `xml:"url"`
    Loc        string   `xml:"loc"`
    ChangeFreq string   `xml:"changefreq"`
    Priority   string   `xml:"priority"`
}

type urlSet struct {
    XMLName xml.Name   `xml:"urlset"`
    XMLNS   string     `xml:"xmlns,attr"`
    URLs    []urlEntry `xml:"url"`
}

type indexEntry struct {
    XMLName xml.Name `xml:"sitemap"`
    Loc     string   `xml:"loc"`
    LastMod string   `xml:"lastmod"`
}

type sitemapIndex struct {
    XMLName  xml.Name     `xml:"sitemapindex"`
    XMLNS    string       `xml:"xmlns,attr"`
    Sitemaps []indexEntry `xml:"sitemap"`
}

// WriteURLSet writes one urlset file with a weekly change frequency.
func WriteURLSet(path string, urls []string, priority float64) error {
    set := urlSet{XMLNS: xmlns}
    for _, u := range urls {
        set.URLs = append(set.URLs, urlEntry{
            Loc:        u,
            ChangeFreq: "weekly",
            Priority:   fmt.Sprintf("%.1f", priority),
        })
    }
    return writeXML(path, set)
}

// WriteIndex writes a sitemap index pointing at locs.
func WriteIndex(path string, locs []string, lastMod string) error {
    index := sitemapIndex{XMLNS: xmlns}
    for _, loc := range locs {
        index.Sitemaps = append(index.Sitemaps, indexEntry{Loc: loc, LastMod: lastMod})
    }
    return writeXML(path, index)
}

func writeXML(path string, v any) error {
    output, err := xml.MarshalIndent(v, "", "  ")
    if err != nil {
        return errors.Wrapf(err, "failed to encode %s", path)
    }

    content := xml.Header + string(output) + "\n"

    if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
        return errors.Wrapf(err, "failed to create directory for %s", path)
    }
    if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
        return errors.Wrapf(err, "failed to write %s", path)
    }
    return nil
}

// ReadIndex returns the sitemap locations listed in an index file.
func ReadIndex(path string) ([]string, error) {
    data, err := os.ReadFile(path)
    if err != nil {
        return nil, errors.Wrapf(err, "failed to read %s", path)
    }

    var index sitemapIndex
    if err := xml.Unmarshal(data, &index); err != nil {
        return nil, errors.Wrapf(err, "failed to decode %s", path)
    }

    locs := make([]string, 0, len(index.Sitemaps))
    for _, s := range index.Sitemaps {
        locs = append(locs, s.Loc)
    }
    return locs, nil
}

// ReadURLSet returns the page locations listed in a urlset file.
func ReadURLSet(path string) ([]string, error) {
    data, err := os.ReadFile(path)
    if err != nil {
        return nil, errors.Wrapf(err, "failed to read %s", path)
    }

    var set urlSet
    if err := xml.Unmarshal(data, &set); err != nil {
        return nil, errors.Wrapf(err, "failed to decode %s", path)
    }

    locs := make([]string, 0, len(set.URLs))
    for _, u := range set.URLs {
        locs = append(locs, u.Loc)
    }
    return locs, nil
}
