package hubs

import (
    "bytes"
    "html/template"
    "os"
    "path/filepath"
    "strings"

    "github.com/pkg/errors"

    "tradematch-seo/graph"
    "tradematch-seo/htmlpatch"
    "tradematch-seo/models"
)

var pageTemplate = template.Must(template.New("hub").Funcs(template.FuncMap{
    "nav":    func(links []models.Link) template.HTML { return template.HTML(htmlpatch.RenderNav(links)) },
    "footer": func(links []models.Link) template.HTML { return template.HTML(htmlpatch.RenderFooterGrid(links)) },
}).Parse(`<!DOCTYPE html>
<html lang="en-GB">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1.0" />
  <title>{{.Title}} | TradeMatch</title>
  <style>
    body { font-family: 'Manrope', sans-serif; margin: 0; color: #1A2332; background: #F8FAFB; }
    .container { max-width: 1100px; margin: 0 auto; padding: 24px; }
    .hub-card { background: #fff; padding: 28px; border-radius: 16px; box-shadow: 0 12px 30px rgba(15, 23, 42, 0.08); }
    .hub-links { display: flex; flex-wrap: wrap; gap: 10px; margin-top: 16px; }
    .hub-links a { background: #ecfeff; color: #0f766e; padding: 6px 12px; border-radius: 999px; text-decoration: none; font-weight: 600; font-size: 13px; }
    .footer { background: #111827; color: #fff; padding: 40px 0; margin-top: 48px; }
    .footer-grid { display: grid; grid-template-columns: repeat(2, minmax(0, 1fr)); gap: 24px; }
    .footer-links a { color: #e5e7eb; text-decoration: none; display: block; margin-bottom: 8px; }
  </style>
</head>
<body>
  {{nav .Nav}}
  <main class="container">
    <div class="hub-card">
      <h1>{{.Title}}</h1>
      <p>{{.Intro}}</p>
      <div class="hub-links">{{range .Links}}<a href="{{.URL}}" data-link-weight="{{printf "%.2f" .Weight}}">{{.Label}}</a>{{end}}</div>
    </div>
  </main>
  <footer class="footer"><div class="container">
    <div class="footer-grid">{{footer .Footer}}</div>
    <div class="footer-bottom">
      <p>&copy; 2026 TradeMatch UK. All rights reserved.</p>
      <div class="footer-legal"><a href="/terms-and-conditions">Terms &amp; Conditions</a><a href="/privacy-policy">Privacy Policy</a></div>
    </div>
  </div></footer>
</body>
</html>
`))

// Render produces the full HTML of a hub page.
func Render(p Page) ([]byte, error) {
    var buf bytes.Buffer
    if err := pageTemplate.Execute(&buf, p); err != nil {
        return nil, errors.Wrapf(err, "failed to render hub %s", p.URL)
    }
    return buf.Bytes(), nil
}

// FilePath maps a hub URL such as /services/plumbing/ to its index.html under dir.
func FilePath(dir, url string) string {
    rel := strings.Trim(url, "/")
    return filepath.Join(dir, filepath.FromSlash(rel), "index.html")
}

// Write renders p into dir, overwriting any previous hub.
func Write(dir string, p Page) error {
    data, err := Render(p)
    if err != nil {
        return err
    }

    path := FilePath(dir, p.URL)
    if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
        return errors.Wrapf(err, "failed to create hub directory for %s", p.URL)
    }
    if err := os.WriteFile(path, data, 0o644); err != nil {
        return errors.Wrapf(err, "failed to write hub %s", path)
    }
    return nil
}

// Record adds the hub's body links to the run.
func Record(run *graph.Run, p Page) {
    run.Record(p.URL, p.PageValue, HubDepth, p.Links)
}

// WriteAll writes and records every page, returning how many were written.
func WriteAll(dir string, run *graph.Run, pages []Page) (int, error) {
    for i, p := range pages {
        if err := Write(dir, p); err != nil {
            return i, err
        }
        Record(run, p)
    }
    return len(pages), nil
}
