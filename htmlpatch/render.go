package htmlpatch

import (
    "fmt"
    "html"
    "strings"

    "tradematch-seo/models"
)

// Legacy comment markers wrapped around rendered fragments. Pages patched by
// earlier tooling carry only these, so they also count as filled slots.
const (
    CSSMarker             = "/* TM-INTERNAL-LINKS-CSS */"
    NavMarkerStart        = "<!-- TM-NAV-START -->"
    NavMarkerEnd          = "<!-- TM-NAV-END -->"
    BreadcrumbMarkerStart = "<!-- TM-BREADCRUMBS-START -->"
    BreadcrumbMarkerEnd   = "<!-- TM-BREADCRUMBS-END -->"
    ContextMarkerStart    = "<!-- TM-CONTEXTUAL-START -->"
    ContextMarkerEnd      = "<!-- TM-CONTEXTUAL-END -->"
    NearbyMarkerStart     = "<!-- TM-NEARBY-START -->"
    NearbyMarkerEnd       = "<!-- TM-NEARBY-END -->"
    PopularMarkerStart    = "<!-- TM-POPULAR-START -->"
    PopularMarkerEnd      = "<!-- TM-POPULAR-END -->"
    FooterMarker          = "<!-- TM-FOOTER-LINKS -->"
)

const stylesheet = `
        .site-nav { position: sticky; top: 0; z-index: 20; background: rgba(26, 35, 50, 0.9); border-bottom: 1px solid rgba(255, 255, 255, 0.08); }
        .nav-inner { display: flex; align-items: center; justify-content: space-between; padding: 14px 0; }
        .nav-logo { font-weight: 800; color: #fff; text-decoration: none; }
        .nav-links { display: flex; align-items: center; gap: 18px; }
        .nav-links a, .nav-dropdown summary { color: #fff; text-decoration: none; font-weight: 600; font-size: 14px; cursor: pointer; }
        .nav-dropdown { position: relative; }
        .nav-dropdown summary { list-style: none; }
        .dropdown-menu { position: absolute; top: 36px; left: 0; min-width: 220px; background: #0f172a; border-radius: 12px; padding: 12px; display: grid; gap: 8px; }
        .dropdown-menu a { color: #e2e8f0; text-decoration: none; font-size: 14px; }
        .breadcrumbs { margin-bottom: 16px; font-size: 14px; }
        .breadcrumbs a { color: #0f766e; text-decoration: none; font-weight: 600; }
        .contextual-links { margin: 24px 0; padding: 16px; border-radius: 12px; background: #f7fafc; }
        .contextual-link-list { margin: 12px 0 0; padding-left: 18px; }
        .nearby-areas, .popular-services { margin: 24px 0; padding: 16px; border-radius: 12px; background: #f9fafb; }
        .link-pill-list { display: flex; flex-wrap: wrap; gap: 10px; margin-top: 12px; }
        .link-pill-list a { background: #ecfeff; color: #0f766e; padding: 6px 12px; border-radius: 999px; text-decoration: none; font-size: 13px; font-weight: 600; }
`

// RenderLink renders one anchor carrying its weight.
func RenderLink(link models.Link) string {
    return fmt.Sprintf(`<a href="%s" data-link-weight="%.2f">%s</a>`,
        html.EscapeString(link.URL), link.Weight, html.EscapeString(link.Label))
}

func RenderLinkList(links []models.Link) string {
    var b strings.Builder
    for _, link := range links {
        b.WriteString(RenderLink(link))
    }
    return b.String()
}

func slotAttr(slot Slot) string {
    return fmt.Sprintf(`%s="%s"`, SlotAttr, slot)
}

func RenderCSS() string {
    return fmt.Sprintf("<style %s>\n        %s%s    </style>", slotAttr(SlotCSS), CSSMarker, stylesheet)
}

// RenderNav splits nav links into core links and the services and locations
// dropdowns.
func RenderNav(links []models.Link) string {
    var core, services, cities []models.Link
    for _, link := range links {
        switch {
        case strings.HasPrefix(link.URL, "/services/") && strings.Count(link.URL, "/") == 3 && link.URL != "/services/":
            services = append(services, link)
        case strings.HasPrefix(link.URL, "/locations/") && link.URL != "/locations/":
            cities = append(cities, link)
        default:
            core = append(core, link)
        }
    }

    var b strings.Builder
    b.WriteString(NavMarkerStart)
    fmt.Fprintf(&b, `<nav class="site-nav" %s>`, slotAttr(SlotNav))
    b.WriteString(`<div class="container nav-inner">`)
    b.WriteString(`<a class="nav-logo" href="/">TradeMatch</a>`)
    b.WriteString(`<div class="nav-links">`)
    b.WriteString(RenderLinkList(core))
    b.WriteString(`<details class="nav-dropdown"><summary>Services</summary>`)
    fmt.Fprintf(&b, `<div class="dropdown-menu">%s</div></details>`, RenderLinkList(services))
    b.WriteString(`<details class="nav-dropdown"><summary>Locations</summary>`)
    fmt.Fprintf(&b, `<div class="dropdown-menu">%s</div></details>`, RenderLinkList(cities))
    b.WriteString(`</div></div></nav>`)
    b.WriteString(NavMarkerEnd)
    return b.String()
}

func RenderBreadcrumbs(links []models.Link, locationName string) string {
    items := make([]string, 0, len(links))
    for _, link := range links {
        items = append(items, RenderLink(link))
    }

    var b strings.Builder
    b.WriteString(BreadcrumbMarkerStart)
    fmt.Fprintf(&b, `<nav class="breadcrumbs" aria-label="Breadcrumb" %s>`, slotAttr(SlotBreadcrumbs))
    b.WriteString(strings.Join(items, " › "))
    fmt.Fprintf(&b, ` › <span>%s</span>`, html.EscapeString(locationName))
    b.WriteString(`</nav>`)
    b.WriteString(BreadcrumbMarkerEnd)
    return b.String()
}

func RenderContextual(links []models.Link) string {
    var b strings.Builder
    b.WriteString(ContextMarkerStart)
    fmt.Fprintf(&b, `<div class="contextual-links" %s>`, slotAttr(SlotContextual))
    b.WriteString(`<p>Explore related services and nearby options to compare quotes and availability.</p>`)
    b.WriteString(`<ul class="contextual-link-list">`)
    for _, link := range links {
        fmt.Fprintf(&b, `<li>%s</li>`, RenderLink(link))
    }
    b.WriteString(`</ul></div>`)
    b.WriteString(ContextMarkerEnd)
    return b.String()
}

func RenderNearby(links []models.Link, serviceName string) string {
    var b strings.Builder
    b.WriteString(NearbyMarkerStart)
    fmt.Fprintf(&b, `<div class="nearby-areas" %s>`, slotAttr(SlotNearby))
    fmt.Fprintf(&b, `<h3>%s services in nearby areas</h3>`, html.EscapeString(serviceName))
    fmt.Fprintf(&b, `<div class="link-pill-list">%s</div>`, RenderLinkList(links))
    b.WriteString(`</div>`)
    b.WriteString(NearbyMarkerEnd)
    return b.String()
}

func RenderPopular(links []models.Link, locationName string) string {
    var b strings.Builder
    b.WriteString(PopularMarkerStart)
    fmt.Fprintf(&b, `<div class="popular-services" %s>`, slotAttr(SlotPopular))
    fmt.Fprintf(&b, `<h3>Popular services in %s</h3>`, html.EscapeString(locationName))
    fmt.Fprintf(&b, `<div class="link-pill-list">%s</div>`, RenderLinkList(links))
    b.WriteString(`</div>`)
    b.WriteString(PopularMarkerEnd)
    return b.String()
}

// RenderFooterGrid renders the footer-grid contents: a services column and a
// cities column.
func RenderFooterGrid(links []models.Link) string {
    var services, cities []models.Link
    for _, link := range links {
        if strings.Contains(link.URL, "/services/") {
            services = append(services, link)
        } else if strings.Contains(link.URL, "/locations/") {
            cities = append(cities, link)
        }
    }

    var b strings.Builder
    b.WriteString(FooterMarker)
    b.WriteString(`<div class="footer-column"><h4>Top Services</h4>`)
    fmt.Fprintf(&b, `<div class="footer-links">%s</div></div>`, RenderLinkList(services))
    b.WriteString(`<div class="footer-column"><h4>Top Cities</h4>`)
    fmt.Fprintf(&b, `<div class="footer-links">%s</div></div>`, RenderLinkList(cities))
    return b.String()
}
