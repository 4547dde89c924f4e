package htmlpatch

import (
    "bytes"
    "fmt"
    "strings"

    "github.com/PuerkitoBio/goquery"
    "github.com/pkg/errors"

    "tradematch-seo/models"
)

// SlotAttr marks an element as a filled, named region of a page.
const SlotAttr = "data-tm-slot"

type Slot string

const (
    SlotCSS          Slot = "css"
    SlotNav          Slot = "nav"
    SlotBreadcrumbs  Slot = "breadcrumbs"
    SlotContextual   Slot = "contextual"
    SlotNearby       Slot = "nearby"
    SlotPopular      Slot = "popular"
    SlotFooter       Slot = "footer"
    SlotServicesGrid Slot = "services_grid"
    SlotCitiesGrid   Slot = "cities_grid"
)

// AllSlots is the fill order used by Patch. Contextual is prepended before
// breadcrumbs so the breadcrumbs end up first in the content area.
var AllSlots = []Slot{
    SlotCSS,
    SlotNav,
    SlotContextual,
    SlotBreadcrumbs,
    SlotNearby,
    SlotPopular,
    SlotFooter,
    SlotServicesGrid,
    SlotCitiesGrid,
}

var legacyMarkers = map[Slot]string{
    SlotCSS:         CSSMarker,
    SlotNav:         NavMarkerStart,
    SlotBreadcrumbs: BreadcrumbMarkerStart,
    SlotContextual:  ContextMarkerStart,
    SlotNearby:      NearbyMarkerStart,
    SlotPopular:     PopularMarkerStart,
}

// Content is the kept link set for one page plus the labels its fragments need.
type Content struct {
    ServiceName  string
    LocationName string

    Nav          []models.Link
    Breadcrumbs  []models.Link
    Contextual   []models.Link
    Nearby       []models.Link
    Popular      []models.Link
    Footer       []models.Link
    ServicesGrid []models.Link
    CitiesGrid   []models.Link

    // AllowServicesGrid false demotes every service card.
    AllowServicesGrid bool
}

// ContentFromSections maps budgeted sections onto page content.
func ContentFromSections(kept models.Sections, serviceName, locationName string, allowServicesGrid bool) *Content {
    return &Content{
        ServiceName:       serviceName,
        LocationName:      locationName,
        Nav:               kept[models.ContextNav],
        Breadcrumbs:       kept[models.ContextBreadcrumbs],
        Contextual:        kept[models.ContextContextual],
        Nearby:            kept[models.ContextNearby],
        Popular:           kept[models.ContextPopular],
        Footer:            kept[models.ContextFooter],
        ServicesGrid:      kept[models.ContextServicesGrid],
        CitiesGrid:        kept[models.ContextCitiesGrid],
        AllowServicesGrid: allowServicesGrid,
    }
}

func slotSelector(slot Slot) string {
    return fmt.Sprintf(`[%s="%s"]`, SlotAttr, slot)
}

// Filled reports whether slot is already present in the parsed page, either as
// a marked element or through a legacy marker in the raw bytes.
func Filled(doc *goquery.Document, raw []byte, slot Slot) bool {
    if doc.Find(slotSelector(slot)).Length() > 0 {
        return true
    }
    if marker, ok := legacyMarkers[slot]; ok && bytes.Contains(raw, []byte(marker)) {
        return true
    }
    if slot == SlotFooter && bytes.Contains(raw, []byte(FooterMarker)) {
        return true
    }
    return false
}

// Patch fills every empty slot it can anchor and returns the new page along
// with the slots it filled. When nothing is filled the input bytes are
// returned as is.
func Patch(page []byte, c *Content) ([]byte, []Slot, error) {
    doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
    if err != nil {
        return nil, nil, errors.Wrap(err, "failed to parse page")
    }

    var filled []Slot
    for _, slot := range AllSlots {
        if Filled(doc, page, slot) {
            continue
        }
        if fill(doc, slot, c) {
            filled = append(filled, slot)
        }
    }

    if len(filled) == 0 {
        return page, nil, nil
    }

    out, err := doc.Html()
    if err != nil {
        return nil, nil, errors.Wrap(err, "failed to render page")
    }
    return []byte(out), filled, nil
}

// contentColumn is the element nearby and popular sections are appended to:
// the sibling just before the sidebar, else the content area itself.
func contentColumn(doc *goquery.Document) *goquery.Selection {
    aside := doc.Find("aside").First()
    if aside.Length() > 0 {
        if prev := aside.Prev(); prev.Length() > 0 {
            return prev
        }
    }
    return doc.Find("div.content-area").First()
}

func fill(doc *goquery.Document, slot Slot, c *Content) bool {
    switch slot {
    case SlotCSS:
        head := doc.Find("head").First()
        if head.Length() == 0 {
            return false
        }
        head.AppendHtml(RenderCSS())

    case SlotNav:
        body := doc.Find("body").First()
        if body.Length() == 0 {
            return false
        }
        body.PrependHtml(RenderNav(c.Nav))

    case SlotBreadcrumbs:
        area := doc.Find("div.content-area").First()
        if area.Length() == 0 {
            return false
        }
        area.PrependHtml(RenderBreadcrumbs(c.Breadcrumbs, c.LocationName))

    case SlotContextual:
        area := doc.Find("div.content-area").First()
        if area.Length() == 0 {
            return false
        }
        area.PrependHtml(RenderContextual(c.Contextual))

    case SlotNearby:
        col := contentColumn(doc)
        if col.Length() == 0 {
            return false
        }
        col.AppendHtml(RenderNearby(c.Nearby, c.ServiceName))

    case SlotPopular:
        col := contentColumn(doc)
        if col.Length() == 0 {
            return false
        }
        col.AppendHtml(RenderPopular(c.Popular, c.LocationName))

    case SlotFooter:
        grid := doc.Find("div.footer-grid").First()
        if grid.Length() == 0 {
            return false
        }
        grid.SetHtml(RenderFooterGrid(c.Footer))
        grid.SetAttr(SlotAttr, string(SlotFooter))

    case SlotCitiesGrid:
        grid := doc.Find("div.cities-grid").First()
        if grid.Length() == 0 {
            return false
        }
        grid.SetHtml(RenderLinkList(c.CitiesGrid))
        grid.SetAttr(SlotAttr, string(SlotCitiesGrid))

    case SlotServicesGrid:
        return patchServiceCards(doc, c)

    default:
        return false
    }
    return true
}

// patchServiceCards weights every unmarked service card whose href survived the
// budget and demotes the rest to plain blocks with weight 0.
func patchServiceCards(doc *goquery.Document, c *Content) bool {
    kept := make(map[string]models.Link, len(c.ServicesGrid))
    if c.AllowServicesGrid {
        for _, link := range c.ServicesGrid {
            kept[link.URL] = link
        }
    }

    cards := doc.Find("a.service-card").FilterFunction(func(_ int, s *goquery.Selection) bool {
        _, marked := s.Attr(SlotAttr)
        return !marked
    })
    if cards.Length() == 0 {
        return false
    }

    cards.Each(func(_ int, card *goquery.Selection) {
        href, _ := card.Attr("href")
        if link, ok := kept[strings.TrimRight(href, "/")]; ok {
            card.SetAttr("data-link-weight", fmt.Sprintf("%.2f", link.Weight))
            card.SetAttr(SlotAttr, string(SlotServicesGrid))
            return
        }

        inner, _ := card.Html()
        card.ReplaceWithHtml(fmt.Sprintf(`<div class="service-card" data-link-weight="0" %s>%s</div>`,
            slotAttr(SlotServicesGrid), inner))
    })
    return true
}
