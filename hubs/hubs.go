package hubs

import (
    "tradematch-seo/linking"
    "tradematch-seo/models"
    "tradematch-seo/utils"
)

const (
    // HubValue is the authority of the index and per-service hubs.
    HubValue = 80
    // HubDepth is recorded for every hub page.
    HubDepth = 1

    HubCities      = 30
    HubServices    = 6
    HubNearbyLimit = 10
)

// Page is one hub page ready to render and record.
type Page struct {
    URL       string
    Title     string
    Intro     string
    PageValue int
    Links     []models.Link
    Nav       []models.Link
    Footer    []models.Link
}

// Build lists every hub page: the services and locations indexes, one hub per
// service and one per location.
func Build(e *linking.Engine) []Page {
    c := e.Catalog()
    nav := e.NavLinks(HubValue)
    footer := e.FooterLinks(HubValue)

    pages := make([]Page, 0, 2+len(c.Services)+len(c.Locations))

    indexWeight := linking.Weight(HubValue, linking.MultiplierContextual, 1)
    var serviceIndex []models.Link
    for _, svc := range c.Services {
        serviceIndex = append(serviceIndex, linking.NewLink(
            utils.ServiceHubURL(svc.Slug), svc.Name+" services", indexWeight, models.ContextContextual))
    }
    pages = append(pages, Page{
        URL:       "/services/",
        Title:     "All TradeMatch Services",
        Intro:     "Browse service categories and compare trusted professionals.",
        PageValue: HubValue,
        Links:     serviceIndex,
        Nav:       nav,
        Footer:    footer,
    })

    var locationIndex []models.Link
    for _, city := range c.MajorCities {
        locationIndex = append(locationIndex, linking.NewLink(
            utils.LocationHubURL(city.Slug), "Tradespeople in "+city.Name, indexWeight, models.ContextContextual))
    }
    pages = append(pages, Page{
        URL:       "/locations/",
        Title:     "TradeMatch Locations",
        Intro:     "Explore top UK locations and compare services nearby.",
        PageValue: HubValue,
        Links:     locationIndex,
        Nav:       nav,
        Footer:    footer,
    })

    cities := c.MajorCities
    if len(cities) > HubCities {
        cities = cities[:HubCities]
    }
    cityWeight := linking.Weight(HubValue, linking.MultiplierContextual, 2)
    for _, svc := range c.Services {
        var links []models.Link
        for _, city := range cities {
            links = append(links, linking.NewLink(
                utils.ServiceLocationURL(svc.Slug, city.Slug), svc.Name+" in "+city.Name, cityWeight, models.ContextContextual))
        }
        pages = append(pages, Page{
            URL:       utils.ServiceHubURL(svc.Slug),
            Title:     svc.Name + " Services",
            Intro:     "Compare verified professionals and request quotes in top UK cities.",
            PageValue: HubValue,
            Links:     links,
            Nav:       nav,
            Footer:    footer,
        })
    }

    for _, loc := range c.Locations {
        pages = append(pages, locationHub(e, loc))
    }

    return pages
}

// locationHub links non-village locations to their popular services and to
// nearby non-village hubs. Village hubs carry navigation only.
func locationHub(e *linking.Engine, loc models.Location) Page {
    c := e.Catalog()
    value := e.PageValue(loc)

    var links []models.Link
    if e.Tier(loc) != models.TierVillage {
        depth := e.PageDepth(loc)
        services := c.Services
        if len(services) > HubServices {
            services = services[:HubServices]
        }
        for _, svc := range services {
            links = append(links, linking.NewLink(
                utils.ServiceLocationURL(svc.Slug, loc.Slug),
                svc.Name+" in "+loc.Name,
                linking.Weight(value, linking.MultiplierContextual, depth),
                models.ContextContextual,
            ))
        }
        for _, town := range e.NearbyLocations(loc, HubNearbyLimit) {
            if e.Tier(town) == models.TierVillage {
                continue
            }
            links = append(links, linking.NewLink(
                utils.LocationHubURL(town.Slug),
                town.Name+" hub",
                linking.Weight(value, linking.MultiplierNearby, 1),
                models.ContextNearby,
            ))
        }
    }

    return Page{
        URL:       utils.LocationHubURL(loc.Slug),
        Title:     "Tradespeople in " + loc.Name,
        Intro:     "Explore popular services and compare quotes from local professionals.",
        PageValue: value,
        Links:     linking.FilterByWeight(links),
        Nav:       e.NavLinks(value),
        Footer:    e.FooterLinks(value),
    }
}
