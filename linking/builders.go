package linking

import (
    "tradematch-seo/catalog"
    "tradematch-seo/models"
    "tradematch-seo/utils"
)

const (
    TopNavServices       = 8
    TopNavCities         = 10
    FooterServiceLinks   = 10
    FooterCityLinks      = 10
    NearbyLimit          = 8
    RelatedServicesLimit = 6
    PopularServices      = 6
    CityGridSize         = 10

    // AuthorityThreshold is the page value needed to carry footer and
    // services-grid links.
    AuthorityThreshold = 55
)

// Engine builds per-context candidate links from a shared read-only catalog.
type Engine struct {
    catalog *catalog.Catalog
    majors  map[string]bool
}

func NewEngine(c *catalog.Catalog) *Engine {
    return &Engine{
        catalog: c,
        majors:  c.MajorCitySlugs(),
    }
}

func (e *Engine) Catalog() *catalog.Catalog {
    return e.catalog
}

func (e *Engine) Tier(loc models.Location) models.Tier {
    return ClassifyTier(loc, e.majors)
}

func (e *Engine) PageValue(loc models.Location) int {
    return PageValue(e.Tier(loc))
}

func (e *Engine) PageDepth(loc models.Location) int {
    return PageDepth(e.Tier(loc))
}

func topServices(services []models.Service, n int) []models.Service {
    if len(services) < n {
        return services
    }
    return services[:n]
}

func topCities(cities []models.Location, n int) []models.Location {
    if len(cities) < n {
        return cities
    }
    return cities[:n]
}

// NavLinks are identical for every tier apart from the source value.
func (e *Engine) NavLinks(value int) []models.Link {
    w1 := Weight(value, MultiplierNav, 1)
    w2 := Weight(value, MultiplierNav, 2)

    links := []models.Link{
        NewLink("/", "Home", w1, models.ContextNav),
        NewLink("/services/", "Services", w1, models.ContextNav),
        NewLink("/locations/", "Locations", w1, models.ContextNav),
        NewLink("/how-it-works.html", "How it works", w2, models.ContextNav),
        NewLink("/quote-engine.html", "Get quotes", w2, models.ContextNav),
    }
    for _, svc := range topServices(e.catalog.Services, TopNavServices) {
        links = append(links, NewLink(utils.ServiceHubURL(svc.Slug), svc.Name, w1, models.ContextNav))
    }
    for _, city := range topCities(e.catalog.MajorCities, TopNavCities) {
        links = append(links, NewLink(utils.LocationHubURL(city.Slug), city.Name, w1, models.ContextNav))
    }

    return FilterByWeight(links)
}

func (e *Engine) BreadcrumbLinks(value int, service models.Service) []models.Link {
    w := Weight(value, MultiplierBreadcrumb, 1)
    links := []models.Link{
        NewLink("/", "Home", w, models.ContextBreadcrumbs),
        NewLink("/services/", "Services", w, models.ContextBreadcrumbs),
        NewLink(utils.ServiceHubURL(service.Slug), service.Name, w, models.ContextBreadcrumbs),
    }
    return FilterByWeight(links)
}

// RelatedServices lists same-category services in catalogue order, topped up
// from the whole catalogue when the category is too small.
func (e *Engine) RelatedServices(current models.Service, limit int) []models.Service {
    related := make([]models.Service, 0, limit)
    taken := map[string]bool{current.Slug: true}

    for _, svc := range e.catalog.Services {
        if len(related) >= limit {
            break
        }
        if svc.Category == current.Category && !taken[svc.Slug] {
            taken[svc.Slug] = true
            related = append(related, svc)
        }
    }
    for _, svc := range e.catalog.Services {
        if len(related) >= limit {
            break
        }
        if !taken[svc.Slug] {
            taken[svc.Slug] = true
            related = append(related, svc)
        }
    }

    return related
}

// ContextualLinks always point at the location hub; non-village pages also get
// up to three related services in the same location.
func (e *Engine) ContextualLinks(value int, service models.Service, loc models.Location) []models.Link {
    links := []models.Link{
        NewLink(utils.LocationHubURL(loc.Slug), loc.Name+" tradespeople", Weight(value, MultiplierContextual, 1), models.ContextContextual),
    }

    if e.Tier(loc) != models.TierVillage {
        depth := e.PageDepth(loc)
        related := e.RelatedServices(service, 5)
        if len(related) > 3 {
            related = related[:3]
        }
        for _, svc := range related {
            links = append(links, NewLink(
                utils.ServiceLocationURL(svc.Slug, loc.Slug),
                svc.Name+" in "+loc.Name,
                Weight(value, MultiplierContextual, depth),
                models.ContextContextual,
            ))
        }
    }

    return FilterByWeight(links)
}

// NearbyLocations applies the link-up-or-sideways policy to the catalog's
// neighbour candidates: nothing less populous than loc survives.
func (e *Engine) NearbyLocations(loc models.Location, limit int) []models.Location {
    village := e.Tier(loc) == models.TierVillage

    var out []models.Location
    for _, other := range e.catalog.Neighbours(loc, limit) {
        if village && other.County != loc.County {
            continue
        }
        if other.Population < loc.Population {
            continue
        }
        out = append(out, other)
        if len(out) >= limit {
            break
        }
    }
    return out
}

func (e *Engine) NearbyLinks(value int, service models.Service, loc models.Location) []models.Link {
    if e.Tier(loc) == models.TierVillage {
        return nil
    }

    var links []models.Link
    for _, other := range e.NearbyLocations(loc, NearbyLimit) {
        links = append(links, NewLink(
            utils.ServiceLocationURL(service.Slug, other.Slug),
            other.Name,
            Weight(value, MultiplierNearby, e.PageDepth(other)),
            models.ContextNearby,
        ))
    }
    return FilterByWeight(links)
}

func (e *Engine) PopularLinks(value int, loc models.Location) []models.Link {
    if e.Tier(loc) == models.TierVillage {
        return nil
    }

    depth := e.PageDepth(loc)
    var links []models.Link
    for _, svc := range topServices(e.catalog.Services, PopularServices) {
        links = append(links, NewLink(
            utils.ServiceLocationURL(svc.Slug, loc.Slug),
            svc.Name,
            Weight(value, MultiplierContextual, depth),
            models.ContextPopular,
        ))
    }
    return FilterByWeight(links)
}

// ServicesGridLinks covers only the curated grid slugs and only for pages at
// or above AuthorityThreshold.
func (e *Engine) ServicesGridLinks(value int, loc models.Location) []models.Link {
    if value < AuthorityThreshold {
        return nil
    }

    depth := e.PageDepth(loc)
    var links []models.Link
    for _, slug := range catalog.ServiceGridSlugs {
        svc, ok := e.catalog.Service(slug)
        if !ok {
            continue
        }
        links = append(links, NewLink(
            utils.ServiceLocationURL(svc.Slug, loc.Slug),
            svc.Name,
            Weight(value, MultiplierContextual, depth),
            models.ContextServicesGrid,
        ))
    }
    return FilterByWeight(links)
}

func (e *Engine) CitiesGridLinks(value int, service models.Service, loc models.Location) []models.Link {
    if e.Tier(loc) == models.TierVillage {
        return nil
    }

    w := Weight(value, MultiplierNearby, 2)
    var links []models.Link
    for _, city := range topCities(e.catalog.MajorCities, CityGridSize) {
        links = append(links, NewLink(
            utils.ServiceLocationURL(service.Slug, city.Slug),
            city.Name,
            w,
            models.ContextCitiesGrid,
        ))
    }
    return FilterByWeight(links)
}

// FooterLinks are withheld entirely from pages below AuthorityThreshold.
func (e *Engine) FooterLinks(value int) []models.Link {
    if value < AuthorityThreshold {
        return nil
    }

    w := Weight(value, MultiplierFooter, 1)
    var links []models.Link
    for _, svc := range topServices(e.catalog.Services, FooterServiceLinks) {
        links = append(links, NewLink(utils.ServiceHubURL(svc.Slug), svc.Name, w, models.ContextFooter))
    }
    for _, city := range topCities(e.catalog.MajorCities, FooterCityLinks) {
        links = append(links, NewLink(utils.LocationHubURL(city.Slug), city.Name, w, models.ContextFooter))
    }
    return FilterByWeight(links)
}
