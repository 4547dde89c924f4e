package linking

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "tradematch-seo/catalog"
    "tradematch-seo/models"
)

func testLocations() []models.Location {
    locations := append([]models.Location{}, catalog.MajorCities...)
    return append(locations,
        models.Location{Name: "Filton", Slug: "filton", City: "Bristol", County: "Bristol", Population: 10000},
        models.Location{Name: "Kingswood", Slug: "kingswood", City: "Bristol", County: "Bristol", Population: 470000},
        models.Location{Name: "Little Village", Slug: "little-village", City: "Exeter", County: "Devon", Population: 800},
        models.Location{Name: "Torquay", Slug: "torquay", City: "Torquay", County: "Devon", Population: 65000},
        models.Location{Name: "Paignton", Slug: "paignton", City: "Torquay", County: "Devon", Population: 50000},
    )
}

func testEngine(t *testing.T) *Engine {
    t.Helper()
    return NewEngine(catalog.Default(testLocations()))
}

func mustLocation(t *testing.T, e *Engine, slug string) models.Location {
    t.Helper()
    loc, ok := e.Catalog().Location(slug)
    require.True(t, ok, "unknown location %s", slug)
    return loc
}

func mustService(t *testing.T, e *Engine, slug string) models.Service {
    t.Helper()
    svc, ok := e.Catalog().Service(slug)
    require.True(t, ok, "unknown service %s", slug)
    return svc
}

func urls(links []models.Link) []string {
    out := make([]string, 0, len(links))
    for _, link := range links {
        out = append(out, link.URL)
    }
    return out
}

func TestClassifyTier(t *testing.T) {
    majors := map[string]bool{"bristol": true}

    tests := []struct {
        name  string
        loc   models.Location
        tier  models.Tier
        value int
        depth int
    }{
        {"major city", models.Location{Slug: "bristol", Population: 465000}, models.TierMajorCity, 70, 2},
        {"major city beats population", models.Location{Slug: "bristol", Population: 0}, models.TierMajorCity, 70, 2},
        {"large town at threshold", models.Location{Slug: "paignton", Population: 50000}, models.TierLargeTown, 55, 3},
        {"village below threshold", models.Location{Slug: "topsham", Population: 49999}, models.TierVillage, 30, 4},
        {"missing population", models.Location{Slug: "nowhere"}, models.TierVillage, 30, 4},
    }

    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            tier := ClassifyTier(tt.loc, majors)
            assert.Equal(t, tt.tier, tier)
            assert.Equal(t, tt.value, PageValue(tier))
            assert.Equal(t, tt.depth, PageDepth(tier))
        })
    }
}

func TestWeight(t *testing.T) {
    assert.Equal(t, 52.5, Weight(70, MultiplierBreadcrumb, 2))
    assert.Equal(t, 70.0, Weight(70, MultiplierNav, 0))
    assert.Equal(t, 70.0, Weight(70, MultiplierNav, -3))
    assert.Greater(t, Weight(70, MultiplierNearby, 2), Weight(55, MultiplierNearby, 2))
    assert.Greater(t, Weight(70, MultiplierContextual, 2), Weight(70, MultiplierNearby, 2))
    assert.Greater(t, Weight(70, MultiplierFooter, 2), Weight(70, MultiplierFooter, 3))
}

func TestNewLinkRoundsWeight(t *testing.T) {
    link := NewLink("/services/plumbing/kingswood", "Kingswood", Weight(70, MultiplierNearby, 3), models.ContextNearby)
    assert.Equal(t, 25.67, link.Weight)
    assert.Equal(t, models.ContextNearby, link.Context)
}

func TestFilterByWeight(t *testing.T) {
    links := []models.Link{
        {URL: "/a", Weight: 14.99},
        {URL: "/b", Weight: 15},
        {URL: "/c", Weight: 40},
    }
    assert.Equal(t, []string{"/b", "/c"}, urls(FilterByWeight(links)))
}

func TestNavLinks(t *testing.T) {
    e := testEngine(t)

    links := e.NavLinks(70)
    require.Len(t, links, 5+TopNavServices+TopNavCities)
    assert.Equal(t, "/", links[0].URL)
    assert.Equal(t, 70.0, links[0].Weight)
    assert.Equal(t, "/quote-engine.html", links[4].URL)
    assert.Equal(t, 35.0, links[4].Weight)
    assert.Equal(t, "/services/bathroom-fitting/", links[5].URL)
    assert.Equal(t, "/locations/london/", links[5+TopNavServices].URL)

    // At value 30 the depth-2 links sit exactly on the floor and survive.
    assert.Len(t, e.NavLinks(30), 5+TopNavServices+TopNavCities)
    // Below that they are cut.
    assert.Len(t, e.NavLinks(29), 3+TopNavServices+TopNavCities)
}

func TestBreadcrumbLinks(t *testing.T) {
    e := testEngine(t)
    plumbing := mustService(t, e, "plumbing")

    links := e.BreadcrumbLinks(70, plumbing)
    assert.Equal(t, []string{"/", "/services/", "/services/plumbing/"}, urls(links))
    assert.Equal(t, "Plumbing", links[2].Label)
    for _, link := range links {
        assert.Equal(t, 105.0, link.Weight)
    }

    assert.Len(t, e.BreadcrumbLinks(30, plumbing), 3)
}

func TestRelatedServices(t *testing.T) {
    e := testEngine(t)

    plumbing := mustService(t, e, "plumbing")
    related := e.RelatedServices(plumbing, 5)
    require.Len(t, related, 5)
    assert.Equal(t, "electrical", related[0].Slug)
    assert.Equal(t, "roofing", related[1].Slug)
    assert.Equal(t, "heating-gas", related[2].Slug)

    small := models.Service{Slug: "odd-job", Category: "Misc"}
    topped := e.RelatedServices(small, RelatedServicesLimit)
    require.Len(t, topped, RelatedServicesLimit)
    assert.Equal(t, "bathroom-fitting", topped[0].Slug)

    for _, svc := range e.RelatedServices(plumbing, 50) {
        assert.NotEqual(t, "plumbing", svc.Slug)
    }
}

func TestContextualLinks(t *testing.T) {
    e := testEngine(t)
    plumbing := mustService(t, e, "plumbing")

    bristol := e.ContextualLinks(70, plumbing, mustLocation(t, e, "bristol"))
    assert.Equal(t, []string{
        "/locations/bristol/",
        "/services/electrical/bristol",
        "/services/roofing/bristol",
        "/services/heating-gas/bristol",
    }, urls(bristol))
    assert.Equal(t, "Bristol tradespeople", bristol[0].Label)
    assert.Equal(t, 91.0, bristol[0].Weight)
    assert.Equal(t, "Electrical in Bristol", bristol[1].Label)
    assert.Equal(t, 45.5, bristol[1].Weight)

    village := e.ContextualLinks(30, plumbing, mustLocation(t, e, "little-village"))
    assert.Equal(t, []string{"/locations/little-village/"}, urls(village))
}

func TestNearbyLocationsLinksUpOrSideways(t *testing.T) {
    e := testEngine(t)
    bristol := mustLocation(t, e, "bristol")

    nearby := e.NearbyLocations(bristol, NearbyLimit)
    slugs := make([]string, 0, len(nearby))
    for _, loc := range nearby {
        assert.GreaterOrEqual(t, loc.Population, bristol.Population)
        slugs = append(slugs, loc.Slug)
    }
    assert.Equal(t, []string{"kingswood", "edinburgh", "liverpool", "sheffield", "glasgow"}, slugs)
}

func TestNearbyLinks(t *testing.T) {
    e := testEngine(t)
    plumbing := mustService(t, e, "plumbing")

    links := e.NearbyLinks(70, plumbing, mustLocation(t, e, "bristol"))
    require.Len(t, links, 5)
    assert.Equal(t, "/services/plumbing/kingswood", links[0].URL)
    assert.Equal(t, "Kingswood", links[0].Label)
    assert.Equal(t, 25.67, links[0].Weight)
    assert.Equal(t, 38.5, links[1].Weight)
}

func TestVillageSectionsAreEmpty(t *testing.T) {
    e := testEngine(t)
    plumbing := mustService(t, e, "plumbing")
    village := models.Location{Name: "Little Village", Slug: "little-village", County: "Devon", Population: 800}

    require.Equal(t, models.TierVillage, e.Tier(village))
    value := e.PageValue(village)

    assert.Empty(t, e.NearbyLinks(value, plumbing, village))
    assert.Empty(t, e.PopularLinks(value, village))
    assert.Empty(t, e.ServicesGridLinks(value, village))
    assert.Empty(t, e.CitiesGridLinks(value, plumbing, village))
    assert.Empty(t, e.FooterLinks(value))
}

func TestPopularAndGrids(t *testing.T) {
    e := testEngine(t)
    plumbing := mustService(t, e, "plumbing")
    torquay := mustLocation(t, e, "torquay")
    require.Equal(t, models.TierLargeTown, e.Tier(torquay))

    popular := e.PopularLinks(55, torquay)
    require.Len(t, popular, PopularServices)
    assert.Equal(t, "/services/bathroom-fitting/torquay", popular[0].URL)
    assert.Equal(t, 23.83, popular[0].Weight)

    grid := e.ServicesGridLinks(55, torquay)
    require.Len(t, grid, len(catalog.ServiceGridSlugs))
    assert.Equal(t, "/services/electrical/torquay", grid[0].URL)

    cities := e.CitiesGridLinks(55, plumbing, torquay)
    require.Len(t, cities, CityGridSize)
    assert.Equal(t, "/services/plumbing/london", cities[0].URL)
    assert.Equal(t, 30.25, cities[0].Weight)

    footer := e.FooterLinks(55)
    require.Len(t, footer, FooterServiceLinks+FooterCityLinks)
    assert.Equal(t, 33.0, footer[0].Weight)
    assert.Empty(t, e.FooterLinks(54))
}

func TestEnforceBudget(t *testing.T) {
    sections := models.Sections{
        models.ContextBreadcrumbs: {
            {URL: "/b1", Weight: 20},
            {URL: "/b2", Weight: 90},
        },
        models.ContextNav: {
            {URL: "/n1", Weight: 30},
            {URL: "/n2", Weight: 30},
            {URL: "/n3", Weight: 60},
        },
        models.ContextFooter: {
            {URL: "/f1", Weight: 99},
        },
    }

    kept := EnforceBudget(sections, 4)
    assert.Equal(t, []string{"/b2", "/b1"}, urls(kept[models.ContextBreadcrumbs]))
    assert.Equal(t, []string{"/n3", "/n1"}, urls(kept[models.ContextNav]))
    assert.Empty(t, kept[models.ContextFooter])
    assert.Len(t, kept, len(models.ContextPriority))

    // Input slices are left untouched.
    assert.Equal(t, "/b1", sections[models.ContextBreadcrumbs][0].URL)
}

func TestPlanPageBristol(t *testing.T) {
    e := testEngine(t)
    plan := e.PlanPage(mustService(t, e, "plumbing"), mustLocation(t, e, "bristol"))

    assert.Equal(t, "/services/plumbing/bristol", plan.URL)
    assert.Equal(t, models.TierMajorCity, plan.Tier)
    assert.Equal(t, 70, plan.PageValue)
    assert.Equal(t, 2, plan.PageDepth)
    assert.True(t, plan.AllowServicesGrid)

    kept := plan.Kept
    assert.Equal(t, MaxLinksPerPage, kept.Total())
    assert.Len(t, kept[models.ContextBreadcrumbs], 3)
    assert.Len(t, kept[models.ContextNav], 23)
    assert.Len(t, kept[models.ContextContextual], 4)
    assert.Len(t, kept[models.ContextNearby], 5)
    assert.Len(t, kept[models.ContextPopular], 6)
    assert.Equal(t, []string{
        "/services/electrical/bristol",
        "/services/plumbing/bristol",
        "/services/heating-gas/bristol",
        "/services/carpentry/bristol",
    }, urls(kept[models.ContextServicesGrid]))
    assert.Empty(t, kept[models.ContextCitiesGrid])
    assert.Empty(t, kept[models.ContextFooter])

    nearby := kept[models.ContextNearby]
    assert.Equal(t, "/services/plumbing/edinburgh", nearby[0].URL)
    assert.Equal(t, "/services/plumbing/kingswood", nearby[4].URL)

    pruned := plan.Pruned()
    assert.Equal(t, 4, pruned[models.ContextServicesGrid])
    assert.Equal(t, CityGridSize, pruned[models.ContextCitiesGrid])
    assert.Equal(t, 20, pruned[models.ContextFooter])
    assert.Equal(t, 0, pruned[models.ContextNav])

    outgoing := plan.Outgoing()
    require.Len(t, outgoing, MaxLinksPerPage)
    assert.Equal(t, models.ContextBreadcrumbs, outgoing[0].Context)
}

func TestPlanPageVillage(t *testing.T) {
    e := testEngine(t)
    plan := e.PlanPage(mustService(t, e, "plumbing"), mustLocation(t, e, "little-village"))

    assert.Equal(t, models.TierVillage, plan.Tier)
    assert.Equal(t, 30, plan.PageValue)
    assert.False(t, plan.AllowServicesGrid)
    assert.Equal(t, 27, plan.Kept.Total())
    assert.Len(t, plan.Kept[models.ContextBreadcrumbs], 3)
    assert.Len(t, plan.Kept[models.ContextContextual], 1)
    assert.Empty(t, plan.Kept[models.ContextNearby])
    assert.Empty(t, plan.Kept[models.ContextPopular])
}
