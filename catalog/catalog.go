package catalog

import (
    "tradematch-seo/models"
)

// Catalog is the read-only lookup structure shared by every page build. It is
// built once after loading and never mutated, so concurrent readers are safe.
type Catalog struct {
    Services    []models.Service
    MajorCities []models.Location
    Locations   []models.Location

    majorCity map[string]bool
    position  map[string]int
    byCounty  map[string][]int
    byCity    map[string][]int
    services  map[string]int
}

func New(locations []models.Location, services []models.Service, majorCities []models.Location) *Catalog {
    c := &Catalog{
        Services:    services,
        MajorCities: majorCities,
        Locations:   locations,
        majorCity:   make(map[string]bool, len(majorCities)),
        position:    make(map[string]int, len(locations)),
        byCounty:    make(map[string][]int),
        byCity:      make(map[string][]int),
        services:    make(map[string]int, len(services)),
    }

    for _, city := range majorCities {
        c.majorCity[city.Slug] = true
    }
    for i, svc := range services {
        c.services[svc.Slug] = i
    }
    for i, loc := range locations {
        c.position[loc.Slug] = i
        if loc.County != "" {
            c.byCounty[loc.County] = append(c.byCounty[loc.County], i)
        }
        if loc.City != "" {
            c.byCity[loc.City] = append(c.byCity[loc.City], i)
        }
    }

    return c
}

// Default builds a catalog over the static service and major-city tables.
func Default(locations []models.Location) *Catalog {
    return New(locations, Services, MajorCities)
}

func (c *Catalog) MajorCitySlugs() map[string]bool {
    return c.majorCity
}

func (c *Catalog) Location(slug string) (models.Location, bool) {
    i, ok := c.position[slug]
    if !ok {
        return models.Location{}, false
    }
    return c.Locations[i], true
}

func (c *Catalog) Service(slug string) (models.Service, bool) {
    i, ok := c.services[slug]
    if !ok {
        return models.Service{}, false
    }
    return c.Services[i], true
}

// Position returns the ordinal of slug in load order.
func (c *Catalog) Position(slug string) (int, bool) {
    i, ok := c.position[slug]
    return i, ok
}

// Neighbours lists candidate neighbours of loc: locations sharing its county,
// else its city, topped up by walking outward from loc's ordinal position
// (one before, one after, two before, ...) until limit is reached. The
// location itself is never included. No population policy is applied here.
func (c *Catalog) Neighbours(loc models.Location, limit int) []models.Location {
    var pool []int
    if idx, ok := c.byCounty[loc.County]; ok && loc.County != "" {
        pool = idx
    } else if idx, ok := c.byCity[loc.City]; ok && loc.City != "" {
        pool = idx
    }

    seen := make(map[string]bool, limit)
    candidates := make([]models.Location, 0, limit)
    for _, i := range pool {
        other := c.Locations[i]
        if other.Slug == loc.Slug || seen[other.Slug] {
            continue
        }
        seen[other.Slug] = true
        candidates = append(candidates, other)
    }

    if len(candidates) >= limit {
        return candidates
    }

    origin, ok := c.position[loc.Slug]
    if !ok {
        origin = 0
    }

    n := len(c.Locations)
    for step := 1; len(candidates) < limit && (origin-step >= 0 || origin+step < n); step++ {
        for _, i := range [2]int{origin - step, origin + step} {
            if i < 0 || i >= n {
                continue
            }
            other := c.Locations[i]
            if other.Slug == loc.Slug {
                continue
            }
            if !seen[other.Slug] {
                seen[other.Slug] = true
                candidates = append(candidates, other)
            }
            if len(candidates) >= limit {
                break
            }
        }
    }

    return candidates
}
