package linking

import "tradematch-seo/models"

// LargeTownPopulation is the population at which a non-major location
// counts as a large town.
const LargeTownPopulation = 50000

// ClassifyTier derives a location's tier. It is recomputed on every call and
// depends only on the location and the major-city set.
func ClassifyTier(loc models.Location, majorCitySlugs map[string]bool) models.Tier {
    if majorCitySlugs[loc.Slug] {
        return models.TierMajorCity
    }
    if loc.Population >= LargeTownPopulation {
        return models.TierLargeTown
    }
    return models.TierVillage
}

// PageValue is the link equity a page of the given tier distributes.
func PageValue(tier models.Tier) int {
    switch tier {
    case models.TierMajorCity:
        return 70
    case models.TierLargeTown:
        return 55
    default:
        return 30
    }
}

// PageDepth is the distance of a tier's pages from the strongest pages and
// divides the weight of links pointing at them.
func PageDepth(tier models.Tier) int {
    switch tier {
    case models.TierMajorCity:
        return 2
    case models.TierLargeTown:
        return 3
    default:
        return 4
    }
}
