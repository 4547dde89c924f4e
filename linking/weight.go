package linking

import (
    "math"

    "tradematch-seo/models"
)

const (
    // MinLinkWeight is the hard floor below which candidate links are dropped.
    MinLinkWeight = 15.0

    MultiplierBreadcrumb = 1.5
    MultiplierContextual = 1.3
    MultiplierNearby     = 1.1
    MultiplierFooter     = 0.6
    // MultiplierNav is neutral: navigation is structure, not content.
    MultiplierNav = 1.0
)

// Weight scores a link as (sourceValue * multiplier) / max(1, targetDepth).
func Weight(sourceValue int, multiplier float64, targetDepth int) float64 {
    if targetDepth < 1 {
        targetDepth = 1
    }
    return float64(sourceValue) * multiplier / float64(targetDepth)
}

// NewLink fixes the weight at creation, rounded to two decimals.
func NewLink(url, label string, weight float64, ctx models.LinkContext) models.Link {
    return models.Link{
        URL:     url,
        Label:   label,
        Weight:  math.Round(weight*100) / 100,
        Context: ctx,
    }
}

// FilterByWeight drops every link under MinLinkWeight.
func FilterByWeight(links []models.Link) []models.Link {
    kept := make([]models.Link, 0, len(links))
    for _, link := range links {
        if link.Weight >= MinLinkWeight {
            kept = append(kept, link)
        }
    }
    return kept
}
