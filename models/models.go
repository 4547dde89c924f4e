// models/models.go
package models

import (
    "time"
)

type Location struct {
    Name       string `json:"name" validate:"required"`
    Slug       string `json:"slug" validate:"required"`
    City       string `json:"city" validate:"required"`
    County     string `json:"county"`
    Postcode   string `json:"postcode,omitempty"`
    Population int    `json:"population" validate:"min=0"`
}

type Service struct {
    Name     string `json:"name"`
    Slug     string `json:"slug"`
    Category string `json:"category"`
}

// Tier is the coarse importance class of a location.
type Tier string

const (
    TierMajorCity Tier = "major_city"
    TierLargeTown Tier = "large_town"
    TierVillage   Tier = "village"
)

// LinkContext names the page region a link is rendered in.
type LinkContext string

const (
    ContextBreadcrumbs  LinkContext = "breadcrumbs"
    ContextNav          LinkContext = "nav"
    ContextContextual   LinkContext = "contextual"
    ContextNearby       LinkContext = "nearby"
    ContextPopular      LinkContext = "popular"
    ContextServicesGrid LinkContext = "services_grid"
    ContextCitiesGrid   LinkContext = "cities_grid"
    ContextFooter       LinkContext = "footer"
)

// ContextPriority is the order in which sections claim the page link budget.
var ContextPriority = []LinkContext{
    ContextBreadcrumbs,
    ContextNav,
    ContextContextual,
    ContextNearby,
    ContextPopular,
    ContextServicesGrid,
    ContextCitiesGrid,
    ContextFooter,
}

type Link struct {
    URL     string      `json:"url"`
    Label   string      `json:"label"`
    Weight  float64     `json:"weight"`
    Context LinkContext `json:"context"`
}

// Sections holds candidate or kept links keyed by context.
type Sections map[LinkContext][]Link

// Total counts links across all contexts.
func (s Sections) Total() int {
    n := 0
    for _, links := range s {
        n += len(links)
    }
    return n
}

// Flatten returns every link in budget priority order.
func (s Sections) Flatten() []Link {
    var out []Link
    for _, ctx := range ContextPriority {
        out = append(out, s[ctx]...)
    }
    return out
}

type PageRecord struct {
    URL       string `json:"-"`
    PageValue int    `json:"page_value"`
    PageDepth int    `json:"page_depth"`
    Outgoing  []Link `json:"outgoing"`
}

type PatchStats struct {
    PagesPatched   int           `json:"pages_patched"`
    PagesUnchanged int           `json:"pages_unchanged"`
    PagesSkipped   int           `json:"pages_skipped"`
    HubPages       int           `json:"hub_pages"`
    Errors         int           `json:"errors"`
    Duration       time.Duration `json:"duration"`
    TotalSize      int64         `json:"total_size"`
}
