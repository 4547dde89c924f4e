package linking

import (
    "tradematch-seo/models"
    "tradematch-seo/utils"
)

// PagePlan is everything the patcher needs for one service/location page.
type PagePlan struct {
    URL        string
    Service    models.Service
    Location   models.Location
    Tier       models.Tier
    PageValue  int
    PageDepth  int
    Candidates models.Sections
    Kept       models.Sections

    // AllowServicesGrid is false for pages whose service cards must all be
    // demoted to plain blocks.
    AllowServicesGrid bool
}

// Pruned counts candidates per context that did not survive the budget.
func (p *PagePlan) Pruned() map[models.LinkContext]int {
    out := make(map[models.LinkContext]int, len(models.ContextPriority))
    for _, ctx := range models.ContextPriority {
        out[ctx] = len(p.Candidates[ctx]) - len(p.Kept[ctx])
    }
    return out
}

// Outgoing is the kept link list in render priority order.
func (p *PagePlan) Outgoing() []models.Link {
    return p.Kept.Flatten()
}

// PlanPage runs every builder for one page and enforces the link budget.
func (e *Engine) PlanPage(service models.Service, loc models.Location) *PagePlan {
    tier := e.Tier(loc)
    value := PageValue(tier)

    candidates := models.Sections{
        models.ContextBreadcrumbs:  e.BreadcrumbLinks(value, service),
        models.ContextNav:          e.NavLinks(value),
        models.ContextContextual:   e.ContextualLinks(value, service, loc),
        models.ContextNearby:       e.NearbyLinks(value, service, loc),
        models.ContextPopular:      e.PopularLinks(value, loc),
        models.ContextServicesGrid: e.ServicesGridLinks(value, loc),
        models.ContextCitiesGrid:   e.CitiesGridLinks(value, service, loc),
        models.ContextFooter:       e.FooterLinks(value),
    }

    return &PagePlan{
        URL:               utils.ServiceLocationURL(service.Slug, loc.Slug),
        Service:           service,
        Location:          loc,
        Tier:              tier,
        PageValue:         value,
        PageDepth:         PageDepth(tier),
        Candidates:        candidates,
        Kept:              EnforceBudget(candidates, MaxLinksPerPage),
        AllowServicesGrid: value >= AuthorityThreshold,
    }
}
